// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads database credentials from a directory of plain-text
// files. Each file holds one secret: the filename is the key and the trimmed
// contents are the value.
//
// Supported key files: db-host, db-user, db-password, db-name.
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/odonto-etl/pkg/types"
)

// Key files understood by ApplyDatabase.
const (
	KeyDBHost     = "db-host"
	KeyDBUser     = "db-user"
	KeyDBPassword = "db-password"
	KeyDBName     = "db-name"
)

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty map.
// Unreadable files are reported on warn and skipped.
func Load(dir string, warn io.Writer) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}
	return secrets, nil
}

// ApplyDatabase fills the blank connection fields of cfg from s. Values
// already set by the config file, environment, or flags win.
func ApplyDatabase(cfg *types.DatabaseConfig, s map[string]string) {
	fill := func(dst *string, key string) {
		if *dst == "" {
			*dst = s[key]
		}
	}
	fill(&cfg.Host, KeyDBHost)
	fill(&cfg.User, KeyDBUser)
	fill(&cfg.Password, KeyDBPassword)
	fill(&cfg.Name, KeyDBName)
}
