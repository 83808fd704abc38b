// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/odonto-etl/internal/secrets"
	"github.com/pdiddy/odonto-etl/pkg/types"
)

// setDefaults registers every config key so that environment variables are
// seen by Unmarshal even when no config file mentions them.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("pdf_paths", d.PDFPaths)
	v.SetDefault("export_dir", d.ExportDir)
	v.SetDefault("extract.boilerplate", d.Extract.Boilerplate)
	v.SetDefault("extract.block_gap", d.Extract.BlockGap)
	v.SetDefault("extract.column_gap", d.Extract.ColumnGap)
	v.SetDefault("classify.chunk_size", d.Classify.ChunkSize)
	v.SetDefault("classify.professional", d.Classify.Professional)
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", d.Database.Port)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.sslmode", "")
	v.SetDefault("database.schema", d.Database.Schema)
	v.SetDefault("database.path", d.Database.Path)
}

// dbFlags maps database flags to their config keys.
var dbFlags = map[string]string{
	"driver":    "database.driver",
	"db-host":   "database.host",
	"db-port":   "database.port",
	"db-user":   "database.user",
	"db-name":   "database.name",
	"db-schema": "database.schema",
	"db-path":   "database.path",
	"sslmode":   "database.sslmode",
}

// addDatabaseFlags registers the connection flags on cmd.
func addDatabaseFlags(cmd *cobra.Command) {
	cmd.Flags().String("driver", "", "storage driver: postgres or sqlite")
	cmd.Flags().String("db-host", "", "database host")
	cmd.Flags().Int("db-port", 0, "database port (default 5432)")
	cmd.Flags().String("db-user", "", "database user")
	cmd.Flags().String("db-name", "", "database name")
	cmd.Flags().String("db-schema", "", "database schema (default dente_de_leao_manager)")
	cmd.Flags().String("db-path", "", "database file for the sqlite driver")
	cmd.Flags().String("sslmode", "", "postgres sslmode connection parameter")
}

// loadConfig merges defaults, config file, environment, secrets, flags, and
// positional PDF arguments into one Config.
func loadConfig(cmd *cobra.Command, args []string) (types.Config, error) {
	v := viper.GetViper()
	for flag, key := range dbFlags {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			v.Set(key, f.Value.String())
		}
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if len(args) > 0 {
		cfg.PDFPaths = args
	}

	dir, _ := cmd.Flags().GetString("secrets-dir")
	s, err := secrets.Load(dir, os.Stderr)
	if err != nil {
		return cfg, err
	}
	secrets.ApplyDatabase(&cfg.Database, s)
	return cfg, nil
}

// progress returns the writer for progress output, honouring --quiet.
func progress(cmd *cobra.Command) io.Writer {
	if quiet(cmd) {
		return io.Discard
	}
	return cmd.OutOrStdout()
}

// diagnostics is progress for commands whose stdout carries data.
func diagnostics(cmd *cobra.Command) io.Writer {
	if quiet(cmd) {
		return io.Discard
	}
	return cmd.ErrOrStderr()
}

func quiet(cmd *cobra.Command) bool {
	q, _ := cmd.Flags().GetBool("quiet")
	return q
}
