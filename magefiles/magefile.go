//go:build mage

// Package main contains Mage build targets for odonto-etl developer tooling.
package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs lists the working directories the import expects.
var projectDirs = []string{
	"assets/pdf",
	"assets/csv",
	".secrets",
}

// Init creates the project directory structure for the import.
func Init() error {
	for _, dir := range projectDirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "odonto-etl"
	cmdPkg  = "./cmd/odonto-etl"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build", "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests. Set ODONTO_ETL_TEST_POSTGRES_DSN to include the
// Postgres store test.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Import builds the binary and runs a full import with the local config.
func Import() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "run")
}

// Stats prints non-blank Go line counts for production and test code.
func Stats() error {
	var prod, tests int
	for _, root := range []string{"cmd", "internal", "pkg"} {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || filepath.Ext(path) != ".go" {
				return err
			}
			n, err := countLines(path)
			if err != nil {
				return err
			}
			if strings.HasSuffix(path, "_test.go") {
				tests += n
			} else {
				prod += n
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	fmt.Printf("Lines of code (Go, production): %d\n", prod)
	fmt.Printf("Lines of code (Go, tests):      %d\n", tests)
	return nil
}

func countLines(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n, nil
}
