// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig holds the connection settings for the consultation store.
// Host, User, Password and Name have no defaults and must be supplied by the
// config file, the environment, or .secrets/.
type DatabaseConfig struct {
	// Driver selects the backend: "postgres" or "sqlite".
	Driver string `json:"driver" yaml:"driver" mapstructure:"driver"`

	Host     string `json:"host" yaml:"host" mapstructure:"host"`
	Port     int    `json:"port" yaml:"port" mapstructure:"port"`
	User     string `json:"user" yaml:"user" mapstructure:"user"`
	Password string `json:"-" yaml:"password,omitempty" mapstructure:"password"`
	Name     string `json:"name" yaml:"name" mapstructure:"name"`

	// SSLMode is passed through as the sslmode connection parameter.
	SSLMode string `json:"sslmode" yaml:"sslmode" mapstructure:"sslmode"`

	// Schema is the Postgres schema holding both tables.
	Schema string `json:"schema" yaml:"schema" mapstructure:"schema"`

	// Path is the database file used by the sqlite driver.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// DSN builds a postgres:// connection URL from the config.
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	if c.User != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.User, c.Password)
		} else {
			u.User = url.User(c.User)
		}
	}
	if c.SSLMode != "" {
		q := url.Values{}
		q.Set("sslmode", c.SSLMode)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// ExtractConfig holds settings for the text extraction stage.
type ExtractConfig struct {
	// Boilerplate lists substrings that mark a text block as letterhead or
	// footer. Any block containing one of them is discarded whole.
	Boilerplate []string `json:"boilerplate" yaml:"boilerplate" mapstructure:"boilerplate"`

	// BlockGap is the vertical gap, in multiples of the font size, above which
	// two consecutive text rows start a new block (default 1.6).
	BlockGap float64 `json:"block_gap" yaml:"block_gap" mapstructure:"block_gap"`

	// ColumnGap is the horizontal gap, in multiples of the font size, above
	// which two runs on the same row are read as separate lines (default 2).
	ColumnGap float64 `json:"column_gap" yaml:"column_gap" mapstructure:"column_gap"`
}

// ClassifyConfig holds settings for the record classifier.
type ClassifyConfig struct {
	// ChunkSize is the number of lines that make up one record (default 10).
	ChunkSize int `json:"chunk_size" yaml:"chunk_size" mapstructure:"chunk_size"`

	// Professional is the exact name printed in the professional field.
	// Lines equal to it are never taken as observations.
	Professional string `json:"professional" yaml:"professional" mapstructure:"professional"`
}

// Config groups everything a run needs.
type Config struct {
	// PDFPaths lists the schedule reports, processed in order.
	PDFPaths []string `json:"pdf_paths" yaml:"pdf_paths" mapstructure:"pdf_paths"`

	// ExportDir receives one CSV per report from the export command.
	ExportDir string `json:"export_dir" yaml:"export_dir" mapstructure:"export_dir"`

	Extract  ExtractConfig  `json:"extract" yaml:"extract" mapstructure:"extract"`
	Classify ClassifyConfig `json:"classify" yaml:"classify" mapstructure:"classify"`
	Database DatabaseConfig `json:"database" yaml:"database" mapstructure:"database"`
}

// Validate reports configuration that cannot produce a run.
func (c Config) Validate() error {
	var errs []error
	if len(c.PDFPaths) == 0 {
		errs = append(errs, errors.New("no PDF paths configured"))
	}
	if c.Classify.ChunkSize < 1 {
		errs = append(errs, fmt.Errorf("chunk size must be positive, got %d", c.Classify.ChunkSize))
	}
	errs = append(errs, c.Database.Validate())
	return errors.Join(errs...)
}

// Validate reports missing connection settings for the selected driver.
func (c DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.Host == "" {
			return errors.New("database host is required for the postgres driver")
		}
		if c.Name == "" {
			return errors.New("database name is required for the postgres driver")
		}
	case DriverSQLite:
		if c.Path == "" {
			return errors.New("database path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q: use %s or %s", c.Driver, DriverPostgres, DriverSQLite)
	}
	return nil
}
