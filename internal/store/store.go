// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists consultation types and consultations.
//
// Two backends are available: PostgreSQL through pgx, which is the
// production target, and a local SQLite file for dry runs and inspection.
// Writes are append-only. The type catalog is keyed by its derived ID, so
// re-running an import leaves existing types untouched; consultations are
// appended as they come.
package store

import (
	"context"
	"fmt"

	"github.com/pdiddy/odonto-etl/pkg/types"
)

const (
	tableConsultationTypes = "consultation_types"
	tableConsultations     = "consultations"
)

// Store is the persistence boundary of an import run.
type Store interface {
	// Init creates the tables (and schema, where supported) if missing.
	Init(ctx context.Context) error

	// Append writes the catalog and the consultations in one transaction.
	Append(ctx context.Context, cts []types.ConsultationType, cs []types.Consultation) error

	// Counts returns the number of consultation types and consultations stored.
	Counts(ctx context.Context) (typeCount, consultationCount int, err error)

	// Close releases the connection.
	Close() error
}

// Open connects to the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg types.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case types.DriverPostgres, "":
		return OpenPostgres(ctx, cfg)
	case types.DriverSQLite:
		return OpenSQLite(cfg.Path)
	default:
		return nil, &types.StorageError{Op: "open", Err: fmt.Errorf("unsupported driver %q", cfg.Driver)}
	}
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &types.StorageError{Op: op, Err: err}
}
