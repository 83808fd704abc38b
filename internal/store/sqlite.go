// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/odonto-etl/pkg/types"
)

// sqliteTimeLayout matches the text form SQLite's datetime functions use.
const sqliteTimeLayout = "2006-01-02 15:04:05"

// SQLite stores the import in a single database file. It has no schemas, so
// the tables live unqualified.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens or creates the database file at path.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, storageErr("open", fmt.Errorf("creating database directory: %w", err))
		}
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, storageErr("open", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, storageErr("open", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Init creates both tables if they do not exist.
func (s *SQLite) Init(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS consultation_types (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			excluded INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS consultations (
			id TEXT NOT NULL,
			patient_name TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			concluded INTEGER NOT NULL DEFAULT 1,
			consultation_type_id TEXT REFERENCES consultation_types(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_consultations_id ON consultations(id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return storageErr("init", fmt.Errorf("executing schema statement: %w", err))
		}
	}
	return nil
}

// Append writes the catalog and consultations in one transaction.
func (s *SQLite) Append(ctx context.Context, cts []types.ConsultationType, cs []types.Consultation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin", err)
	}
	defer tx.Rollback()

	typeStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO consultation_types (id, label, excluded) VALUES (?, ?, ?)`)
	if err != nil {
		return storageErr("prepare", err)
	}
	defer typeStmt.Close()

	for _, ct := range cts {
		if _, err := typeStmt.ExecContext(ctx, ct.ID.String(), ct.Label, ct.Excluded); err != nil {
			return storageErr("insert consultation types", fmt.Errorf("type %s: %w", ct.ID, err))
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO consultations (id, patient_name, start_date, end_date, concluded, consultation_type_id)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return storageErr("prepare", err)
	}
	defer stmt.Close()

	for _, c := range cs {
		_, err := stmt.ExecContext(ctx,
			c.ID.String(), c.PatientName,
			c.StartDate.Format(sqliteTimeLayout), c.EndDate.Format(sqliteTimeLayout),
			c.Concluded, c.ConsultationTypeID.String(),
		)
		if err != nil {
			return storageErr("insert consultations", fmt.Errorf("consultation %s: %w", c.ID, err))
		}
	}

	return storageErr("commit", tx.Commit())
}

// Counts returns the row counts of both tables.
func (s *SQLite) Counts(ctx context.Context) (int, int, error) {
	var nTypes, nConsultations int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM consultation_types`).Scan(&nTypes); err != nil {
		return 0, 0, storageErr("count", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM consultations`).Scan(&nConsultations); err != nil {
		return 0, 0, storageErr("count", err)
	}
	return nTypes, nConsultations, nil
}

// Consultations reads back every stored consultation in insertion order.
func (s *SQLite) Consultations(ctx context.Context) ([]types.Consultation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, patient_name, start_date, end_date, concluded, consultation_type_id
		 FROM consultations ORDER BY rowid`)
	if err != nil {
		return nil, storageErr("query", err)
	}
	defer rows.Close()

	var out []types.Consultation
	for rows.Next() {
		var (
			c                  types.Consultation
			id, typeID         string
			startText, endText string
		)
		if err := rows.Scan(&id, &c.PatientName, &startText, &endText, &c.Concluded, &typeID); err != nil {
			return nil, storageErr("query", err)
		}
		if c.ID, err = uuid.Parse(id); err != nil {
			return nil, storageErr("query", err)
		}
		if c.ConsultationTypeID, err = uuid.Parse(typeID); err != nil {
			return nil, storageErr("query", err)
		}
		if c.StartDate, err = time.Parse(sqliteTimeLayout, startText); err != nil {
			return nil, storageErr("query", err)
		}
		if c.EndDate, err = time.Parse(sqliteTimeLayout, endText); err != nil {
			return nil, storageErr("query", err)
		}
		out = append(out, c)
	}
	return out, storageErr("query", rows.Err())
}
