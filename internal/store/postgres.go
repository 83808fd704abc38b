// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pdiddy/odonto-etl/pkg/types"
)

// Postgres stores the import in a PostgreSQL schema.
type Postgres struct {
	pool   *pgxpool.Pool
	schema string
}

var _ Store = (*Postgres)(nil)

// OpenPostgres connects using cfg and pings the server.
func OpenPostgres(ctx context.Context, cfg types.DatabaseConfig) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		return nil, storageErr("connect", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, storageErr("connect", err)
	}
	return NewPostgres(pool, cfg.Schema), nil
}

// NewPostgres wraps an existing pool. The caller keeps ownership of the pool
// only if it does not call Close.
func NewPostgres(pool *pgxpool.Pool, schema string) *Postgres {
	if schema == "" {
		schema = types.DefaultSchema
	}
	return &Postgres{pool: pool, schema: schema}
}

// Close closes the pool.
func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

func (p *Postgres) table(name string) string {
	return pgx.Identifier{p.schema, name}.Sanitize()
}

// Init creates the schema and both tables. Safe to call repeatedly.
func (p *Postgres) Init(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, pgx.Identifier{p.schema}.Sanitize()),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id UUID PRIMARY KEY,
			label TEXT NOT NULL,
			excluded BOOLEAN NOT NULL DEFAULT FALSE
		)`, p.table(tableConsultationTypes)),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id UUID NOT NULL,
			patient_name TEXT NOT NULL,
			start_date TIMESTAMP NOT NULL,
			end_date TIMESTAMP NOT NULL,
			concluded BOOLEAN NOT NULL DEFAULT TRUE,
			consultation_type_id UUID REFERENCES %s (id)
		)`, p.table(tableConsultations), p.table(tableConsultationTypes)),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS consultations_id_idx ON %s (id)`, p.table(tableConsultations)),
	}
	for _, stmt := range stmts {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return storageErr("init", err)
		}
	}
	return nil
}

// Append inserts the catalog with ON CONFLICT DO NOTHING and bulk-copies the
// consultations, all in one transaction.
func (p *Postgres) Append(ctx context.Context, cts []types.ConsultationType, cs []types.Consultation) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return storageErr("begin", err)
	}
	defer tx.Rollback(ctx)

	if len(cts) > 0 {
		insert := fmt.Sprintf(
			`INSERT INTO %s (id, label, excluded) VALUES ($1, $2, $3) ON CONFLICT (id) DO NOTHING`,
			p.table(tableConsultationTypes))
		batch := &pgx.Batch{}
		for _, ct := range cts {
			batch.Queue(insert, pgUUID(ct.ID), ct.Label, ct.Excluded)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return storageErr("insert consultation types", err)
		}
	}

	if len(cs) > 0 {
		rows := make([][]any, len(cs))
		for i, c := range cs {
			rows[i] = []any{
				pgUUID(c.ID), c.PatientName, c.StartDate, c.EndDate, c.Concluded, pgUUID(c.ConsultationTypeID),
			}
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{p.schema, tableConsultations},
			[]string{"id", "patient_name", "start_date", "end_date", "concluded", "consultation_type_id"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return storageErr("copy consultations", err)
		}
	}

	return storageErr("commit", tx.Commit(ctx))
}

// Counts returns the row counts of both tables.
func (p *Postgres) Counts(ctx context.Context) (int, int, error) {
	var nTypes, nConsultations int
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM `+p.table(tableConsultationTypes)).Scan(&nTypes); err != nil {
		return 0, 0, storageErr("count", err)
	}
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM `+p.table(tableConsultations)).Scan(&nConsultations); err != nil {
		return 0, 0, storageErr("count", err)
	}
	return nTypes, nConsultations, nil
}

func pgUUID(id [16]byte) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
