// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table holds classified records as a column-oriented table with
// one column per record field.
package table

import (
	"github.com/pdiddy/odonto-etl/pkg/types"
)

// Table is a column-oriented view over records. Columns are the ten record
// fields in declaration order; rows keep the order records were added in.
type Table struct {
	columns [types.NumFields][]string
	sources []string
	chunks  []int
}

// Build returns a table with one row per record.
func Build(records []types.Record) *Table {
	t := &Table{}
	for _, r := range records {
		t.Append(r)
	}
	return t
}

// Concat returns a new table holding the rows of every table in argument
// order. Nil tables are skipped.
func Concat(tables ...*Table) *Table {
	out := &Table{}
	for _, t := range tables {
		if t == nil {
			continue
		}
		for i := 0; i < t.Len(); i++ {
			out.Append(t.Row(i))
		}
	}
	return out
}

// Append adds r as the last row.
func (t *Table) Append(r types.Record) {
	for _, f := range types.Fields() {
		t.columns[f] = append(t.columns[f], r.Get(f))
	}
	t.sources = append(t.sources, r.Source)
	t.chunks = append(t.chunks, r.Chunk)
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.sources) }

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	names := make([]string, types.NumFields)
	for _, f := range types.Fields() {
		names[f] = f.Column()
	}
	return names
}

// Column returns the values of the named column, or nil if there is no such
// column. The returned slice must not be modified.
func (t *Table) Column(name string) []string {
	f, ok := types.FieldByColumn(name)
	if !ok {
		return nil
	}
	return t.columns[f]
}

// Row reassembles row i as a record, including its source and chunk index.
func (t *Table) Row(i int) types.Record {
	r := types.Record{Source: t.sources[i], Chunk: t.chunks[i]}
	for _, f := range types.Fields() {
		r.Set(f, t.columns[f][i])
	}
	return r
}

// Records returns every row as a record.
func (t *Table) Records() []types.Record {
	out := make([]types.Record, t.Len())
	for i := range out {
		out[i] = t.Row(i)
	}
	return out
}
