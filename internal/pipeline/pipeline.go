// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the import end to end: extract each report, classify
// its lines into records, union the per-report tables, derive the
// consultation type catalog, and append everything to the store.
//
// Reports are processed one at a time in configured order. Each report gets
// its own table; the union is built afterwards, so a report's records appear
// exactly once in the run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/odonto-etl/internal/catalog"
	"github.com/pdiddy/odonto-etl/internal/classify"
	"github.com/pdiddy/odonto-etl/internal/loader"
	"github.com/pdiddy/odonto-etl/internal/table"
	"github.com/pdiddy/odonto-etl/pkg/types"
)

// Extractor reads the cleaned text lines of one report.
type Extractor interface {
	Extract(path string) ([]string, error)
}

// Document is one report after extraction and classification.
type Document struct {
	Path    string
	Lines   int
	Dropped int
	Table   *table.Table
}

// Summary holds the counts of an import run.
type Summary struct {
	Documents     int
	Lines         int
	Records       int
	Dropped       int
	Filtered      int
	Types         int
	Consultations int
	Stored        bool
}

// ReadDocuments extracts and classifies every path in order. The first
// extraction failure stops the run.
func ReadDocuments(ctx context.Context, paths []string, cfg types.ClassifyConfig, ex Extractor, w io.Writer) ([]Document, error) {
	c := classify.New(cfg)
	docs := make([]Document, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lines, err := ex.Extract(path)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", path, err)
			return nil, err
		}
		res := c.ClassifyDocument(path, lines)
		doc := Document{
			Path:    path,
			Lines:   len(lines),
			Dropped: res.Dropped,
			Table:   table.Build(res.Records),
		}
		fmt.Fprintf(w, "extracted: %s (%d lines, %d records, %d unclassified lines)\n",
			path, doc.Lines, doc.Table.Len(), doc.Dropped)
		docs = append(docs, doc)
	}
	return docs, nil
}

// Union concatenates the document tables in order.
func Union(docs []Document) *table.Table {
	tables := make([]*table.Table, len(docs))
	for i, d := range docs {
		tables[i] = d.Table
	}
	return table.Concat(tables...)
}

// Run performs a full import. When app is nil the run stops after building
// the consultations and nothing is written.
func Run(ctx context.Context, cfg types.Config, ex Extractor, app loader.Appender, w io.Writer) (Summary, error) {
	var sum Summary

	docs, err := ReadDocuments(ctx, cfg.PDFPaths, cfg.Classify, ex, w)
	if err != nil {
		return sum, err
	}
	sum.Documents = len(docs)
	for _, d := range docs {
		sum.Lines += d.Lines
		sum.Dropped += d.Dropped
	}

	union := Union(docs)
	sum.Records = union.Len()

	cat := catalog.Derive(union)
	sum.Filtered = cat.Filtered
	sum.Types = len(cat.Types)
	fmt.Fprintf(w, "catalog:   %d consultation types from %d rows (%d noise rows filtered)\n",
		len(cat.Types), len(cat.Rows), cat.Filtered)

	var cs []types.Consultation
	if app == nil {
		cs, err = loader.Build(cat.Rows)
	} else {
		cs, err = loader.Load(ctx, app, cat)
		sum.Stored = err == nil
	}
	if err != nil {
		return sum, err
	}
	sum.Consultations = len(cs)

	verb := "stored"
	if !sum.Stored {
		verb = "built (dry run)"
	}
	fmt.Fprintf(w, "\nRun summary: %d documents, %d records, %d consultation types, %d consultations %s\n",
		sum.Documents, sum.Records, sum.Types, sum.Consultations, verb)
	return sum, nil
}

// ExportResult counts the CSV files written by Export.
type ExportResult struct {
	Written int
}

// Export writes one CSV per document into dir, named after the report file.
func Export(docs []Document, dir string, w io.Writer) (ExportResult, error) {
	var res ExportResult
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, fmt.Errorf("creating export directory: %w", err)
	}
	for _, d := range docs {
		base := strings.TrimSuffix(filepath.Base(d.Path), filepath.Ext(d.Path))
		out := filepath.Join(dir, base+".csv")
		if err := writeCSV(out, d.Table); err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", out, err)
			return res, err
		}
		fmt.Fprintf(w, "exported:  %s (%d rows)\n", out, d.Table.Len())
		res.Written++
	}
	return res, nil
}

func writeCSV(path string, t *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
