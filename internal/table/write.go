// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"encoding/csv"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// utf8BOM lets spreadsheet tools detect the encoding of accented names.
const utf8BOM = "\uFEFF"

// WriteCSV writes the table as CSV with a header row, prefixed with a UTF-8
// byte order mark.
func (t *Table) WriteCSV(w io.Writer) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("writing CSV: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(t.Row(i).Values()); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteYAML writes the rows as a YAML sequence of records.
func (t *Table) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t.Records()); err != nil {
		return fmt.Errorf("writing YAML: %w", err)
	}
	return enc.Close()
}
