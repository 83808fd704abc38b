// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/odonto-etl/pkg/types"
)

const (
	// fallbackFontSize is used when a row carries no font size.
	fallbackFontSize = 10.0
	// spaceRatio is the horizontal gap, relative to font size, that separates
	// two words on the same row.
	spaceRatio = 0.2
)

// PDFSource reads text blocks from a PDF file using ledongthuc/pdf.
type PDFSource struct {
	f      *os.File
	r      *pdf.Reader
	gap    float64
	column float64
}

var _ PageSource = (*PDFSource)(nil)

// OpenPDF opens the PDF at path. cfg.BlockGap is the row spacing, in
// multiples of the font size, above which a new block starts. cfg.ColumnGap
// is the horizontal spacing above which runs on one row become separate
// lines. Values <= 0 use the defaults.
func OpenPDF(path string, cfg types.ExtractConfig) (*PDFSource, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &types.FileAccessError{Path: path, Err: err}
	}
	gap, column := cfg.BlockGap, cfg.ColumnGap
	if gap <= 0 {
		gap = types.DefaultBlockGap
	}
	if column <= 0 {
		column = types.DefaultColumnGap
	}
	return &PDFSource{f: f, r: r, gap: gap, column: column}, nil
}

// Close releases the underlying file.
func (s *PDFSource) Close() error {
	return s.f.Close()
}

// NumPages returns the page count of the document.
func (s *PDFSource) NumPages() int {
	return s.r.NumPage()
}

// Blocks returns the text blocks of page i. Pages without content yield no
// blocks; a page whose content cannot be decoded yields an error.
func (s *PDFSource) Blocks(i int) ([]string, error) {
	rows, err := collectRows(func() pdf.Content {
		page := s.r.Page(i)
		if page.V.IsNull() {
			return pdf.Content{}
		}
		return page.Content()
	})
	if err != nil {
		return nil, err
	}
	return rowsToBlocks(rows, s.gap, s.column), nil
}

// collectRows groups the glyphs returned by load into rows by baseline.
// ledongthuc/pdf reports malformed content streams by panicking, so the panic
// is turned into an error here.
func collectRows(load func() pdf.Content) (rows pdf.Rows, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows = nil
			err = fmt.Errorf("decoding page content: %v", r)
		}
	}()

	byPos := make(map[int64]*pdf.Row)
	for _, t := range load().Text {
		pos := int64(math.Round(t.Y))
		row, ok := byPos[pos]
		if !ok {
			row = &pdf.Row{Position: pos}
			byPos[pos] = row
			rows = append(rows, row)
		}
		row.Content = append(row.Content, t)
	}
	return rows, nil
}

// rowsToBlocks orders rows top to bottom and joins consecutive rows into one
// block while the distance between them stays within gap font sizes. Runs on
// one row that sit more than column font sizes apart become separate lines.
func rowsToBlocks(rows pdf.Rows, gap, column float64) []string {
	rows = append(pdf.Rows(nil), rows...)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Position > rows[j].Position
	})

	var (
		blocks  []string
		current []string
		prevPos int64
	)
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, row := range rows {
		cells := rowCells(row.Content, column)
		if len(cells) == 0 {
			continue
		}
		size := rowFontSize(row.Content)
		if len(current) > 0 && math.Abs(float64(prevPos-row.Position)) > gap*size {
			flush()
		}
		current = append(current, cells...)
		prevPos = row.Position
	}
	flush()
	return blocks
}

// rowCells splits a row left to right into cells at every horizontal gap
// wider than column font sizes. Blank cells are dropped.
func rowCells(texts pdf.TextHorizontal, column float64) []string {
	texts = append(pdf.TextHorizontal(nil), texts...)
	sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

	var (
		cells []string
		cell  pdf.TextHorizontal
	)
	flush := func() {
		if s := strings.TrimSpace(rowText(cell)); s != "" {
			cells = append(cells, s)
		}
		cell = nil
	}

	var prevEnd float64
	for i, t := range texts {
		if i > 0 && t.X-prevEnd > column*fontSize(t) {
			flush()
		}
		cell = append(cell, t)
		prevEnd = t.X + t.W
	}
	flush()
	return cells
}

// rowText concatenates the text runs of a row left to right, inserting a
// space where the runs are visibly apart.
func rowText(texts pdf.TextHorizontal) string {
	texts = append(pdf.TextHorizontal(nil), texts...)
	sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

	var b strings.Builder
	var prevEnd float64
	for i, t := range texts {
		if i > 0 {
			cur := b.String()
			if t.X-prevEnd > spaceRatio*fontSize(t) &&
				!strings.HasSuffix(cur, " ") && !strings.HasPrefix(t.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
		prevEnd = t.X + t.W
	}
	return b.String()
}

func fontSize(t pdf.Text) float64 {
	if t.FontSize <= 0 {
		return fallbackFontSize
	}
	return t.FontSize
}

func rowFontSize(texts pdf.TextHorizontal) float64 {
	size := 0.0
	for _, t := range texts {
		size = math.Max(size, t.FontSize)
	}
	if size <= 0 {
		return fallbackFontSize
	}
	return size
}
