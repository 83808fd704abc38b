// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract turns a schedule report PDF into the flat, ordered list of
// text lines the classifier consumes. Letterhead and footer blocks are
// dropped before the lines are split out.
package extract

import (
	"fmt"
	"strings"

	"github.com/pdiddy/odonto-etl/pkg/types"
)

// PageSource yields the text blocks of a document page by page. A block is a
// run of visually adjacent lines joined with "\n".
type PageSource interface {
	// NumPages returns the number of pages in the document.
	NumPages() int

	// Blocks returns the text blocks of page i (1-based) in reading order.
	Blocks(i int) ([]string, error)
}

// Lines walks every page of src in order and returns the trimmed, non-empty
// lines of each block. A block containing any of the boilerplate substrings
// is discarded whole, including lines that would not match on their own.
func Lines(src PageSource, boilerplate []string) ([]string, error) {
	var lines []string
	for i := 1; i <= src.NumPages(); i++ {
		blocks, err := src.Blocks(i)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i, err)
		}
		for _, block := range blocks {
			if IsBoilerplate(block, boilerplate) {
				continue
			}
			for _, line := range strings.Split(block, "\n") {
				line = strings.TrimSpace(line)
				if line != "" {
					lines = append(lines, line)
				}
			}
		}
	}
	return lines, nil
}

// IsBoilerplate reports whether block contains any of the markers.
func IsBoilerplate(block string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(block, m) {
			return true
		}
	}
	return false
}

// ExtractFile opens the PDF at path and returns its cleaned lines. Open and
// page decoding failures are reported as *types.FileAccessError.
func ExtractFile(path string, cfg types.ExtractConfig) ([]string, error) {
	src, err := OpenPDF(path, cfg)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	lines, err := Lines(src, cfg.Boilerplate)
	if err != nil {
		return nil, &types.FileAccessError{Path: path, Err: err}
	}
	return lines, nil
}

// FileExtractor reads reports from the local filesystem.
type FileExtractor struct {
	cfg types.ExtractConfig
}

// NewFileExtractor returns an extractor using cfg for every file. An empty
// boilerplate list falls back to the report defaults.
func NewFileExtractor(cfg types.ExtractConfig) *FileExtractor {
	if len(cfg.Boilerplate) == 0 {
		cfg.Boilerplate = types.DefaultBoilerplate
	}
	return &FileExtractor{cfg: cfg}
}

// Extract returns the cleaned lines of the PDF at path.
func (e *FileExtractor) Extract(path string) ([]string, error) {
	return ExtractFile(path, e.cfg)
}
