// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/odonto-etl/internal/classify"
	"github.com/pdiddy/odonto-etl/internal/extract"
)

var extractCmd = &cobra.Command{
	Use:   "extract [pdfs...]",
	Short: "Print the cleaned text lines of schedule reports",
	Long: `Extract prints the lines the classifier would see for each report:
letterhead and footer blocks removed, one trimmed line per table cell, pages
in order. With --numbered each line is prefixed with its chunk, its position
in the chunk, and the first field whose pattern accepts it.`,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Bool("numbered", false, "prefix each line with its chunk, position, and candidate field")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	numbered, _ := cmd.Flags().GetBool("numbered")
	c := classify.New(cfg.Classify)

	ex := extract.NewFileExtractor(cfg.Extract)
	out := cmd.OutOrStdout()
	for _, path := range cfg.PDFPaths {
		lines, err := ex.Extract(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "# %s (%d lines)\n", path, len(lines))
		for i, line := range lines {
			if numbered {
				fmt.Fprintln(out, numberedLine(c, i, line))
				continue
			}
			fmt.Fprintln(out, line)
		}
	}
	return nil
}

// numberedLine formats line i of a document as chunk.position, the field the
// line would fill in an empty record, and the text. "-" marks a line no field
// accepts.
func numberedLine(c *classify.Classifier, i int, line string) string {
	label := "-"
	if f, ok := c.Match(line); ok {
		label = f.Column()
	}
	size := c.ChunkSize()
	return fmt.Sprintf("%4d.%-2d %-16s %s", i/size, i%size, label, line)
}
