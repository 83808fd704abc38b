// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/odonto-etl/internal/extract"
	"github.com/pdiddy/odonto-etl/internal/pipeline"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [pdfs...]",
	Short: "Print the appointment records classified from schedule reports",
	Long: `Classify extracts and classifies the reports and prints the union of
their records, as YAML (default) or CSV. Nothing is written to the database.`,
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().String("format", "yaml", "output format: yaml or csv")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "yaml" && format != "csv" {
		return fmt.Errorf("unsupported format %q: use yaml or csv", format)
	}

	ex := extract.NewFileExtractor(cfg.Extract)
	docs, err := pipeline.ReadDocuments(cmd.Context(), cfg.PDFPaths, cfg.Classify, ex, diagnostics(cmd))
	if err != nil {
		return err
	}

	union := pipeline.Union(docs)
	if format == "csv" {
		return union.WriteCSV(cmd.OutOrStdout())
	}
	return union.WriteYAML(cmd.OutOrStdout())
}
