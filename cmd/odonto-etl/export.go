// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/odonto-etl/internal/extract"
	"github.com/pdiddy/odonto-etl/internal/pipeline"
)

var exportCmd = &cobra.Command{
	Use:   "export [pdfs...]",
	Short: "Write the classified records of each report to CSV",
	Long: `Export writes one CSV file per report into the export directory
(default assets/csv), named after the PDF. Files are UTF-8 with a byte order
mark so spreadsheet tools show accented names correctly.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("dir", "", "output directory (default from config, assets/csv)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		dir = cfg.ExportDir
	}

	w := progress(cmd)
	ex := extract.NewFileExtractor(cfg.Extract)
	docs, err := pipeline.ReadDocuments(cmd.Context(), cfg.PDFPaths, cfg.Classify, ex, w)
	if err != nil {
		return err
	}
	_, err = pipeline.Export(docs, dir, w)
	return err
}
