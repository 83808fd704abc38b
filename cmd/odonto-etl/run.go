// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/odonto-etl/internal/extract"
	"github.com/pdiddy/odonto-etl/internal/loader"
	"github.com/pdiddy/odonto-etl/internal/pipeline"
	"github.com/pdiddy/odonto-etl/internal/store"
	"github.com/pdiddy/odonto-etl/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [pdfs...]",
	Short: "Import schedule reports into the database",
	Long: `Run extracts every configured report (or the PDFs given as arguments),
classifies the lines into appointment records, derives the consultation type
catalog, and appends consultation types and consultations to the database in
one transaction. The first unreadable PDF, unparseable appointment date, or
storage failure stops the run and nothing is written.`,
	RunE: runImport,
}

func init() {
	runCmd.Flags().Bool("dry-run", false, "build everything but skip the database")
	runCmd.Flags().Bool("init-schema", false, "create the schema and tables if missing (always done for sqlite)")
	addDatabaseFlags(runCmd)

	rootCmd.AddCommand(runCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	initSchema, _ := cmd.Flags().GetBool("init-schema")

	if dryRun {
		if len(cfg.PDFPaths) == 0 {
			return fmt.Errorf("no PDF paths configured")
		}
	} else if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	w := progress(cmd)
	ex := extract.NewFileExtractor(cfg.Extract)

	var app loader.Appender
	if !dryRun {
		st, err := store.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer st.Close()

		if initRequired(cfg.Database, initSchema) {
			if err := st.Init(ctx); err != nil {
				return err
			}
		}
		app = st
	}

	_, err = pipeline.Run(ctx, cfg, ex, app, w)
	return err
}

// initRequired reports whether the schema must be created before the import.
// A sqlite file is local to the run and is always initialized; a shared
// postgres database is only touched when asked.
func initRequired(db types.DatabaseConfig, requested bool) bool {
	return requested || db.Driver == types.DriverSQLite
}
