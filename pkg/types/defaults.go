// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Default values for a run against the clinic's report set.
const (
	DefaultChunkSize    = 10
	DefaultProfessional = "Alessandra"
	DefaultBlockGap     = 1.6
	DefaultColumnGap    = 2.0
	DefaultSchema       = "dente_de_leao_manager"
	DefaultPort         = 5432
	DefaultExportDir    = "assets/csv"
	DefaultSQLitePath   = "odonto.db"
)

// DefaultPDFPaths are the reports loaded when no paths are configured.
var DefaultPDFPaths = []string{
	"assets/pdf/ControleODONTO.pdf",
	"assets/pdf/ControleODONTO01-01-2024.pdf",
	"assets/pdf/ControleODONTO02-06-2024.pdf",
}

// DefaultBoilerplate marks letterhead and footer blocks of the report.
var DefaultBoilerplate = []string{
	"Floriano Peixoto, 323",
	"CEP",
	"Fone",
	"AGENDAMENTOS",
	"Convênio",
	"http",
	"ControleODONTO",
}

// DefaultConfig returns a Config populated with the defaults above. Database
// credentials stay blank.
func DefaultConfig() Config {
	return Config{
		PDFPaths:  append([]string(nil), DefaultPDFPaths...),
		ExportDir: DefaultExportDir,
		Extract: ExtractConfig{
			Boilerplate: append([]string(nil), DefaultBoilerplate...),
			BlockGap:    DefaultBlockGap,
			ColumnGap:   DefaultColumnGap,
		},
		Classify: ClassifyConfig{
			ChunkSize:    DefaultChunkSize,
			Professional: DefaultProfessional,
		},
		Database: DatabaseConfig{
			Driver: DriverPostgres,
			Port:   DefaultPort,
			Schema: DefaultSchema,
			Path:   DefaultSQLitePath,
		},
	}
}
