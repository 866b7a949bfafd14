// =============================================================================
// HFM Metadata Compare - Compare Command
// =============================================================================
//
// This file defines the 'compare' command, the main command of the tool. It
// compares two metadata files and writes the differences report.
//
// COMMAND USAGE:
//   hfmcompare compare [flags]
//
// FLAGS:
//   --file1, --file2     : The metadata files (defaults from the config)
//   --path, -p           : Directory holding both files
//   --output, -o         : Directory for the report (default: --path)
//   --encoding           : Code page of the metadata files
//   --csv                : Also write the report as CSV
//   --keep-temp          : Keep the scratch directory
//   --uniform-rows       : Pad every Missing row to the full report width
//   --schema-workbook    : XLSX workbook with property schemas
//
// Flags override the configuration file; the configuration file overrides
// the built-in defaults.
//
// =============================================================================

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/hfm-metadata-compare/internal/compare"
	"github.com/ginjaninja78/hfm-metadata-compare/internal/config"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var compareFlags struct {
	file1          string
	file2          string
	path           string
	output         string
	encoding       string
	csv            bool
	keepTemp       bool
	uniformRows    bool
	schemaWorkbook string
}

// =============================================================================
// COMPARE COMMAND DEFINITION
// =============================================================================

// compareCmd represents the 'compare' command.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare two HFM metadata files",
	Long: `The compare command normalizes both metadata files, splits them into
sections (application settings, currencies, members and hierarchies of each
dimension, consolidation methods), and compares each section present in both
files.

Sections present in only one file are skipped with a warning.

On success:
  - Results_<timestamp>.xlsx is written to the output directory
  - The scratch directory is removed (unless --keep-temp)

On error:
  - No report is written
  - The command exits with status 1`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		applyCompareFlags(cmd, cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger := newLogger(cmd.ErrOrStderr(), cfg)
		_, err = compare.New(cfg, logger).Run()
		return err
	},
}

// applyCompareFlags copies the flags the user set onto the configuration.
func applyCompareFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("file1") {
		cfg.File1 = compareFlags.file1
	}
	if flags.Changed("file2") {
		cfg.File2 = compareFlags.file2
	}
	if flags.Changed("path") {
		cfg.Path = compareFlags.path
	}
	if flags.Changed("output") {
		cfg.OutputDir = compareFlags.output
	}
	if flags.Changed("encoding") {
		cfg.Encoding = compareFlags.encoding
	}
	if flags.Changed("csv") {
		cfg.CSVExport = compareFlags.csv
	}
	if flags.Changed("keep-temp") {
		cfg.KeepTemp = compareFlags.keepTemp
	}
	if flags.Changed("uniform-rows") {
		cfg.UniformMissingRows = compareFlags.uniformRows
	}
	if flags.Changed("schema-workbook") {
		cfg.SchemaWorkbook = compareFlags.schemaWorkbook
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(compareCmd)

	flags := compareCmd.Flags()
	flags.StringVar(&compareFlags.file1, "file1", "", "First metadata file (default ABTPLNQA_Metadata.app)")
	flags.StringVar(&compareFlags.file2, "file2", "", "Second metadata file (default ABTPROD_Metadata.app)")
	flags.StringVarP(&compareFlags.path, "path", "p", "", "Directory holding both metadata files")
	flags.StringVarP(&compareFlags.output, "output", "o", "", "Directory for the report (default: --path)")
	flags.StringVar(&compareFlags.encoding, "encoding", "", "Code page of the metadata files (default windows-1252)")
	flags.BoolVar(&compareFlags.csv, "csv", false, "Also write the report as CSV")
	flags.BoolVar(&compareFlags.keepTemp, "keep-temp", false, "Keep the scratch directory after the run")
	flags.BoolVar(&compareFlags.uniformRows, "uniform-rows", false, "Pad every Missing row to the full report width")
	flags.StringVar(&compareFlags.schemaWorkbook, "schema-workbook", "", "XLSX workbook with property schemas")
}
