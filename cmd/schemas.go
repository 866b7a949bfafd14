// =============================================================================
// HFM Metadata Compare - Schemas Command
// =============================================================================
//
// This file defines the 'schemas' command, which prints the property layout
// used to label the fields of each dimension's member records.
//
// COMMAND USAGE:
//   hfmcompare schemas [--customs N] [--yaml] [--workbook FILE]
//
// OUTPUT:
//   Account (27)
//      1  Label
//      2  AccountType
//      ...
//
// The --yaml output can be pasted under the "schemas" key of the config file;
// the --workbook output can be edited and passed back with --schema-workbook.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/hfm-metadata-compare/internal/compare"
	"github.com/ginjaninja78/hfm-metadata-compare/internal/schema"
)

var schemasFlags struct {
	customs  int
	yaml     bool
	workbook string
}

// schemasCmd represents the 'schemas' command.
var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "Print the property schemas in effect",
	Long: `Print the ordered property names used to label the fields of member
records, per dimension type. Configured overrides (the "schemas" key and the
schema workbook) are applied.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if schemasFlags.customs < 0 {
			return fmt.Errorf("--customs must not be negative, got %d", schemasFlags.customs)
		}

		reg, err := compare.BuildRegistry(cfg, schemasFlags.customs)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case schemasFlags.workbook != "":
			if err := schema.WriteWorkbook(reg, schemasFlags.workbook); err != nil {
				return err
			}
			fmt.Fprintf(out, "Schema workbook written to %s\n", schemasFlags.workbook)

		case schemasFlags.yaml:
			doc := make(map[string][]string)
			for _, t := range reg.Types() {
				doc[string(t)] = reg.Lookup(t).Properties
			}
			data, err := yaml.Marshal(map[string]interface{}{"schemas": doc})
			if err != nil {
				return fmt.Errorf("failed to render schemas: %w", err)
			}
			if _, err := out.Write(data); err != nil {
				return fmt.Errorf("failed to write schemas: %w", err)
			}

		default:
			for _, t := range reg.Types() {
				sch := reg.Lookup(t)
				fmt.Fprintf(out, "%s (%d)\n", t, sch.Len())
				for i, p := range sch.Properties {
					fmt.Fprintf(out, "  %3d  %s\n", i+1, p)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemasCmd)

	flags := schemasCmd.Flags()
	flags.IntVar(&schemasFlags.customs, "customs", schema.DefaultCustomCount, "Number of custom dimensions of the application")
	flags.BoolVar(&schemasFlags.yaml, "yaml", false, "Print as YAML for the config file")
	flags.StringVar(&schemasFlags.workbook, "workbook", "", "Write the schemas to an XLSX workbook instead")
}
