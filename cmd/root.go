// =============================================================================
// HFM Metadata Compare - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (hfmcompare)
//   ├── compareCmd (hfmcompare compare)
//   ├── schemasCmd (hfmcompare schemas)
//   └── versionCmd (hfmcompare version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose, --no-color)
//   2. Loading the configuration file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/hfm-metadata-compare/internal/config"
	"github.com/ginjaninja78/hfm-metadata-compare/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// noColor disables coloured log output.
var noColor bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "hfmcompare",
	Short: "HFM Metadata Compare - Report property differences between two HFM metadata extracts",
	Long: `HFM Metadata Compare reads two Hyperion Financial Management metadata
extracts (.app / .txt), splits them into their sections, and reports every
member, hierarchy and setting difference in an Excel workbook.

Each difference is one row: the dimension, the member, the property, and the
value in each file. Members present in only one file are marked "Missing".

Example Usage:
  hfmcompare compare                                    # ABTPLNQA_Metadata.app vs ABTPROD_Metadata.app
  hfmcompare compare --file1 QA.app --file2 PROD.app --path ./exports
  hfmcompare schemas --customs 6                        # Property layouts for 6 customs`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================
	// Persistent flags are available to this command and all subcommands.

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file, optional unless given explicitly",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().BoolVar(
		&noColor,
		"no-color",
		false,
		"Disable coloured log output",
	)
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig reads the configuration file. The default file may be absent;
// a file named with --config must exist.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit := cmd.Flags().Changed("config")
	cfg, err := config.LoadOrDefault(cfgFile, explicit)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}
	if noColor {
		cfg.NoColor = true
	}
	return cfg, nil
}

// newLogger creates the console logger for a command.
func newLogger(w io.Writer, cfg *config.Config) logging.Logger {
	logger := logging.NewConsole(w, cfg.LogLevel)
	if cfg.NoColor {
		logger.DisableColor()
	}
	return logger
}
