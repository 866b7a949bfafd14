// =============================================================================
// HFM Metadata Compare - Configuration Module
// =============================================================================
//
// This module is responsible for loading the comparison settings. Every value
// has a default, so the tool runs without any configuration file; a YAML file
// only needs the keys it changes. Command-line flags override both.
//
// PRECEDENCE (lowest to highest):
//   1. Built-in defaults (Default)
//   2. YAML configuration file (hfmcompare.yaml or --config)
//   3. Command-line flags
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/hfm-metadata-compare/internal/schema"
)

// DefaultConfigFile is read when present and no --config flag is given.
const DefaultConfigFile = "hfmcompare.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the settings of a comparison run.
type Config struct {
	// =========================================================================
	// INPUT SETTINGS
	// =========================================================================

	// File1 is the name of the first metadata file.
	// Default: "ABTPLNQA_Metadata.app"
	File1 string `yaml:"file1"`

	// File2 is the name of the second metadata file.
	// Default: "ABTPROD_Metadata.app"
	File2 string `yaml:"file2"`

	// Path is the directory holding both metadata files.
	// Default: "" (current working directory)
	Path string `yaml:"path"`

	// Encoding is the code page of the metadata files.
	// Valid values: "windows-1252", "iso-8859-1", "utf-8"
	// Default: "windows-1252"
	Encoding string `yaml:"encoding"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is where the report is written.
	// Default: "" (same directory as the metadata files)
	OutputDir string `yaml:"output_dir"`

	// ReportNameFormat defines the report file name.
	// Placeholders:
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {uuid}      - A random UUID
	//   {file1}     - Label of file 1
	//   {file2}     - Label of file 2
	// Default: "Results_{timestamp}.xlsx"
	ReportNameFormat string `yaml:"report_name_format"`

	// CSVExport also writes the report table as CSV next to the workbook.
	// Default: false
	CSVExport bool `yaml:"csv_export"`

	// UniformMissingRows pads Missing rows found from the file 2 side to the
	// full report width.
	// Default: false
	UniformMissingRows bool `yaml:"uniform_missing_rows"`

	// =========================================================================
	// WORKSPACE SETTINGS
	// =========================================================================

	// WorkDir is the name prefix of the scratch directory created under Path.
	// Default: "Dimension_files"
	WorkDir string `yaml:"work_dir"`

	// KeepTemp keeps the scratch directory after the run.
	// Default: false
	KeepTemp bool `yaml:"keep_temp"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// NoColor disables coloured log output.
	NoColor bool `yaml:"no_color"`

	// =========================================================================
	// SCHEMA SETTINGS
	// =========================================================================

	// CustomDimensions names the custom dimensions when the files carry no
	// custom order line.
	CustomDimensions []string `yaml:"custom_dimensions"`

	// SchemaWorkbook is an optional XLSX workbook of property schemas.
	SchemaWorkbook string `yaml:"schema_workbook"`

	// Schemas overrides property lists per dimension type.
	// Example:
	//   schemas:
	//     Currency: [Label, Scale, TranslationOperator, DisplayInICT, Descriptions]
	Schemas map[string][]string `yaml:"schemas"`
}

// =============================================================================
// LOADING
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML configuration file on top of the defaults.
//
// PARAMETERS:
//   - path: The path to the configuration file.
//
// RETURNS:
//   - The merged configuration.
//   - An error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path. When the file does not exist and was not asked
// for explicitly, the defaults are returned instead.
func LoadOrDefault(path string, explicit bool) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if err != nil && !explicit && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.File1 == "" {
		cfg.File1 = "ABTPLNQA_Metadata.app"
	}
	if cfg.File2 == "" {
		cfg.File2 = "ABTPROD_Metadata.app"
	}
	if cfg.Encoding == "" {
		cfg.Encoding = "windows-1252"
	}
	if cfg.ReportNameFormat == "" {
		cfg.ReportNameFormat = "Results_{timestamp}.xlsx"
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "Dimension_files"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// Validate checks option values that can be checked without touching the
// metadata files.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if strings.ContainsAny(c.WorkDir, `/\`) {
		return fmt.Errorf("work_dir must be a plain directory name, got %q", c.WorkDir)
	}
	if _, err := c.SchemaOverrides(); err != nil {
		return err
	}
	return nil
}

// SchemaOverrides converts the "schemas" key into typed property lists.
func (c *Config) SchemaOverrides() (map[schema.DimensionType][]string, error) {
	out := make(map[schema.DimensionType][]string, len(c.Schemas))
	for name, props := range c.Schemas {
		t, err := schema.ParseDimensionType(name)
		if err != nil {
			return nil, fmt.Errorf("schemas: %w", err)
		}
		out[t] = props
	}
	return out, nil
}

// OutputDirectory returns the directory the report is written to.
func (c *Config) OutputDirectory() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return c.Path
}
