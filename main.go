// =============================================================================
// HFM Metadata Compare - Main Entry Point
// =============================================================================
//
// This is the main entry point for the HFM Metadata Compare CLI application.
// It delegates command execution to the cmd package.
//
// USAGE:
//   hfmcompare compare       - Compare two metadata files and write the report
//   hfmcompare schemas       - Print the property schemas in effect
//   hfmcompare version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/                 : CLI command definitions (Cobra)
//   - internal/metadata    : Decoding, normalization and section splitting
//   - internal/schema      : Dimension types and property schemas
//   - internal/differ      : Line-level set difference
//   - internal/classifier  : Turns unique lines into report rows
//   - internal/report      : XLSX report and CSV export
//   - internal/compare     : The comparison pipeline
//   - pkg/utils            : Run workspace and file naming
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/hfm-metadata-compare/cmd"
)

func main() {
	cmd.Execute()
}
