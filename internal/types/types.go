// =============================================================================
// HFM Metadata Compare - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - classifier
//   - report
//   - compare
//
// =============================================================================

package types

// =============================================================================
// DIFF ROW TYPES
// =============================================================================

// RowKind identifies what a DiffRow reports.
type RowKind int

const (
	// RowChanged reports a property, setting value or aggregation weight that
	// differs between the two files.
	RowChanged RowKind = iota

	// RowMissingInFile2 reports a record found in file 1 with no counterpart
	// in file 2.
	RowMissingInFile2

	// RowMissingInFile1 reports a record found in file 2 with no counterpart
	// in file 1.
	RowMissingInFile1
)

// MissingMarker is written in the value column of the file a record is
// missing from.
const MissingMarker = "Missing"

// DiffRow represents a single detected difference in the output report.
type DiffRow struct {
	// Kind determines the shape of the rendered row.
	Kind RowKind

	// Dimension is the dimension (or non-dimensional section) name.
	// Example: "Account", "CURRENCIES"
	Dimension string

	// Member is the member label, the parent;child key of a hierarchy
	// record, or the whole line for settings and list records.
	Member string

	// Property is the schema property name for changed property records,
	// "Value" for settings, "aggrweight" for hierarchy weights, or the
	// section kind ("Member", "Hierarchy", "Setting") for missing records.
	Property string

	// File1Value is the value found in file 1.
	File1Value string

	// File2Value is the value found in file 2.
	File2Value string
}

// Cells renders the row as report cells.
//
// Missing rows discovered from the file 2 side carry one cell fewer than
// those discovered from the file 1 side: the "Missing" marker lands in the
// file 1 column and the file 2 column is omitted.
func (r DiffRow) Cells() []string {
	switch r.Kind {
	case RowMissingInFile2:
		return []string{r.Dimension, r.Member, r.Property, "", MissingMarker}
	case RowMissingInFile1:
		return []string{r.Dimension, r.Member, r.Property, MissingMarker}
	default:
		return []string{r.Dimension, r.Member, r.Property, r.File1Value, r.File2Value}
	}
}
