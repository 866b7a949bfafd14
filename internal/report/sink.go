// =============================================================================
// HFM Metadata Compare - Report Sink
// =============================================================================
//
// The sink accumulates report rows in discovery order. It is append-only; the
// writers in this package turn it into the terminal deliverable.
//
// TABLE LAYOUT:
//   | Dimension | Member Name | Property | <File1Label> | <File2Label> |
//
// =============================================================================

package report

import (
	"path/filepath"
	"strings"

	"github.com/ginjaninja78/hfm-metadata-compare/internal/types"
)

// Fixed header columns preceding the two file labels.
var fixedHeader = []string{"Dimension", "Member Name", "Property"}

// Sink is an append-only table of report rows.
type Sink struct {
	header []string
	rows   [][]string

	// uniform pads short rows to the header width.
	uniform bool
}

// NewSink creates a sink whose value columns are labelled with the two file
// labels.
func NewSink(file1Label, file2Label string) *Sink {
	header := append(append([]string{}, fixedHeader...), file1Label, file2Label)
	return &Sink{header: header}
}

// SetUniformRows pads every row to the header width. By default Missing rows
// found from the file 2 side keep their shorter shape.
func (s *Sink) SetUniformRows(uniform bool) {
	s.uniform = uniform
}

// Append adds rows to the table.
func (s *Sink) Append(rows ...types.DiffRow) {
	for _, r := range rows {
		cells := r.Cells()
		if s.uniform {
			for len(cells) < len(s.header) {
				cells = append(cells, "")
			}
		}
		s.rows = append(s.rows, cells)
	}
}

// Header returns the header row.
func (s *Sink) Header() []string {
	return s.header
}

// Rows returns the data rows, without the header.
func (s *Sink) Rows() [][]string {
	return s.rows
}

// Len returns the number of data rows.
func (s *Sink) Len() int {
	return len(s.rows)
}

// FileLabel returns the column label of an input file: its base name without
// extension.
func FileLabel(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i > 0 {
		return base[:i]
	}
	return base
}
