// =============================================================================
// HFM Metadata Compare - Line Differ
// =============================================================================
//
// The line differ reduces two section files to the lines that only one side
// has. Most of a section is normally identical between environments, so the
// record classifier only ever sees the (small) remainder.
//
// CONTRACT:
//   Only1 = every line of A that does not occur anywhere in B, in A's order.
//   Only2 = every line of B that does not occur anywhere in A, in B's order.
//
//   This is a set difference, not a positional diff: a line that merely moved
//   is not reported. The sequence matcher only narrows the candidates; the
//   membership filter makes the result exact.
//
// =============================================================================

package differ

import (
	"io"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Result holds the lines unique to each side.
type Result struct {
	Only1 []string
	Only2 []string
}

// Empty reports whether both sides are identical as sets of lines.
func (r Result) Empty() bool {
	return len(r.Only1) == 0 && len(r.Only2) == 0
}

// Diff computes the lines unique to a and to b.
func Diff(a, b []string) Result {
	var cand1, cand2 []string

	matcher := difflib.NewMatcher(a, b)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'd':
			cand1 = append(cand1, a[op.I1:op.I2]...)
		case 'i':
			cand2 = append(cand2, b[op.J1:op.J2]...)
		case 'r':
			cand1 = append(cand1, a[op.I1:op.I2]...)
			cand2 = append(cand2, b[op.J1:op.J2]...)
		}
	}

	return Result{
		Only1: absentFrom(cand1, b),
		Only2: absentFrom(cand2, a),
	}
}

// absentFrom keeps the candidates that do not occur in other.
func absentFrom(candidates, other []string) []string {
	if len(candidates) == 0 {
		return nil
	}
	present := make(map[string]struct{}, len(other))
	for _, line := range other {
		present[line] = struct{}{}
	}

	var out []string
	for _, line := range candidates {
		if _, ok := present[line]; !ok {
			out = append(out, line)
		}
	}
	return out
}

// Unified writes a unified diff of a and b to w. The section comparison keeps
// it in the scratch area for inspection with --keep-temp.
func Unified(w io.Writer, a, b []string, fromFile, toFile string) error {
	return difflib.WriteUnifiedDiff(w, difflib.UnifiedDiff{
		A:        withNewlines(a),
		B:        withNewlines(b),
		FromFile: fromFile,
		ToFile:   toFile,
		Context:  3,
	})
}

func withNewlines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if !strings.HasSuffix(l, "\n") {
			l += "\n"
		}
		out[i] = l
	}
	return out
}
