// =============================================================================
// HFM Metadata Compare - Validation Engine
// =============================================================================
//
// This module checks the inputs of a comparison run before and while the
// pipeline works on them:
//   - Both metadata file names are given and the files exist
//   - Both files declare the same number of custom dimensions
//   - Property records have the field count their schema expects
//
// ERROR HANDLING:
//   - Checks return ValidationErrors, they never stop the run themselves
//   - Severity "error" is fatal; the caller aborts before any report is written
//   - Severity "warning" is logged and the run continues
//   - Fatal errors unwrap to one of the sentinel errors below
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ginjaninja78/hfm-metadata-compare/internal/metadata"
	"github.com/ginjaninja78/hfm-metadata-compare/internal/schema"
)

// Sentinel errors for fatal conditions.
var (
	// ErrMissingInput means a metadata file name was empty or the file
	// does not exist.
	ErrMissingInput = errors.New("missing input file")

	// ErrAsymmetricCustomDimensions means the two files declare a different
	// number of custom dimensions.
	ErrAsymmetricCustomDimensions = errors.New("both files should have the same number of custom dimensions")

	// ErrEncoding means a file could not be decoded with the configured
	// encoding.
	ErrEncoding = errors.New("encoding error")
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single validation finding.
type ValidationError struct {
	// Severity indicates the severity of the finding.
	// "error" = fatal, the run stops
	// "warning" = non-fatal, the run continues
	Severity string

	// Check names the check that produced the finding, e.g. "custom_dimensions".
	Check string

	// Message is a human-readable description.
	Message string

	// Cause is the sentinel the finding unwraps to, if any.
	Cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", strings.ToUpper(e.Severity), e.Check, e.Message)
}

// Unwrap returns the sentinel error of a fatal finding.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// IsFatal reports whether the finding stops the run.
func (e *ValidationError) IsFatal() bool {
	return e.Severity == SeverityError
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// Result collects the findings of one or more checks.
type Result struct {
	// Errors contains all findings, including warnings.
	Errors []*ValidationError

	// ErrorCount is the number of fatal findings.
	ErrorCount int

	// WarningCount is the number of warnings.
	WarningCount int
}

// Add records findings.
func (r *Result) Add(errs ...*ValidationError) {
	for _, e := range errs {
		if e == nil {
			continue
		}
		r.Errors = append(r.Errors, e)
		if e.IsFatal() {
			r.ErrorCount++
		} else {
			r.WarningCount++
		}
	}
}

// IsValid is true if there are no fatal findings.
func (r *Result) IsValid() bool {
	return r.ErrorCount == 0
}

// Err returns the first fatal finding, or nil.
func (r *Result) Err() error {
	for _, e := range r.Errors {
		if e.IsFatal() {
			return e
		}
	}
	return nil
}

// Warnings returns the non-fatal findings.
func (r *Result) Warnings() []*ValidationError {
	var out []*ValidationError
	for _, e := range r.Errors {
		if !e.IsFatal() {
			out = append(out, e)
		}
	}
	return out
}

// =============================================================================
// INPUT CHECKS
// =============================================================================

// CheckInputs verifies that every path is non-empty and names an existing
// regular file.
func CheckInputs(paths ...string) *Result {
	result := &Result{}
	for i, path := range paths {
		if strings.TrimSpace(path) == "" {
			result.Add(&ValidationError{
				Severity: SeverityError,
				Check:    "inputs",
				Message:  fmt.Sprintf("file%d name is empty", i+1),
				Cause:    ErrMissingInput,
			})
			continue
		}

		info, err := os.Stat(path)
		switch {
		case err != nil:
			result.Add(&ValidationError{
				Severity: SeverityError,
				Check:    "inputs",
				Message:  fmt.Sprintf("%s could not be found", path),
				Cause:    ErrMissingInput,
			})
		case info.IsDir():
			result.Add(&ValidationError{
				Severity: SeverityError,
				Check:    "inputs",
				Message:  fmt.Sprintf("%s is a directory", path),
				Cause:    ErrMissingInput,
			})
		}
	}
	return result
}

// CheckEncoding verifies that an encoding name is supported.
func CheckEncoding(name string) *ValidationError {
	if _, err := metadata.LookupEncoding(name); err != nil {
		return &ValidationError{
			Severity: SeverityError,
			Check:    "encoding",
			Message:  err.Error(),
			Cause:    ErrEncoding,
		}
	}
	return nil
}

// CheckCustomDimensions compares the custom dimension lists of both files.
// A file without a custom order line counts as zero customs.
func CheckCustomDimensions(customs1, customs2 []string) *ValidationError {
	if len(customs1) == len(customs2) {
		return nil
	}
	return &ValidationError{
		Severity: SeverityError,
		Check:    "custom_dimensions",
		Message:  fmt.Sprintf("file1 declares %d, file2 declares %d", len(customs1), len(customs2)),
		Cause:    ErrAsymmetricCustomDimensions,
	}
}

// =============================================================================
// SECTION CHECKS
// =============================================================================

// CheckSectionShape warns once per section when property records do not
// carry the field count of the section's schema. Records of three fields or
// fewer are not property records and are not checked.
func CheckSectionShape(info schema.SectionInfo, sch *schema.Schema, lines []string) *ValidationError {
	if sch == nil || info.Kind != schema.KindMember {
		return nil
	}

	want := sch.Len()
	mismatched, sample := 0, 0
	for _, line := range lines {
		n := len(metadata.SplitFields(line))
		if n <= 3 || n == want {
			continue
		}
		// Multi-language descriptions add trailing fields.
		if n > want && sch.DescriptionsIndex(want) == want-1 {
			continue
		}
		if mismatched == 0 {
			sample = n
		}
		mismatched++
	}
	if mismatched == 0 {
		return nil
	}

	return &ValidationError{
		Severity: SeverityWarning,
		Check:    "section_shape",
		Message: fmt.Sprintf("%s: %d record(s) do not match the %s schema (%d fields expected, e.g. %d found); positional labels are used",
			info.Label(), mismatched, sch.Type, want, sample),
	}
}
