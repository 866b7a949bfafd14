package validation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ginjaninja78/hfm-metadata-compare/internal/schema"
)

func TestCheckInputs(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "ABTPROD_Metadata.app")
	if err := os.WriteFile(present, []byte("!VERSION=1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		paths     []string
		wantValid bool
	}{
		{"both present", []string{present, present}, true},
		{"empty name", []string{"", present}, false},
		{"missing file", []string{present, filepath.Join(dir, "absent.app")}, false},
		{"directory", []string{dir, present}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckInputs(tt.paths...)
			if result.IsValid() != tt.wantValid {
				t.Fatalf("IsValid = %v, want %v (%v)", result.IsValid(), tt.wantValid, result.Errors)
			}
			if !tt.wantValid && !errors.Is(result.Err(), ErrMissingInput) {
				t.Errorf("Err = %v, want ErrMissingInput", result.Err())
			}
		})
	}
}

func TestCheckCustomDimensions(t *testing.T) {
	if err := CheckCustomDimensions([]string{"C1", "C2"}, []string{"P", "Q"}); err != nil {
		t.Errorf("same count should pass, got %v", err)
	}
	if err := CheckCustomDimensions(nil, []string{}); err != nil {
		t.Errorf("absent and empty should both count as zero, got %v", err)
	}

	err := CheckCustomDimensions([]string{"C1", "C2", "C3", "C4"}, []string{"C1", "C2"})
	if err == nil {
		t.Fatal("expected error for asymmetric customs")
	}
	if !errors.Is(err, ErrAsymmetricCustomDimensions) {
		t.Errorf("error should unwrap to ErrAsymmetricCustomDimensions: %v", err)
	}
	if !err.IsFatal() {
		t.Error("asymmetric customs should be fatal")
	}
}

func TestCheckEncoding(t *testing.T) {
	if err := CheckEncoding("cp1252"); err != nil {
		t.Errorf("cp1252: %v", err)
	}
	err := CheckEncoding("ebcdic")
	if err == nil || !errors.Is(err, ErrEncoding) {
		t.Errorf("ebcdic: got %v, want ErrEncoding", err)
	}
}

func TestCheckSectionShape(t *testing.T) {
	reg := schema.NewRegistry(schema.DefaultCustomCount)
	cur := reg.Lookup(schema.Currency)
	info := schema.Resolve("CURRENCIES", nil)

	good := []string{"EUR;Units;Multiply;Y;English=Euro", "USD;Units;Multiply;Y;English=Dollar;French=Dollar"}
	if w := CheckSectionShape(info, cur, good); w != nil {
		t.Errorf("matching records should not warn: %v", w)
	}

	bad := append(good, "GBP;Units;Y;English=Pound")
	w := CheckSectionShape(info, cur, bad)
	if w == nil {
		t.Fatal("expected warning for short record")
	}
	if w.IsFatal() {
		t.Error("shape mismatch should only warn")
	}
	if !strings.Contains(w.Message, "CURRENCIES") {
		t.Errorf("message should name the section: %q", w.Message)
	}

	hier := schema.Resolve("EntityH", nil)
	if w := CheckSectionShape(hier, reg.Lookup(schema.Entity), []string{"#root;E1;"}); w != nil {
		t.Errorf("hierarchy sections are not checked: %v", w)
	}
}

func TestResult(t *testing.T) {
	r := &Result{}
	r.Add(nil, &ValidationError{Severity: SeverityWarning, Check: "a", Message: "w"})
	if !r.IsValid() || r.Err() != nil {
		t.Fatal("warnings alone should leave the result valid")
	}
	r.Add(&ValidationError{Severity: SeverityError, Check: "b", Message: "e", Cause: ErrEncoding})
	if r.IsValid() || r.ErrorCount != 1 || r.WarningCount != 1 {
		t.Errorf("counts = %d/%d", r.ErrorCount, r.WarningCount)
	}
	if len(r.Warnings()) != 1 {
		t.Errorf("Warnings = %v", r.Warnings())
	}
}
