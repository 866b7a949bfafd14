package utils

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestWorkspace_Layout(t *testing.T) {
	base := t.TempDir()
	ws, err := NewWorkspace(base, "Dimension_files", "QA", "PROD")
	if err != nil {
		t.Fatalf("NewWorkspace: %v", err)
	}

	if !strings.HasPrefix(filepath.Base(ws.Root), "Dimension_files-") {
		t.Errorf("Root = %q", ws.Root)
	}
	for _, dir := range []string{"normalized", "QA", "PROD", "differences"} {
		if !FileExists(filepath.Join(ws.Root, dir)) {
			t.Errorf("missing %s directory", dir)
		}
	}

	path, err := ws.WriteNormalized(Side2, "!VERSION=11\n")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "PROD.txt" {
		t.Errorf("normalized path = %q", path)
	}

	if err := ws.Cleanup(); err != nil {
		t.Fatal(err)
	}
	if FileExists(ws.Root) {
		t.Error("Cleanup should remove the workspace")
	}
}

func TestWorkspace_SectionRoundTrip(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir(), "ws", "a", "b")
	if err != nil {
		t.Fatal(err)
	}

	lines := []string{"EUR;Units;Multiply;Y;English=Euro", "USD;Units;Multiply;Y;"}
	if err := ws.WriteSection(Side1, "CURRENCIES", lines); err != nil {
		t.Fatal(err)
	}
	got, err := ws.ReadSection(Side1, "CURRENCIES")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, lines) {
		t.Errorf("ReadSection = %q, want %q", got, lines)
	}

	if err := ws.WriteSection(Side2, "ICPM", nil); err != nil {
		t.Fatal(err)
	}
	got, err = ws.ReadSection(Side2, "ICPM")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("empty section read back as %q", got)
	}

	if _, err := ws.ReadSection(Side2, "NOPE"); err == nil {
		t.Error("reading an unwritten section should fail")
	}
}

func TestWorkspace_SameLabels(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir(), "ws", "Metadata", "Metadata")
	if err != nil {
		t.Fatal(err)
	}
	if err := ws.WriteSection(Side1, "AccountM", []string{"one"}); err != nil {
		t.Fatal(err)
	}
	if err := ws.WriteSection(Side2, "AccountM", []string{"two"}); err != nil {
		t.Fatal(err)
	}
	got, _ := ws.ReadSection(Side1, "AccountM")
	if len(got) != 1 || got[0] != "one" {
		t.Errorf("side 1 was overwritten: %q", got)
	}
}

func TestWorkspace_WriteDiff(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir(), "ws", "a", "b")
	if err != nil {
		t.Fatal(err)
	}
	unified := func(w io.Writer) error {
		_, err := io.WriteString(w, "--- a\n+++ b\n")
		return err
	}
	if err := ws.WriteDiff("EntityM", unified, []string{"E1"}, []string{"E2", "E3"}); err != nil {
		t.Fatal(err)
	}

	dir := filepath.Join(ws.Root, "differences", "EntityM")
	diff, err := os.ReadFile(filepath.Join(dir, "diff.txt"))
	if err != nil || !bytes.HasPrefix(diff, []byte("--- a")) {
		t.Errorf("diff.txt = %q, %v", diff, err)
	}
	only2, err := os.ReadFile(filepath.Join(dir, "file2.txt"))
	if err != nil || string(only2) != "E2\nE3\n" {
		t.Errorf("file2.txt = %q, %v", only2, err)
	}
}

func TestGenerateReportFileName(t *testing.T) {
	now := time.Date(2024, 1, 15, 14, 30, 22, 0, time.UTC)
	tests := []struct {
		format string
		want   string
	}{
		{"Results_{timestamp}.xlsx", "Results_20240115_143022.xlsx"},
		{"{file1}_vs_{file2}_{date}", "QA_vs_PROD_20240115.xlsx"},
		{"Results_{time}.XLSX", "Results_143022.XLSX"},
	}
	for _, tt := range tests {
		got := GenerateReportFileName(tt.format, now, map[string]string{"file1": "QA", "file2": "PROD"})
		if got != tt.want {
			t.Errorf("GenerateReportFileName(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}

	got := GenerateReportFileName("r_{uuid}.xlsx", now, nil)
	if len(got) != len("r_.xlsx")+36 {
		t.Errorf("uuid placeholder not replaced: %q", got)
	}
}
