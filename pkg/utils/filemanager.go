// =============================================================================
// HFM Metadata Compare - Workspace File Manager
// =============================================================================
//
// This module manages the scratch files of a comparison run, including:
//   - The per-run workspace directory
//   - Normalized copies of both metadata files
//   - One file per split section and input
//   - The per-section difference files
//   - Report file naming
//
// WORKSPACE LAYOUT:
//   <base>/<prefix>-<run id>/
//     normalized/<file1 label>.txt
//     normalized/<file2 label>.txt
//     <file1 label>/<section>.txt
//     <file2 label>/<section>.txt
//     differences/<section>/diff.txt    unified diff of the two sections
//     differences/<section>/file1.txt   lines only in file 1
//     differences/<section>/file2.txt   lines only in file 2
//
// Scratch files are UTF-8 regardless of the input code page. The whole
// directory is removed by Cleanup.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Side selects one of the two compared files.
type Side int

const (
	Side1 Side = 1
	Side2 Side = 2
)

// =============================================================================
// WORKSPACE
// =============================================================================

// Workspace is the scratch directory of one comparison run.
type Workspace struct {
	// Root is the run directory, e.g. "/data/Dimension_files-<run id>".
	Root string

	// RunID identifies the run.
	RunID string

	labels [2]string
}

// NewWorkspace creates a fresh run directory under baseDir.
//
// PARAMETERS:
//   - baseDir: The directory to create the workspace in. Empty means the
//              current directory.
//   - prefix: The name prefix of the run directory.
//   - label1, label2: The labels of both input files. Equal labels get a
//                     suffix on the second side so both sides stay apart.
//
// RETURNS:
//   - The workspace.
//   - An error if a directory cannot be created.
func NewWorkspace(baseDir, prefix, label1, label2 string) (*Workspace, error) {
	if baseDir == "" {
		baseDir = "."
	}
	if label1 == label2 {
		label2 += "_2"
	}

	runID := uuid.New().String()
	ws := &Workspace{
		Root:   filepath.Join(baseDir, prefix+"-"+runID),
		RunID:  runID,
		labels: [2]string{safeName(label1), safeName(label2)},
	}

	dirs := []string{
		ws.Root,
		filepath.Join(ws.Root, "normalized"),
		ws.sideDir(Side1),
		ws.sideDir(Side2),
		filepath.Join(ws.Root, "differences"),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return ws, nil
}

func (ws *Workspace) sideDir(side Side) string {
	return filepath.Join(ws.Root, ws.labels[side-1])
}

// WriteNormalized stores the normalized content of one input.
//
// RETURNS:
//   - The path of the written file.
//   - An error if writing fails.
func (ws *Workspace) WriteNormalized(side Side, content string) (string, error) {
	path := filepath.Join(ws.Root, "normalized", ws.labels[side-1]+".txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write normalized file: %w", err)
	}
	return path, nil
}

// WriteSection stores the lines of one section of one input.
func (ws *Workspace) WriteSection(side Side, name string, lines []string) error {
	path := filepath.Join(ws.sideDir(side), safeName(name)+".txt")
	if err := writeLines(path, lines); err != nil {
		return fmt.Errorf("failed to write section %s: %w", name, err)
	}
	return nil
}

// ReadSection loads the lines of one section of one input.
func (ws *Workspace) ReadSection(side Side, name string) ([]string, error) {
	path := filepath.Join(ws.sideDir(side), safeName(name)+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read section %s: %w", name, err)
	}
	content := strings.TrimSuffix(string(data), "\n")
	if content == "" {
		return nil, nil
	}
	return strings.Split(content, "\n"), nil
}

// WriteDiff stores the difference files of one section pair. unified renders
// the unified diff; it may be nil.
func (ws *Workspace) WriteDiff(name string, unified func(io.Writer) error, only1, only2 []string) error {
	dir := filepath.Join(ws.Root, "differences", safeName(name))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if unified != nil {
		file, err := os.Create(filepath.Join(dir, "diff.txt"))
		if err != nil {
			return fmt.Errorf("failed to create diff file: %w", err)
		}
		err = unified(file)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to write diff file: %w", err)
		}
	}

	if err := writeLines(filepath.Join(dir, "file1.txt"), only1); err != nil {
		return fmt.Errorf("failed to write differences: %w", err)
	}
	if err := writeLines(filepath.Join(dir, "file2.txt"), only2); err != nil {
		return fmt.Errorf("failed to write differences: %w", err)
	}
	return nil
}

// Cleanup removes the workspace directory and everything in it.
func (ws *Workspace) Cleanup() error {
	if err := os.RemoveAll(ws.Root); err != nil {
		return fmt.Errorf("failed to remove workspace %s: %w", ws.Root, err)
	}
	return nil
}

// =============================================================================
// FILE NAMING
// =============================================================================

// GenerateReportFileName generates a report file name from a format string.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID
//               {timestamp} - Timestamp of now (YYYYMMDD_HHMMSS)
//               {date}      - Date of now (YYYYMMDD)
//               {time}      - Time of now (HHMMSS)
//               {file1}     - Label of file 1
//               {file2}     - Label of file 2
//   - now: The time used for the time placeholders.
//   - params: A map of placeholder values.
//
// RETURNS:
//   - The generated file name, always ending in ".xlsx".
//
// EXAMPLE:
//   format: "Results_{timestamp}.xlsx"
//   output: "Results_20240115_143022.xlsx"
func GenerateReportFileName(format string, now time.Time, params map[string]string) string {
	replacements := map[string]string{
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}
	if strings.Contains(format, "{uuid}") {
		replacements["{uuid}"] = uuid.New().String()
	}
	for key, value := range params {
		replacements["{"+key+"}"] = value
	}

	result := format
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	if !strings.HasSuffix(strings.ToLower(result), ".xlsx") {
		result += ".xlsx"
	}
	return result
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// writeLines writes one line per entry, each terminated by "\n".
func writeLines(path string, lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

// safeName keeps a section or label usable as a single path element.
func safeName(name string) string {
	return strings.NewReplacer("/", "_", `\`, "_", "..", "_").Replace(name)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
