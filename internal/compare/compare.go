// =============================================================================
// HFM Metadata Compare - Comparison Pipeline
// =============================================================================
//
// This module orchestrates one comparison run, from reading both metadata
// files to writing the report.
//
// COMPARISON PIPELINE:
//   1. Validate the inputs (file names, files, encoding)
//   2. Read and decode both files
//   3. Check that both files declare the same number of custom dimensions
//   4. Normalize both files into the run workspace
//   5. Split both files into sections
//   6. Pair sections by name, warn about sections present in one file only
//   7. For each pair: diff the lines, classify the unique lines into rows
//   8. Write the XLSX report (and the optional CSV export)
//
// The workspace is removed when Run returns, on success and on failure,
// unless KeepTemp is set.
//
// =============================================================================

package compare

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ginjaninja78/hfm-metadata-compare/internal/classifier"
	"github.com/ginjaninja78/hfm-metadata-compare/internal/config"
	"github.com/ginjaninja78/hfm-metadata-compare/internal/differ"
	"github.com/ginjaninja78/hfm-metadata-compare/internal/logging"
	"github.com/ginjaninja78/hfm-metadata-compare/internal/metadata"
	"github.com/ginjaninja78/hfm-metadata-compare/internal/report"
	"github.com/ginjaninja78/hfm-metadata-compare/internal/schema"
	"github.com/ginjaninja78/hfm-metadata-compare/internal/validation"
	"github.com/ginjaninja78/hfm-metadata-compare/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a comparison run.
type Result struct {
	// ReportPath is the path to the generated XLSX report.
	ReportPath string

	// CSVPath is the path to the CSV export, empty unless enabled.
	CSVPath string

	// Workspace is the scratch directory. It no longer exists after Run
	// unless KeepTemp was set.
	Workspace string

	// Stats contains run statistics.
	Stats Stats
}

// Stats contains statistics about a run.
type Stats struct {
	// SectionsCompared is the number of section pairs compared.
	SectionsCompared int

	// SectionsSkipped is the number of sections present in one file only.
	SectionsSkipped int

	// Rows is the number of report rows, header excluded.
	Rows int

	// Warnings is the number of validation warnings.
	Warnings int

	// Duration is the wall time of the run.
	Duration time.Duration
}

// =============================================================================
// COMPARER
// =============================================================================

// Comparer runs the comparison pipeline for one pair of metadata files.
type Comparer struct {
	cfg    *config.Config
	logger logging.Logger
	now    func() time.Time
}

// New creates a new Comparer.
//
// PARAMETERS:
//   - cfg: The run configuration. File1 and File2 are resolved against Path
//          unless they are absolute.
//   - logger: The logger to report progress to. nil discards all output.
func New(cfg *config.Config, logger logging.Logger) *Comparer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Comparer{cfg: cfg, logger: logger, now: time.Now}
}

// runContext carries the state of one run through the pipeline stages.
type runContext struct {
	cfg         *config.Config
	logger      logging.Logger
	ws          *utils.Workspace
	sink        *report.Sink
	registry    *schema.Registry
	customNames []string
	paths       [2]string
	labels      [2]string
	stats       *Stats
}

// Run executes the comparison.
//
// RETURNS:
//   - The run result.
//   - An error for fatal conditions. Fatal errors unwrap to one of the
//     validation sentinels where one applies; no report is written.
func (c *Comparer) Run() (res Result, err error) {
	start := c.now()
	c.logger.Info("Processing started")

	rc := &runContext{
		cfg:    c.cfg,
		logger: c.logger,
		paths:  [2]string{c.inputPath(c.cfg.File1), c.inputPath(c.cfg.File2)},
		stats:  &res.Stats,
	}

	// =========================================================================
	// STEP 1: VALIDATE INPUTS
	// =========================================================================

	checks := validation.CheckInputs(rc.paths[0], rc.paths[1])
	checks.Add(validation.CheckEncoding(c.cfg.Encoding))
	for _, w := range checks.Warnings() {
		c.logger.Warn("%s", w.Message)
	}
	if !checks.IsValid() {
		err := checks.Err()
		c.logger.Error("%s", err)
		return res, err
	}
	rc.labels = [2]string{report.FileLabel(rc.paths[0]), report.FileLabel(rc.paths[1])}

	// =========================================================================
	// STEP 2: READ BOTH FILES
	// =========================================================================

	var contents [2]string
	for i, path := range rc.paths {
		contents[i], err = metadata.ReadFile(path, c.cfg.Encoding)
		if err != nil {
			if errors.Is(err, metadata.ErrInvalidUTF8) || errors.Is(err, metadata.ErrUndefinedByte) ||
				errors.Is(err, metadata.ErrUnsupportedEncoding) {
				err = fmt.Errorf("%w: %w", validation.ErrEncoding, err)
			}
			return res, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	// =========================================================================
	// STEP 3: CUSTOM DIMENSIONS
	// =========================================================================

	customs1 := metadata.CustomDimensions(contents[0])
	customs2 := metadata.CustomDimensions(contents[1])
	if verr := validation.CheckCustomDimensions(customs1, customs2); verr != nil {
		c.logger.Error("Both files should have the same number of custom dimensions")
		return res, verr
	}

	names, count := customNames(customs1, customs2, c.cfg.CustomDimensions)
	rc.customNames = names
	rc.registry, err = BuildRegistry(c.cfg, count)
	if err != nil {
		return res, err
	}
	c.logger.Debug("Using %d custom dimension(s): %s", count, strings.Join(names, ", "))

	// =========================================================================
	// STEP 4: WORKSPACE AND NORMALIZATION
	// =========================================================================

	rc.ws, err = utils.NewWorkspace(c.workspaceBase(), c.cfg.WorkDir, rc.labels[0], rc.labels[1])
	if err != nil {
		return res, err
	}
	res.Workspace = rc.ws.Root
	c.logger.Debug("Run %s working in %s", rc.ws.RunID, rc.ws.Root)
	defer func() {
		if c.cfg.KeepTemp {
			c.logger.Info("Temporary files kept in %s", rc.ws.Root)
			return
		}
		if cerr := rc.ws.Cleanup(); cerr != nil {
			c.logger.Warn("%s", cerr)
		}
	}()

	var splits [2]*metadata.SplitResult
	for i, side := range []utils.Side{utils.Side1, utils.Side2} {
		splits[i], err = rc.prepare(side, contents[i])
		if err != nil {
			return res, err
		}
	}

	// =========================================================================
	// STEP 5: COMPARE SECTION PAIRS
	// =========================================================================

	rc.sink = report.NewSink(rc.labels[0], rc.labels[1])
	rc.sink.SetUniformRows(c.cfg.UniformMissingRows)

	pairing := MatchSections(splits[0], splits[1])
	for _, name := range pairing.OnlyIn1 {
		rc.skip(name, c.cfg.File2)
	}
	for _, name := range pairing.Pairs {
		if err := rc.comparePair(name); err != nil {
			return res, err
		}
	}
	for _, name := range pairing.OnlyIn2 {
		rc.skip(name, c.cfg.File1)
	}

	// =========================================================================
	// STEP 6: WRITE THE REPORT
	// =========================================================================

	if err := c.writeReport(rc, &res, start); err != nil {
		return res, err
	}

	res.Stats.Rows = rc.sink.Len()
	res.Stats.Duration = c.now().Sub(start)
	c.logger.Info("Processing completed in %.2f secs", res.Stats.Duration.Seconds())
	c.logger.Info("Compared %d section(s), skipped %d, %d difference row(s)",
		res.Stats.SectionsCompared, res.Stats.SectionsSkipped, res.Stats.Rows)
	c.logger.Info("Results file: %s", res.ReportPath)
	return res, nil
}

// prepare normalizes one input, stores it, and splits it into section files.
func (rc *runContext) prepare(side utils.Side, content string) (*metadata.SplitResult, error) {
	file := filepath.Base(rc.paths[side-1])

	rc.logger.Info("Removing extra whitespace from %s", file)
	normalized := metadata.Normalize(content)
	if _, err := rc.ws.WriteNormalized(side, normalized); err != nil {
		return nil, err
	}

	rc.logger.Info("Separating sections of %s", file)
	split := metadata.Split(normalized)
	if split.Orphans > 0 {
		rc.logger.Debug("%s: dropped %d line(s) before the first section marker", file, split.Orphans)
	}
	for _, s := range split.Sections {
		if err := rc.ws.WriteSection(side, s.Name, s.Lines); err != nil {
			return nil, err
		}
	}
	return split, nil
}

func (rc *runContext) skip(name, missingFrom string) {
	info := schema.Resolve(name, rc.customNames)
	rc.logger.Warn("%s doesn't exist in %s... skipping the comparison", info.Label(), missingFrom)
	rc.stats.SectionsSkipped++
}

// comparePair diffs and classifies one section present in both files.
func (rc *runContext) comparePair(name string) error {
	info := schema.Resolve(name, rc.customNames)
	sch := rc.registry.Lookup(info.Type)
	rc.logger.Info("Comparing %s", info.Label())

	lines1, err := rc.ws.ReadSection(utils.Side1, name)
	if err != nil {
		return err
	}
	lines2, err := rc.ws.ReadSection(utils.Side2, name)
	if err != nil {
		return err
	}

	for i, lines := range [][]string{lines1, lines2} {
		if w := validation.CheckSectionShape(info, sch, lines); w != nil {
			rc.logger.Warn("%s: %s", rc.labels[i], w.Message)
			rc.stats.Warnings++
		}
	}

	diff := differ.Diff(lines1, lines2)
	unified := func(w io.Writer) error {
		return differ.Unified(w, lines1, lines2, rc.labels[0]+"/"+name, rc.labels[1]+"/"+name)
	}
	if err := rc.ws.WriteDiff(name, unified, diff.Only1, diff.Only2); err != nil {
		return err
	}

	rc.stats.SectionsCompared++
	if diff.Empty() {
		rc.logger.Debug("%s: no differences", info.Label())
		return nil
	}

	rows := classifier.Classify(info, sch, diff.Only1, diff.Only2)
	rc.logger.Debug("%s: %d unique line(s) in %s, %d in %s, %d row(s)",
		info.Label(), len(diff.Only1), rc.labels[0], len(diff.Only2), rc.labels[1], len(rows))
	rc.sink.Append(rows...)
	return nil
}

// =============================================================================
// OUTPUT
// =============================================================================

func (c *Comparer) writeReport(rc *runContext, res *Result, start time.Time) error {
	outDir := c.cfg.OutputDirectory()
	if outDir == "" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	name := utils.GenerateReportFileName(c.cfg.ReportNameFormat, start, map[string]string{
		"file1": rc.labels[0],
		"file2": rc.labels[1],
	})
	res.ReportPath = filepath.Join(outDir, name)
	if utils.FileExists(res.ReportPath) {
		c.logger.Warn("%s already exists and will be overwritten", res.ReportPath)
	}

	c.logger.Info("Saving final results file")
	if err := report.WriteXLSX(rc.sink, res.ReportPath); err != nil {
		return err
	}

	if c.cfg.CSVExport {
		res.CSVPath = strings.TrimSuffix(res.ReportPath, filepath.Ext(res.ReportPath)) + ".csv"
		if err := report.WriteCSV(rc.sink, res.CSVPath, c.cfg.Encoding); err != nil {
			return err
		}
		c.logger.Info("CSV export: %s", res.CSVPath)
	}
	return nil
}

func (c *Comparer) inputPath(name string) string {
	if name == "" || filepath.IsAbs(name) || c.cfg.Path == "" {
		return name
	}
	return filepath.Join(c.cfg.Path, name)
}

func (c *Comparer) workspaceBase() string {
	if c.cfg.Path != "" {
		return c.cfg.Path
	}
	return "."
}
