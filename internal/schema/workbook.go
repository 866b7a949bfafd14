// =============================================================================
// HFM Metadata Compare - Schema Workbook
// =============================================================================
//
// Property schemas can be maintained in an XLSX workbook instead of the YAML
// config. Each sheet describes one dimension type:
//
//   Sheet "Account"
//   | Column A          |
//   |-------------------|
//   | Property          |  <- header row, ignored
//   | Label             |
//   | AccountType       |
//   | ...               |
//   | Descriptions      |
//
// Sheet names must match a dimension type (Account, Entity, Scenario,
// Currency, Custom, Consolidation), case-insensitive. Sheets whose name starts
// with "_" are skipped.
//
// =============================================================================

package schema

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// WorkbookHeader is the header cell of every schema sheet.
const WorkbookHeader = "Property"

// LoadWorkbook reads property schemas from an XLSX workbook.
//
// PARAMETERS:
//   - path: The path to the workbook.
//
// RETURNS:
//   - The property lists keyed by dimension type.
//   - An error if the file cannot be read or a sheet name is not a known type.
func LoadWorkbook(path string) (map[DimensionType][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema workbook: %w", err)
	}
	defer f.Close()

	schemas := make(map[DimensionType][]string)
	for _, sheetName := range f.GetSheetList() {
		if strings.HasPrefix(sheetName, "_") {
			continue
		}

		t, err := ParseDimensionType(sheetName)
		if err != nil {
			return nil, fmt.Errorf("sheet '%s': %w", sheetName, err)
		}

		rows, err := f.GetRows(sheetName)
		if err != nil {
			return nil, fmt.Errorf("failed to read rows of sheet '%s': %w", sheetName, err)
		}

		var props []string
		for i, row := range rows {
			if i == 0 || len(row) == 0 {
				continue
			}
			if name := strings.TrimSpace(row[0]); name != "" {
				props = append(props, name)
			}
		}
		if len(props) == 0 {
			return nil, fmt.Errorf("sheet '%s' lists no properties", sheetName)
		}
		schemas[t] = props
	}

	return schemas, nil
}

// WriteWorkbook writes the registry as a schema workbook that LoadWorkbook
// can read back. It is the starting point for a customized schema file.
func WriteWorkbook(r *Registry, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range r.Types() {
		sheet := string(t)
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				return fmt.Errorf("failed to name sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", sheet, err)
		}

		if err := f.SetCellValue(sheet, "A1", WorkbookHeader); err != nil {
			return err
		}
		for row, prop := range r.Lookup(t).Properties {
			cell, err := excelize.CoordinatesToCellName(1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, prop); err != nil {
				return err
			}
		}
		if err := f.SetColWidth(sheet, "A", "A", 30); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save schema workbook: %w", err)
	}
	return nil
}
