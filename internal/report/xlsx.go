package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the report worksheet.
const SheetName = "Differences"

// Header style of the report.
const (
	headerFontSize = 14
	headerFill     = "92D2E2"
)

// WriteXLSX writes the sink to an XLSX workbook with a styled header row.
//
// PARAMETERS:
//   - s: The accumulated report table.
//   - path: The path of the workbook to create.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved.
func WriteXLSX(s *Sink, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name report sheet: %w", err)
	}

	if err := writeRow(f, 1, s.Header()); err != nil {
		return err
	}
	for i, row := range s.Rows() {
		if err := writeRow(f, i+2, row); err != nil {
			return err
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: headerFontSize},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(s.Header()))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", style); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", lastCol, 24); err != nil {
		return err
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
