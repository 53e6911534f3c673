package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cutlistpro/cutlist/internal/model"
)

// ExportXLSX writes the cutting report as an Excel workbook with three
// sheets: a summary, the per-sheet placements, and the cut list. The cut
// list sheet round-trips through ImportExcel.
func ExportXLSX(path string, report *model.Report, parts []model.Part) error {
	if report == nil || len(report.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E0E0E0"}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSummarySheet(f, report, headerStyle); err != nil {
		return err
	}
	if err := writePlacementsSheet(f, report, headerStyle); err != nil {
		return err
	}
	if err := writeCutListSheet(f, parts, headerStyle); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeSummarySheet(f *excelize.File, report *model.Report, headerStyle int) error {
	const name = "Summary"
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return err
	}

	rows := [][]interface{}{
		{"Algorithm", string(report.Summary.AlgorithmUsed)},
		{"Total Sheets", report.Summary.TotalSheets},
		{"Total Pieces", report.PieceCount()},
		{"Piece Area (m²)", report.Summary.TotalPieceAreaM2},
		{"Sheet Area (m²)", report.Summary.TotalSheetAreaM2},
		{"Utilization (%)", report.Summary.OverallUtilizationPercent},
		{"Waste (%)", report.Summary.OverallWastePercent},
	}
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(name, "A1", fmt.Sprintf("A%d", len(rows)), headerStyle); err != nil {
		return err
	}

	// Per-sheet breakdown below the overall figures
	startRow := len(rows) + 2
	header := []interface{}{"Sheet", "Width (mm)", "Height (mm)", "Pieces", "Utilization (%)", "Waste (%)"}
	if err := f.SetSheetRow(name, fmt.Sprintf("A%d", startRow), &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(name, fmt.Sprintf("A%d", startRow), fmt.Sprintf("F%d", startRow), headerStyle); err != nil {
		return err
	}
	for i, sheet := range report.Sheets {
		row := []interface{}{
			sheet.ID, sheet.SheetWidth, sheet.SheetHeight,
			len(sheet.Pieces), sheet.UtilizationPercent, sheet.WastePercent,
		}
		if err := f.SetSheetRow(name, fmt.Sprintf("A%d", startRow+1+i), &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(name, "A", "F", 16)
}

func writePlacementsSheet(f *excelize.File, report *model.Report, headerStyle int) error {
	const name = "Placements"
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	header := []interface{}{"Sheet", "Piece", "X (mm)", "Y (mm)", "Width (mm)", "Height (mm)", "Rotated"}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", "G1", headerStyle); err != nil {
		return err
	}

	rowNum := 2
	for _, sheet := range report.Sheets {
		for _, p := range sheet.Pieces {
			row := []interface{}{sheet.ID, p.Name, p.X, p.Y, p.Width, p.Height, p.Rotated}
			if err := f.SetSheetRow(name, fmt.Sprintf("A%d", rowNum), &row); err != nil {
				return err
			}
			rowNum++
		}
	}

	return f.SetColWidth(name, "A", "G", 14)
}

func writeCutListSheet(f *excelize.File, parts []model.Part, headerStyle int) error {
	const name = "Cut List"
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	header := []interface{}{"Name", "Length", "Width", "Thickness", "Quantity", "Material", "Rotatable"}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", "G1", headerStyle); err != nil {
		return err
	}

	for i, part := range parts {
		rotatable := "yes"
		if !part.Rotatable {
			rotatable = "no"
		}
		row := []interface{}{
			part.Name, part.Length, part.Width, part.Thickness,
			part.Quantity, part.MaterialRef, rotatable,
		}
		if err := f.SetSheetRow(name, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	return f.SetColWidth(name, "A", "G", 14)
}
