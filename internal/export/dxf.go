package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/cutlistpro/cutlist/internal/model"
)

// sheetGap is the horizontal spacing between sheets in the DXF model space.
const sheetGap = 200.0

// ExportDXF writes the cutting layout as a DXF drawing. Sheets are laid
// out side by side in model space, each on a SHEET outline layer with its
// pieces on a PIECES layer and piece names on a LABELS layer. The drawing
// can be loaded by CAD software or a CNC nesting tool for further work.
func ExportDXF(path string, report *model.Report) error {
	if report == nil || len(report.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	d := dxf.NewDrawing()
	d.AddLayer("SHEET", color.Grey128, table.LT_CONTINUOUS, true)
	d.AddLayer("PIECES", color.Green, table.LT_CONTINUOUS, false)
	d.AddLayer("LABELS", color.Yellow, table.LT_CONTINUOUS, false)

	offsetX := 0.0
	for _, sheet := range report.Sheets {
		if err := drawSheet(d, sheet, offsetX); err != nil {
			return fmt.Errorf("failed to draw sheet %d: %w", sheet.ID, err)
		}
		offsetX += sheet.SheetWidth + sheetGap
	}

	return d.SaveAs(path)
}

// drawSheet renders one sheet outline and its pieces at the given X offset.
func drawSheet(d *drawing.Drawing, sheet model.SheetLayout, offsetX float64) error {
	if err := d.ChangeLayer("SHEET"); err != nil {
		return err
	}
	if _, err := d.LwPolyline(true,
		[]float64{offsetX, 0, 0},
		[]float64{offsetX + sheet.SheetWidth, 0, 0},
		[]float64{offsetX + sheet.SheetWidth, sheet.SheetHeight, 0},
		[]float64{offsetX, sheet.SheetHeight, 0},
	); err != nil {
		return err
	}

	if err := d.ChangeLayer("PIECES"); err != nil {
		return err
	}
	for _, p := range sheet.Pieces {
		x := offsetX + p.X
		if _, err := d.LwPolyline(true,
			[]float64{x, p.Y, 0},
			[]float64{x + p.Width, p.Y, 0},
			[]float64{x + p.Width, p.Y + p.Height, 0},
			[]float64{x, p.Y + p.Height, 0},
		); err != nil {
			return err
		}
	}

	if err := d.ChangeLayer("LABELS"); err != nil {
		return err
	}
	for _, p := range sheet.Pieces {
		height := labelTextHeight(p.Width, p.Height)
		if height <= 0 {
			continue
		}
		x := offsetX + p.X + p.Width/2 - float64(len(p.Name))*height*0.35
		y := p.Y + p.Height/2 - height/2
		if _, err := d.Text(p.Name, x, y, 0, height); err != nil {
			return err
		}
	}

	return nil
}

// labelTextHeight picks a text height that fits the piece, or 0 to skip
// labeling pieces too small to carry readable text.
func labelTextHeight(w, h float64) float64 {
	minDim := w
	if h < minDim {
		minDim = h
	}
	switch {
	case minDim >= 200:
		return 30
	case minDim >= 80:
		return 15
	case minDim >= 40:
		return 8
	default:
		return 0
	}
}
