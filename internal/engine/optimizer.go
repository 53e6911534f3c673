package engine

import (
	"fmt"

	"github.com/cutlistpro/cutlist/internal/model"
)

// DefaultKerfWidth is the blade cut margin assumed when none is configured.
const DefaultKerfWidth = 3.0

// Optimizer is the orchestration facade: it expands part quantities into
// unit rectangles, dispatches to the selected strategy, and assembles the
// final report. Each Optimize call works on fresh state, so one Optimizer
// may serve concurrent runs.
type Optimizer struct {
	KerfWidth float64
}

// New creates an Optimizer with the given kerf width in mm.
func New(kerfWidth float64) *Optimizer {
	return &Optimizer{KerfWidth: kerfWidth}
}

// NewDefault creates an Optimizer with the default 3mm kerf.
func NewDefault() *Optimizer {
	return New(DefaultKerfWidth)
}

// ExpandParts turns each part into quantity unit rectangles. IDs are the
// part name plus a 1-based instance index ("Shelf_2"); display names keep
// the bare part name for single pieces. Input order is preserved.
func ExpandParts(parts []model.Part) []Rectangle {
	var rects []Rectangle
	for _, p := range parts {
		for i := 1; i <= p.Quantity; i++ {
			name := p.Name
			if p.Quantity > 1 {
				name = fmt.Sprintf("%s %d", p.Name, i)
			}
			rects = append(rects, Rectangle{
				ID:          fmt.Sprintf("%s_%d", p.Name, i),
				Name:        name,
				Width:       p.Length,
				Height:      p.Width,
				MaterialRef: p.MaterialRef,
				Priority:    p.Priority,
				Rotatable:   p.Rotatable,
			})
		}
	}
	return rects
}

// Optimize packs the given parts onto sheets of the given dimensions using
// the selected algorithm. It returns either a complete, internally
// consistent report or an error, never both: validation failures are
// *ValidationError and a piece that fits no orientation of the sheet is
// *UnplaceableError.
func (o *Optimizer) Optimize(parts []model.Part, sheetWidth, sheetHeight float64, materialRef string, thickness float64, algorithm model.Algorithm) (*model.Report, error) {
	if sheetWidth <= 0 {
		return nil, validationErrorf("sheet width", "must be positive, got %g", sheetWidth)
	}
	if sheetHeight <= 0 {
		return nil, validationErrorf("sheet height", "must be positive, got %g", sheetHeight)
	}
	if thickness <= 0 {
		return nil, validationErrorf("thickness", "must be positive, got %g", thickness)
	}
	if o.KerfWidth < 0 {
		return nil, validationErrorf("kerf width", "must not be negative, got %g", o.KerfWidth)
	}
	if len(parts) == 0 {
		return nil, validationErrorf("parts", "component list is empty")
	}
	for _, p := range parts {
		if err := p.Validate(); err != nil {
			return nil, validationErrorf("parts", "%v", err)
		}
	}
	strat, ok := strategyFor(algorithm)
	if !ok {
		return nil, validationErrorf("algorithm", "unknown algorithm %q (supported: %v)", algorithm, model.Algorithms())
	}

	tpl := SheetTemplate{
		Width:       sheetWidth,
		Height:      sheetHeight,
		MaterialRef: materialRef,
		Thickness:   thickness,
		KerfWidth:   o.KerfWidth,
	}

	rects := ExpandParts(parts)
	sheets, err := strat.pack(rects, tpl)
	if err != nil {
		return nil, err
	}

	return buildReport(sheets, rects, algorithm), nil
}

// buildReport converts the packed sheets into the output contract. Linear
// dimensions stay in mm; the area figures are converted to m² here, at the
// single boundary downstream cost calculators depend on.
func buildReport(sheets []*Sheet, rects []Rectangle, algorithm model.Algorithm) *model.Report {
	report := &model.Report{Sheets: make([]model.SheetLayout, 0, len(sheets))}

	for i, sheet := range sheets {
		layout := model.SheetLayout{
			ID:                 i + 1,
			SheetWidth:         sheet.Width,
			SheetHeight:        sheet.Height,
			MaterialRef:        sheet.MaterialRef,
			Thickness:          sheet.Thickness,
			Pieces:             make([]model.PlacedPiece, 0, len(sheet.Placed)),
			UtilizationPercent: sheet.Utilization(),
			WastePercent:       sheet.Waste(),
			UsedAreaM2:         sheet.UsedArea() / 1e6,
			TotalAreaM2:        sheet.TotalArea() / 1e6,
		}
		for _, p := range sheet.Placed {
			layout.Pieces = append(layout.Pieces, model.PlacedPiece{
				ID:       p.Rect.ID,
				Name:     p.Rect.Name,
				X:        p.X,
				Y:        p.Y,
				Width:    p.Width(),
				Height:   p.Height(),
				Rotated:  p.Rotated,
				ColorTag: ColorTag(p.Rect.Name),
			})
		}
		report.Sheets = append(report.Sheets, layout)
	}

	var pieceArea, sheetArea float64
	for _, r := range rects {
		pieceArea += r.Area()
	}
	for _, s := range sheets {
		sheetArea += s.TotalArea()
	}

	summary := model.Summary{
		TotalSheets:      len(sheets),
		TotalPieceAreaM2: pieceArea / 1e6,
		TotalSheetAreaM2: sheetArea / 1e6,
		AlgorithmUsed:    algorithm,
	}
	if sheetArea > 0 {
		summary.OverallUtilizationPercent = pieceArea / sheetArea * 100.0
	}
	summary.OverallWastePercent = 100.0 - summary.OverallUtilizationPercent
	report.Summary = summary

	return report
}
