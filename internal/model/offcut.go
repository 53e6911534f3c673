package model

import (
	"math"

	"github.com/google/uuid"
)

// Offcut is a usable rectangular remnant left on a sheet after cutting.
type Offcut struct {
	ID          string  `json:"id"`
	SheetID     int     `json:"sheet_id"` // source sheet in the report
	MaterialRef string  `json:"material_ref"`
	Thickness   float64 `json:"thickness"`
	X           float64 `json:"x"` // mm from sheet origin
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
}

// Area returns the offcut area in mm².
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// ToSheetSize converts the offcut into a stock size usable in future runs.
func (o Offcut) ToSheetSize() SheetSize {
	return SheetSize{Width: o.Width, Height: o.Height}
}

// MinOffcutDimension is the minimum width or height (mm) for a remnant to
// be worth keeping. Anything narrower is treated as waste.
const MinOffcutDimension = 50.0

// MinOffcutArea is the minimum remnant area in mm² (100x100 equivalent).
const MinOffcutArea = 10000.0

// DetectOffcuts finds the large rectangular remnants of a packed sheet:
// the strip to the right of all pieces and the strip above them. The kerf
// is added to the occupied extent so the remnant excludes the final cut.
func DetectOffcuts(layout SheetLayout, kerf float64) []Offcut {
	if len(layout.Pieces) == 0 {
		return []Offcut{{
			ID:          uuid.New().String()[:8],
			SheetID:     layout.ID,
			MaterialRef: layout.MaterialRef,
			Thickness:   layout.Thickness,
			Width:       layout.SheetWidth,
			Height:      layout.SheetHeight,
		}}
	}

	var maxRight, maxTop float64
	for _, p := range layout.Pieces {
		if r := p.X + p.Width + kerf; r > maxRight {
			maxRight = r
		}
		if t := p.Y + p.Height + kerf; t > maxTop {
			maxTop = t
		}
	}

	var offcuts []Offcut

	rightW := layout.SheetWidth - maxRight
	if rightW >= MinOffcutDimension && layout.SheetHeight >= MinOffcutDimension && rightW*layout.SheetHeight >= MinOffcutArea {
		offcuts = append(offcuts, Offcut{
			ID:          uuid.New().String()[:8],
			SheetID:     layout.ID,
			MaterialRef: layout.MaterialRef,
			Thickness:   layout.Thickness,
			X:           maxRight,
			Y:           0,
			Width:       rightW,
			Height:      layout.SheetHeight,
		})
	}

	// The top strip only spans up to the pieces' right edge so it does not
	// overlap the right strip.
	topH := layout.SheetHeight - maxTop
	topW := math.Min(maxRight, layout.SheetWidth)
	if topH >= MinOffcutDimension && topW >= MinOffcutDimension && topH*topW >= MinOffcutArea {
		offcuts = append(offcuts, Offcut{
			ID:          uuid.New().String()[:8],
			SheetID:     layout.ID,
			MaterialRef: layout.MaterialRef,
			Thickness:   layout.Thickness,
			X:           0,
			Y:           maxTop,
			Width:       topW,
			Height:      topH,
		})
	}

	return offcuts
}

// DetectAllOffcuts runs offcut detection over every sheet of a report.
func DetectAllOffcuts(report Report, kerf float64) []Offcut {
	var all []Offcut
	for _, layout := range report.Sheets {
		all = append(all, DetectOffcuts(layout, kerf)...)
	}
	return all
}
