package model

// PlacedPiece is one piece positioned on a sheet in the final report.
// Width and Height are the effective (possibly swapped) dimensions;
// X and Y locate the lower-left corner in sheet coordinates.
type PlacedPiece struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotated  bool    `json:"rotated"`
	ColorTag string  `json:"color"` // deterministic hsl() display hint
}

// SheetLayout is one packed stock sheet in the final report.
type SheetLayout struct {
	ID                 int           `json:"id"` // 1-based
	SheetWidth         float64       `json:"sheet_width"`
	SheetHeight        float64       `json:"sheet_height"`
	MaterialRef        string        `json:"material_ref"`
	Thickness          float64       `json:"thickness"`
	Pieces             []PlacedPiece `json:"pieces"`
	UtilizationPercent float64       `json:"utilization_percent"`
	WastePercent       float64       `json:"waste_percent"`
	UsedAreaM2         float64       `json:"used_area_m2"`
	TotalAreaM2        float64       `json:"total_area_m2"`
}

// Summary aggregates the whole run. Areas are in m²; linear inputs are mm.
type Summary struct {
	TotalSheets               int       `json:"total_sheets"`
	TotalPieceAreaM2          float64   `json:"total_piece_area_m2"`
	TotalSheetAreaM2          float64   `json:"total_sheet_area_m2"`
	OverallUtilizationPercent float64   `json:"overall_utilization_percent"`
	OverallWastePercent       float64   `json:"overall_waste_percent"`
	AlgorithmUsed             Algorithm `json:"algorithm_used"`
}

// Report is the complete output of one optimization run.
type Report struct {
	Sheets  []SheetLayout `json:"sheets"`
	Summary Summary       `json:"summary"`
}

// PieceCount returns the total number of placed pieces across all sheets.
func (r Report) PieceCount() int {
	n := 0
	for _, s := range r.Sheets {
		n += len(s.Pieces)
	}
	return n
}
