package model

import "math"

// EdgeBanding flags which edges of a part receive banding tape.
// Top and bottom edges run along the part's length; left and right
// edges run along its width.
type EdgeBanding struct {
	Top    bool `json:"top"`
	Bottom bool `json:"bottom"`
	Left   bool `json:"left"`
	Right  bool `json:"right"`
}

// HasAny reports whether any edge is banded.
func (e EdgeBanding) HasAny() bool {
	return e.Top || e.Bottom || e.Left || e.Right
}

// EdgeCount returns the number of banded edges.
func (e EdgeBanding) EdgeCount() int {
	n := 0
	for _, v := range []bool{e.Top, e.Bottom, e.Left, e.Right} {
		if v {
			n++
		}
	}
	return n
}

// LinearLength returns the banding length in mm for one piece of the
// given dimensions.
func (e EdgeBanding) LinearLength(length, width float64) float64 {
	var total float64
	if e.Top {
		total += length
	}
	if e.Bottom {
		total += length
	}
	if e.Left {
		total += width
	}
	if e.Right {
		total += width
	}
	return total
}

// EdgeBandingSummary holds the aggregated banding requirements for a part list.
type EdgeBandingSummary struct {
	TotalLinearMM    float64 `json:"total_linear_mm"`
	TotalLinearM     float64 `json:"total_linear_m"`
	WastePercent     float64 `json:"waste_percent"`
	TotalWithWasteMM float64 `json:"total_with_waste_mm"`
	TotalWithWasteM  float64 `json:"total_with_waste_m"`
	PartCount        int     `json:"part_count"`
	EdgeCount        int     `json:"edge_count"`
}

// CalculateEdgeBanding computes total banding tape for the given parts.
// wastePercent is the extra allowance in percent (10 for 10%).
func CalculateEdgeBanding(parts []Part, wastePercent float64) EdgeBandingSummary {
	var totalMM float64
	var partCount, edgeCount int

	for _, p := range parts {
		if !p.EdgeBanding.HasAny() {
			continue
		}
		totalMM += p.EdgeBanding.LinearLength(p.Length, p.Width) * float64(p.Quantity)
		partCount += p.Quantity
		edgeCount += p.EdgeBanding.EdgeCount() * p.Quantity
	}

	withWaste := math.Ceil(totalMM * (1 + wastePercent/100.0))

	return EdgeBandingSummary{
		TotalLinearMM:    totalMM,
		TotalLinearM:     totalMM / 1000.0,
		WastePercent:     wastePercent,
		TotalWithWasteMM: withWaste,
		TotalWithWasteM:  withWaste / 1000.0,
		PartCount:        partCount,
		EdgeCount:        edgeCount,
	}
}
