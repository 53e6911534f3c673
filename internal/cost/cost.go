// Package cost turns optimization reports and part lists into material
// cost figures. Money is computed with decimal arithmetic so per-m² prices
// never accumulate float drift across large cut lists.
package cost

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/cutlistpro/cutlist/internal/model"
)

// Breakdown is the material cost of one optimization report.
type Breakdown struct {
	MaterialRef      string          `json:"material_ref"`
	SheetsUsed       int             `json:"sheets_used"`
	TotalSheetAreaM2 float64         `json:"total_sheet_area_m2"`
	UsedAreaM2       float64         `json:"used_area_m2"`
	WasteAreaM2      float64         `json:"waste_area_m2"`
	PricePerM2       decimal.Decimal `json:"price_per_m2"`
	SheetCost        decimal.Decimal `json:"sheet_cost"`  // cost of all sheets consumed
	UsedCost         decimal.Decimal `json:"used_cost"`   // share covering actual pieces
	WasteCost        decimal.Decimal `json:"waste_cost"`  // share lost to offcuts and kerf
	WeightKg         float64         `json:"weight_kg"`   // weight of the pieces produced
}

// ForReport prices a finished report against the material it was cut from.
// The sheet cost is what the shop pays; the used/waste split shows how much
// of that buys pieces versus scrap.
func ForReport(report *model.Report, mat model.Material) Breakdown {
	price := decimal.NewFromFloat(mat.PricePerM2())

	sheetArea := report.Summary.TotalSheetAreaM2
	usedArea := report.Summary.TotalPieceAreaM2
	wasteArea := sheetArea - usedArea
	if wasteArea < 0 {
		wasteArea = 0
	}

	sheetCost := price.Mul(decimal.NewFromFloat(sheetArea)).Round(2)
	usedCost := price.Mul(decimal.NewFromFloat(usedArea)).Round(2)

	return Breakdown{
		MaterialRef:      mat.Name,
		SheetsUsed:       report.Summary.TotalSheets,
		TotalSheetAreaM2: sheetArea,
		UsedAreaM2:       usedArea,
		WasteAreaM2:      wasteArea,
		PricePerM2:       price,
		SheetCost:        sheetCost,
		UsedCost:         usedCost,
		WasteCost:        sheetCost.Sub(usedCost),
		WeightKg:         mat.WeightKg(usedArea),
	}
}

// PurchaseEstimate answers "how many sheets should I buy" before any
// packing has run, from raw part areas plus kerf and waste allowances.
type PurchaseEstimate struct {
	TotalPartAreaM2   float64         `json:"total_part_area_m2"` // kerf allowance included
	SheetAreaM2       float64         `json:"sheet_area_m2"`
	SheetsNeededExact float64         `json:"sheets_needed_exact"`
	SheetsNeededMin   int             `json:"sheets_needed_min"`
	SheetsWithWaste   int             `json:"sheets_with_waste"`
	WastePercent      float64         `json:"waste_percent"`
	PricePerSheet     decimal.Decimal `json:"price_per_sheet"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
}

// EstimatePurchase computes the sheet purchase for a part list. Each part
// is padded by the kerf on both dimensions, and wastePercent (15 for 15%)
// inflates the recommendation beyond the bare minimum.
func EstimatePurchase(parts []model.Part, mat model.Material, sheet model.SheetSize, kerfWidth, wastePercent float64) PurchaseEstimate {
	var partAreaMM2 float64
	for _, p := range parts {
		partAreaMM2 += (p.Length + kerfWidth) * (p.Width + kerfWidth) * float64(p.Quantity)
	}
	partArea := partAreaMM2 / 1e6

	sheetArea := sheet.AreaM2()
	pricePerSheet := decimal.NewFromFloat(mat.PricePerM2() * sheetArea).Round(2)

	est := PurchaseEstimate{
		TotalPartAreaM2: partArea,
		SheetAreaM2:     sheetArea,
		WastePercent:    wastePercent,
		PricePerSheet:   pricePerSheet,
		EstimatedCost:   decimal.Zero,
	}
	if sheetArea <= 0 {
		return est
	}

	exact := partArea / sheetArea
	minSheets := int(math.Ceil(exact))
	withWaste := int(math.Ceil(exact * (1 + wastePercent/100.0)))
	if withWaste < minSheets {
		withWaste = minSheets
	}

	est.SheetsNeededExact = exact
	est.SheetsNeededMin = minSheets
	est.SheetsWithWaste = withWaste
	est.EstimatedCost = pricePerSheet.Mul(decimal.NewFromInt(int64(withWaste)))
	return est
}

// EdgeBandingCost prices the banding tape for a part list at the given
// per-meter rate.
func EdgeBandingCost(parts []model.Part, wastePercent, pricePerMeter float64) decimal.Decimal {
	summary := model.CalculateEdgeBanding(parts, wastePercent)
	return decimal.NewFromFloat(summary.TotalWithWasteM).
		Mul(decimal.NewFromFloat(pricePerMeter)).
		Round(2)
}
