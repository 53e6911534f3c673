// Package model defines the domain types shared by the cutting engine,
// the importers/exporters, and the persistence layer.
package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Algorithm selects the packing strategy used by the cutting engine.
type Algorithm string

const (
	AlgorithmBottomLeftFill    Algorithm = "bottom_left_fill"    // Repeated bottom-left scans (default)
	AlgorithmBestFitDecreasing Algorithm = "best_fit_decreasing" // Single decreasing pass per sheet
	AlgorithmGuillotineSplit   Algorithm = "guillotine_split"    // Recursive guillotine subdivision
)

// Algorithms returns all supported algorithms in canonical order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmBottomLeftFill, AlgorithmBestFitDecreasing, AlgorithmGuillotineSplit}
}

// Valid reports whether a is one of the supported algorithms.
func (a Algorithm) Valid() bool {
	switch a {
	case AlgorithmBottomLeftFill, AlgorithmBestFitDecreasing, AlgorithmGuillotineSplit:
		return true
	}
	return false
}

// ParseAlgorithm converts a string into an Algorithm, rejecting unknown names.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(s)
	if !a.Valid() {
		return "", fmt.Errorf("unknown algorithm %q (supported: %v)", s, Algorithms())
	}
	return a, nil
}

// Part represents one required panel component. Length and Width are the
// cut dimensions in mm; Thickness must match the material it is cut from.
type Part struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Length      float64     `json:"length"`    // mm
	Width       float64     `json:"width"`     // mm
	Thickness   float64     `json:"thickness"` // mm
	Quantity    int         `json:"quantity"`
	MaterialRef string      `json:"material_ref,omitempty"`
	Rotatable   bool        `json:"rotatable"` // false fixes grain direction
	Priority    int         `json:"priority"`  // tie-break hint, higher first
	Description string      `json:"description,omitempty"`
	EdgeBanding EdgeBanding `json:"edge_banding"`
	Tags        []string    `json:"tags,omitempty"`
}

// NewPart creates a Part with a generated short ID and sensible defaults.
func NewPart(name string, length, width, thickness float64, qty int) Part {
	return Part{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Length:    length,
		Width:     width,
		Thickness: thickness,
		Quantity:  qty,
		Rotatable: true,
		Priority:  1,
	}
}

// Validate checks the part's dimensions and quantity, reporting the first
// offending field.
func (p Part) Validate() error {
	switch {
	case p.Length <= 0:
		return fmt.Errorf("part %q: length must be positive, got %g", p.Name, p.Length)
	case p.Width <= 0:
		return fmt.Errorf("part %q: width must be positive, got %g", p.Name, p.Width)
	case p.Thickness <= 0:
		return fmt.Errorf("part %q: thickness must be positive, got %g", p.Name, p.Thickness)
	case p.Quantity <= 0:
		return fmt.Errorf("part %q: quantity must be a positive integer, got %d", p.Name, p.Quantity)
	}
	return nil
}

// AreaM2 returns the face area of one piece in m².
func (p Part) AreaM2() float64 {
	return p.Length * p.Width / 1e6
}

// VolumeM3 returns the volume of one piece in m³.
func (p Part) VolumeM3() float64 {
	return p.Length * p.Width * p.Thickness / 1e9
}

// TotalAreaM2 returns the face area of all required pieces in m².
func (p Part) TotalAreaM2() float64 {
	return p.AreaM2() * float64(p.Quantity)
}

// TotalVolumeM3 returns the volume of all required pieces in m³.
func (p Part) TotalVolumeM3() float64 {
	return p.VolumeM3() * float64(p.Quantity)
}

// Perimeter returns the perimeter of one piece in mm.
func (p Part) Perimeter() float64 {
	return 2 * (p.Length + p.Width)
}

// FitsSheet reports whether the part fits a sheet in at least one orientation.
// Grain-locked parts only get the unrotated orientation.
func (p Part) FitsSheet(sheetWidth, sheetHeight float64) bool {
	if p.Length <= sheetWidth && p.Width <= sheetHeight {
		return true
	}
	return p.Rotatable && p.Width <= sheetWidth && p.Length <= sheetHeight
}

// SheetSize is one standard stock sheet dimension for a material.
type SheetSize struct {
	Width  float64 `json:"width"`  // mm
	Height float64 `json:"height"` // mm
}

// AreaM2 returns the sheet area in m².
func (s SheetSize) AreaM2() float64 {
	return s.Width * s.Height / 1e6
}

// Price units accepted by Material.PricePerUnit.
const (
	PriceUnitM2     = "m2"
	PriceUnitM3     = "m3"
	PriceUnitLinear = "m"
	PriceUnitPiece  = "piece"
)

// Material describes a sheet stock type: thickness, pricing, and the
// standard sizes it is sold in.
type Material struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Thickness     float64     `json:"thickness"` // mm
	PricePerUnit  float64     `json:"price_per_unit"`
	PriceUnit     string      `json:"price_unit"` // m2, m3, m, piece
	Density       float64     `json:"density"`    // kg/m³
	StandardSizes []SheetSize `json:"standard_sizes"`
	Category      string      `json:"category,omitempty"`
	Supplier      string      `json:"supplier,omitempty"`
	Color         string      `json:"color,omitempty"` // display hint
	IsActive      bool        `json:"is_active"`
}

// NewMaterial creates a Material priced per m², with the common 2750x1830
// and 2440x1220 panel sizes.
func NewMaterial(name string, thickness, pricePerM2 float64) Material {
	return Material{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Thickness:    thickness,
		PricePerUnit: pricePerM2,
		PriceUnit:    PriceUnitM2,
		Density:      750.0,
		StandardSizes: []SheetSize{
			{Width: 2750, Height: 1830},
			{Width: 2440, Height: 1220},
		},
		Category: "Wood",
		IsActive: true,
	}
}

// LargestSheetSize returns the biggest standard size, or the 2750x1830
// default when none is configured.
func (m Material) LargestSheetSize() SheetSize {
	if len(m.StandardSizes) == 0 {
		return SheetSize{Width: 2750, Height: 1830}
	}
	best := m.StandardSizes[0]
	for _, s := range m.StandardSizes[1:] {
		if s.Width*s.Height > best.Width*best.Height {
			best = s
		}
	}
	return best
}

// PricePerM2 normalizes the material price to a per-m² figure regardless of
// the configured price unit.
func (m Material) PricePerM2() float64 {
	switch m.PriceUnit {
	case PriceUnitM3:
		return m.PricePerUnit * (m.Thickness / 1000.0)
	case PriceUnitLinear:
		// Linear stock is assumed 100mm wide.
		return m.PricePerUnit / 0.1
	case PriceUnitPiece:
		area := m.LargestSheetSize().AreaM2()
		if area <= 0 {
			return 0
		}
		return m.PricePerUnit / area
	default:
		return m.PricePerUnit
	}
}

// WeightKg returns the weight of the given face area of this material.
func (m Material) WeightKg(areaM2 float64) float64 {
	return areaM2 * (m.Thickness / 1000.0) * m.Density
}

// SheetsNeeded estimates how many of the largest standard sheets cover
// totalAreaM2, inflated by the waste factor (0.15 = 15%).
func (m Material) SheetsNeeded(totalAreaM2, wasteFactor float64) int {
	sheetArea := m.LargestSheetSize().AreaM2()
	if sheetArea <= 0 || totalAreaM2 <= 0 {
		return 0
	}
	needed := totalAreaM2 * (1 + wasteFactor) / sheetArea
	n := int(needed)
	if needed > float64(n) {
		n++
	}
	return n
}

// CutSettings holds the optimizer configuration for a project.
type CutSettings struct {
	Algorithm   Algorithm `json:"algorithm"`
	KerfWidth   float64   `json:"kerf_width"`   // blade cut margin in mm
	SheetWidth  float64   `json:"sheet_width"`  // mm
	SheetHeight float64   `json:"sheet_height"` // mm
	Thickness   float64   `json:"thickness"`    // mm
	MaterialRef string    `json:"material_ref,omitempty"`
}

// DefaultSettings returns the stock defaults: bottom-left fill on a
// 2750x1830 sheet with a 3mm kerf.
func DefaultSettings() CutSettings {
	return CutSettings{
		Algorithm:   AlgorithmBottomLeftFill,
		KerfWidth:   3.0,
		SheetWidth:  2750,
		SheetHeight: 1830,
		Thickness:   15.0,
	}
}

// Project ties parts, materials, and settings together for save/load.
// Result holds the last optimization report, if any.
type Project struct {
	Name      string      `json:"name"`
	Parts     []Part      `json:"parts"`
	Materials []Material  `json:"materials"`
	Settings  CutSettings `json:"settings"`
	Result    *Report     `json:"result,omitempty"`
}

// NewProject creates an empty project with default settings.
func NewProject() Project {
	return Project{
		Name:      "Untitled",
		Parts:     []Part{},
		Materials: []Material{},
		Settings:  DefaultSettings(),
	}
}

// MaterialByRef finds a material by ID or name. Returns false when absent.
func (p Project) MaterialByRef(ref string) (Material, bool) {
	for _, m := range p.Materials {
		if m.ID == ref || m.Name == ref {
			return m, true
		}
	}
	return Material{}, false
}
