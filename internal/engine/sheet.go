package engine

// placeEpsilon absorbs float drift in bounds and overlap comparisons.
const placeEpsilon = 0.001

// SheetTemplate describes the stock sheets a strategy may open.
type SheetTemplate struct {
	Width       float64 // mm
	Height      float64 // mm
	MaterialRef string
	Thickness   float64 // mm
	KerfWidth   float64 // mm, clearance between adjacent pieces
}

// Sheet is one stock sheet instance being filled during a run. Placements
// are append-only; insertion order is placement order.
type Sheet struct {
	Width       float64
	Height      float64
	MaterialRef string
	Thickness   float64
	KerfWidth   float64
	Placed      []PlacedRectangle
}

// NewSheet opens an empty sheet from the template.
func NewSheet(tpl SheetTemplate) *Sheet {
	return &Sheet{
		Width:       tpl.Width,
		Height:      tpl.Height,
		MaterialRef: tpl.MaterialRef,
		Thickness:   tpl.Thickness,
		KerfWidth:   tpl.KerfWidth,
	}
}

// UsedArea returns the summed piece area in mm².
func (s *Sheet) UsedArea() float64 {
	var total float64
	for _, p := range s.Placed {
		total += p.Rect.Area()
	}
	return total
}

// TotalArea returns the sheet area in mm².
func (s *Sheet) TotalArea() float64 {
	return s.Width * s.Height
}

// Utilization returns the used fraction as a percentage. A zero-area
// sheet reports 0.
func (s *Sheet) Utilization() float64 {
	total := s.TotalArea()
	if total <= 0 {
		return 0
	}
	return s.UsedArea() / total * 100.0
}

// Waste returns 100 minus the utilization percentage.
func (s *Sheet) Waste() float64 {
	return 100.0 - s.Utilization()
}

// CanPlace reports whether rect can legally sit at (x, y) with the given
// rotation: inside the sheet bounds and not overlapping any placed piece.
// Kerf clearance is not checked here; the strategies bake it into the
// candidate coordinates, so callers supplying exact positions are not
// rejected by an invisible margin.
func (s *Sheet) CanPlace(rect Rectangle, x, y float64, rotated bool) bool {
	if x < 0 || y < 0 {
		return false
	}
	candidate := PlacedRectangle{Rect: rect, X: x, Y: y, Rotated: rotated}
	if candidate.Right() > s.Width+placeEpsilon || candidate.Top() > s.Height+placeEpsilon {
		return false
	}
	for _, p := range s.Placed {
		if candidate.Overlaps(p) {
			return false
		}
	}
	return true
}

// Place commits rect at (x, y) if legal. On failure the sheet is unchanged.
func (s *Sheet) Place(rect Rectangle, x, y float64, rotated bool) bool {
	if !s.CanPlace(rect, x, y, rotated) {
		return false
	}
	s.Placed = append(s.Placed, PlacedRectangle{Rect: rect, X: x, Y: y, Rotated: rotated})
	return true
}

// FindBestPosition searches the candidate positions for the legal
// placement with the lowest waste score, trying both orientations when
// the piece is rotatable. ok is false when nothing fits.
func (s *Sheet) FindBestPosition(rect Rectangle) (x, y float64, rotated, ok bool) {
	best := -1.0

	for _, pos := range s.candidatePositions() {
		if s.CanPlace(rect, pos.x, pos.y, false) {
			if w := s.positionWaste(rect, pos.x, pos.y, false); best < 0 || w < best {
				best = w
				x, y, rotated, ok = pos.x, pos.y, false, true
			}
		}
		if rect.Rotatable && s.CanPlace(rect, pos.x, pos.y, true) {
			if w := s.positionWaste(rect, pos.x, pos.y, true); best < 0 || w < best {
				best = w
				x, y, rotated, ok = pos.x, pos.y, true, true
			}
		}
	}
	return x, y, rotated, ok
}

type position struct {
	x, y float64
}

// candidatePositions generates the placement candidates: the origin, and
// for each placed piece the points immediately to its right, above it,
// and at its outer corner, all offset by the kerf clearance.
func (s *Sheet) candidatePositions() []position {
	positions := []position{{0, 0}}
	for _, p := range s.Placed {
		positions = append(positions,
			position{p.Right() + s.KerfWidth, p.Y},
			position{p.X, p.Top() + s.KerfWidth},
			position{p.Right() + s.KerfWidth, p.Top() + s.KerfWidth},
		)
	}

	valid := positions[:0]
	for _, pos := range positions {
		if pos.x >= 0 && pos.x < s.Width && pos.y >= 0 && pos.y < s.Height {
			valid = append(valid, pos)
		}
	}
	return valid
}

// positionWaste scores a placement by the leftover strips it creates:
// the strip to the right weighted by the piece height plus the strip
// above weighted by the piece width. Lower is better; the score favors
// regular, reusable leftover space over merely small leftover area.
func (s *Sheet) positionWaste(rect Rectangle, x, y float64, rotated bool) float64 {
	w, h := rect.Width, rect.Height
	if rotated {
		w, h = h, w
	}
	rightWaste := s.Width - (x + w)
	if rightWaste < 0 {
		rightWaste = 0
	}
	topWaste := s.Height - (y + h)
	if topWaste < 0 {
		topWaste = 0
	}
	return rightWaste*h + topWaste*w
}
