package engine

// guillotineSplit packs by recursive rectangular subdivision: place the
// largest pending piece at a free region's origin, then split the
// remainder with one straight cut into the strip to the right of the
// piece and the strip above it, each shrunk by the kerf. Only those two
// canonical regions are ever considered, so placement is much cheaper
// than the candidate-position search at the cost of more fragmentation.
//
// The recursion is run on an explicit work stack to bound stack depth on
// large piece counts; regions are pushed top-then-right so the right
// strip is processed first, keeping the traversal order deterministic.
type guillotineSplit struct{}

// region is a free rectangular area of the sheet still available to fill.
type region struct {
	x, y, w, h float64
}

func (g guillotineSplit) pack(pending []Rectangle, tpl SheetTemplate) ([]*Sheet, error) {
	remaining := sortByAreaDesc(pending)

	var sheets []*Sheet
	for len(remaining) > 0 {
		sheet := NewSheet(tpl)

		stack := []region{{0, 0, tpl.Width, tpl.Height}}
		for len(stack) > 0 && len(remaining) > 0 {
			reg := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if reg.w <= 0 || reg.h <= 0 {
				continue
			}

			idx, rotated := g.bestPiece(remaining, reg)
			if idx < 0 {
				continue
			}
			rect := remaining[idx]
			if !sheet.Place(rect, reg.x, reg.y, rotated) {
				continue
			}
			remaining = append(remaining[:idx], remaining[idx+1:]...)

			pw, ph := rect.Width, rect.Height
			if rotated {
				pw, ph = ph, pw
			}

			kerf := tpl.KerfWidth
			top := region{reg.x, reg.y + ph + kerf, reg.w, reg.h - ph - kerf}
			right := region{reg.x + pw + kerf, reg.y, reg.w - pw - kerf, ph}
			if top.h > 0 {
				stack = append(stack, top)
			}
			if right.w > 0 {
				stack = append(stack, right)
			}
		}

		if len(sheet.Placed) == 0 {
			return nil, unplaceable(remaining, tpl)
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

// bestPiece returns the index of the largest-area pending piece that fits
// the region, preferring the unrotated orientation when both fit.
// Returns -1 when nothing fits.
func (guillotineSplit) bestPiece(pending []Rectangle, reg region) (int, bool) {
	bestIdx := -1
	bestArea := -1.0
	bestRotated := false

	for i, r := range pending {
		fitsNormal := r.Width <= reg.w && r.Height <= reg.h
		fitsRotated := r.Rotatable && r.Height <= reg.w && r.Width <= reg.h
		if !fitsNormal && !fitsRotated {
			continue
		}
		if area := r.Area(); area > bestArea {
			bestArea = area
			bestIdx = i
			bestRotated = !fitsNormal
		}
	}
	return bestIdx, bestRotated
}
