package engine

// bestFitDecreasing makes a single left-to-right pass over the area-sorted
// pieces per sheet: each piece is placed at its lowest-waste position on
// the current sheet or deferred to the next one. Unlike bottomLeftFill it
// never retries a skipped piece against the same sheet, trading some
// packing quality for a predictable single-pass cost.
type bestFitDecreasing struct{}

func (bestFitDecreasing) pack(pending []Rectangle, tpl SheetTemplate) ([]*Sheet, error) {
	remaining := sortByAreaDesc(pending)

	var sheets []*Sheet
	for len(remaining) > 0 {
		sheet := NewSheet(tpl)

		var deferred []Rectangle
		for _, rect := range remaining {
			x, y, rotated, ok := sheet.FindBestPosition(rect)
			if ok && sheet.Place(rect, x, y, rotated) {
				continue
			}
			deferred = append(deferred, rect)
		}

		if len(sheet.Placed) == 0 {
			return nil, unplaceable(remaining, tpl)
		}
		sheets = append(sheets, sheet)
		remaining = deferred
	}
	return sheets, nil
}
