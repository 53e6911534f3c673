package engine

// bottomLeftFill repeatedly scans the pending pieces against the current
// sheet, committing the best position found and restarting the scan after
// every success. A pass that places nothing closes the sheet; skipped
// pieces therefore get retried on the same sheet as long as anything else
// lands, which distinguishes this strategy from bestFitDecreasing.
type bottomLeftFill struct{}

func (bottomLeftFill) pack(pending []Rectangle, tpl SheetTemplate) ([]*Sheet, error) {
	remaining := sortByAreaDesc(pending)

	var sheets []*Sheet
	for len(remaining) > 0 {
		sheet := NewSheet(tpl)

		placedAny := true
		for placedAny && len(remaining) > 0 {
			placedAny = false
			for i, rect := range remaining {
				x, y, rotated, ok := sheet.FindBestPosition(rect)
				if !ok {
					continue
				}
				if sheet.Place(rect, x, y, rotated) {
					remaining = append(remaining[:i], remaining[i+1:]...)
					placedAny = true
					break
				}
			}
		}

		if len(sheet.Placed) == 0 {
			// A fresh empty sheet accepted nothing: some piece exceeds
			// the sheet in both orientations.
			return nil, unplaceable(remaining, tpl)
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}
