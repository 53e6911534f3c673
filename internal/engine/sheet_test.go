package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSheet(width, height, kerf float64) *Sheet {
	return NewSheet(SheetTemplate{Width: width, Height: height, KerfWidth: kerf, Thickness: 18})
}

func TestSheet_CanPlaceBounds(t *testing.T) {
	sheet := testSheet(1000, 600, 0)
	rect := Rectangle{ID: "a", Width: 400, Height: 300, Rotatable: true}

	assert.True(t, sheet.CanPlace(rect, 0, 0, false))
	assert.True(t, sheet.CanPlace(rect, 600, 300, false), "flush against the far corner")
	assert.False(t, sheet.CanPlace(rect, -1, 0, false))
	assert.False(t, sheet.CanPlace(rect, 0, -1, false))
	assert.False(t, sheet.CanPlace(rect, 601, 0, false), "right edge past the sheet")
	assert.False(t, sheet.CanPlace(rect, 0, 301, false), "top edge past the sheet")

	// Rotation swaps the footprint: 300 wide fits where 400 does not.
	assert.False(t, sheet.CanPlace(rect, 700, 0, false))
	assert.True(t, sheet.CanPlace(rect, 700, 0, true))
}

func TestSheet_CanPlaceOverlap(t *testing.T) {
	sheet := testSheet(1000, 600, 0)
	base := Rectangle{ID: "base", Width: 400, Height: 300}
	require.True(t, sheet.Place(base, 0, 0, false))

	other := Rectangle{ID: "other", Width: 200, Height: 200}
	assert.False(t, sheet.CanPlace(other, 100, 100, false), "strictly inside the placed piece")
	assert.False(t, sheet.CanPlace(other, 399, 299, false), "1mm of interior overlap")
	assert.True(t, sheet.CanPlace(other, 400, 0, false), "touching edges are legal")
	assert.True(t, sheet.CanPlace(other, 0, 300, false), "touching the top edge is legal")
}

func TestSheet_PlaceIsAllOrNothing(t *testing.T) {
	sheet := testSheet(500, 500, 0)
	rect := Rectangle{ID: "a", Width: 400, Height: 400}

	require.True(t, sheet.Place(rect, 0, 0, false))
	assert.Len(t, sheet.Placed, 1)

	// An illegal placement leaves the sheet untouched.
	assert.False(t, sheet.Place(Rectangle{ID: "b", Width: 400, Height: 400}, 200, 200, false))
	assert.Len(t, sheet.Placed, 1)
}

func TestSheet_UtilizationAndWaste(t *testing.T) {
	sheet := testSheet(1000, 1000, 0)
	assert.Equal(t, 0.0, sheet.Utilization())
	assert.Equal(t, 100.0, sheet.Waste())

	require.True(t, sheet.Place(Rectangle{ID: "a", Width: 500, Height: 500}, 0, 0, false))
	assert.InDelta(t, 25.0, sheet.Utilization(), 1e-9)
	assert.InDelta(t, 75.0, sheet.Waste(), 1e-9)

	// Degenerate sheet reports zero rather than dividing by zero.
	empty := testSheet(0, 0, 0)
	assert.Equal(t, 0.0, empty.Utilization())
}

func TestSheet_FindBestPositionPrefersOrigin(t *testing.T) {
	sheet := testSheet(1000, 600, 0)
	rect := Rectangle{ID: "a", Width: 400, Height: 300}

	x, y, rotated, ok := sheet.FindBestPosition(rect)
	require.True(t, ok)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
	assert.False(t, rotated)
}

func TestSheet_FindBestPositionUsesKerfOffsets(t *testing.T) {
	sheet := testSheet(1000, 300, 3)
	first := Rectangle{ID: "a", Width: 400, Height: 300}
	require.True(t, sheet.Place(first, 0, 0, false))

	// The only remaining candidate is right of the first piece, offset by
	// the kerf.
	x, y, _, ok := sheet.FindBestPosition(Rectangle{ID: "b", Width: 400, Height: 300})
	require.True(t, ok)
	assert.Equal(t, 403.0, x)
	assert.Equal(t, 0.0, y)
}

func TestSheet_FindBestPositionRotatesWhenNeeded(t *testing.T) {
	// A 500x200 slot only accepts the 200x500 piece rotated.
	sheet := testSheet(500, 200, 0)

	x, y, rotated, ok := sheet.FindBestPosition(Rectangle{ID: "a", Width: 200, Height: 500, Rotatable: true})
	require.True(t, ok)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
	assert.True(t, rotated)

	// Grain-locked, the same piece fits nowhere.
	_, _, _, ok = sheet.FindBestPosition(Rectangle{ID: "b", Width: 200, Height: 500})
	assert.False(t, ok)
}

func TestSheet_FindBestPositionFullSheet(t *testing.T) {
	sheet := testSheet(400, 300, 0)
	require.True(t, sheet.Place(Rectangle{ID: "a", Width: 400, Height: 300}, 0, 0, false))

	_, _, _, ok := sheet.FindBestPosition(Rectangle{ID: "b", Width: 100, Height: 100, Rotatable: true})
	assert.False(t, ok)
}

func TestPlacedRectangle_EffectiveDimensions(t *testing.T) {
	rect := Rectangle{ID: "a", Width: 400, Height: 100}

	normal := PlacedRectangle{Rect: rect, X: 10, Y: 20}
	assert.Equal(t, 400.0, normal.Width())
	assert.Equal(t, 100.0, normal.Height())
	assert.Equal(t, 410.0, normal.Right())
	assert.Equal(t, 120.0, normal.Top())

	rotated := PlacedRectangle{Rect: rect, X: 10, Y: 20, Rotated: true}
	assert.Equal(t, 100.0, rotated.Width())
	assert.Equal(t, 400.0, rotated.Height())
}

func TestRectangle_FitsIn(t *testing.T) {
	free := Rectangle{Width: 300, Height: 600, Rotatable: true}
	locked := Rectangle{Width: 300, Height: 600}

	assert.True(t, free.FitsIn(600, 300), "rotation allowed")
	assert.False(t, locked.FitsIn(600, 300), "grain locked")
	assert.True(t, locked.FitsIn(300, 600))
	assert.False(t, free.FitsIn(200, 200))
}

func TestSortByAreaDesc_StableWithPriority(t *testing.T) {
	rects := []Rectangle{
		{ID: "small", Width: 100, Height: 100},
		{ID: "big", Width: 500, Height: 500},
		{ID: "tie-low", Width: 200, Height: 200, Priority: 1},
		{ID: "tie-high", Width: 200, Height: 200, Priority: 9},
	}

	sorted := sortByAreaDesc(rects)

	assert.Equal(t, "big", sorted[0].ID)
	assert.Equal(t, "tie-high", sorted[1].ID, "priority breaks equal-area ties")
	assert.Equal(t, "tie-low", sorted[2].ID)
	assert.Equal(t, "small", sorted[3].ID)

	// The input slice is untouched.
	assert.Equal(t, "small", rects[0].ID)
}
