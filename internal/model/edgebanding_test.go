package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeBanding_Basics(t *testing.T) {
	none := EdgeBanding{}
	assert.False(t, none.HasAny())
	assert.Equal(t, 0, none.EdgeCount())
	assert.Equal(t, 0.0, none.LinearLength(600, 300))

	all := EdgeBanding{Top: true, Bottom: true, Left: true, Right: true}
	assert.True(t, all.HasAny())
	assert.Equal(t, 4, all.EdgeCount())
	// Two lengths plus two widths: the full perimeter.
	assert.Equal(t, 1800.0, all.LinearLength(600, 300))

	front := EdgeBanding{Top: true}
	assert.Equal(t, 600.0, front.LinearLength(600, 300))

	sides := EdgeBanding{Left: true, Right: true}
	assert.Equal(t, 600.0, sides.LinearLength(600, 300))
}

func TestCalculateEdgeBanding(t *testing.T) {
	shelf := NewPart("Shelf", 600, 300, 18, 4)
	shelf.EdgeBanding = EdgeBanding{Top: true} // front edge only

	door := NewPart("Door", 700, 400, 18, 2)
	door.EdgeBanding = EdgeBanding{Top: true, Bottom: true, Left: true, Right: true}

	plain := NewPart("Back", 1000, 760, 3, 1)

	summary := CalculateEdgeBanding([]Part{shelf, door, plain}, 10)

	// 4x600 + 2x2200 = 6800mm before waste.
	assert.InDelta(t, 6800.0, summary.TotalLinearMM, 1e-9)
	assert.InDelta(t, 6.8, summary.TotalLinearM, 1e-9)
	assert.Equal(t, 7480.0, summary.TotalWithWasteMM, "10%% waste, rounded up")
	assert.Equal(t, 6, summary.PartCount, "unbanded parts are not counted")
	assert.Equal(t, 12, summary.EdgeCount)
}

func TestCalculateEdgeBanding_NoBandedParts(t *testing.T) {
	summary := CalculateEdgeBanding([]Part{NewPart("A", 100, 100, 18, 5)}, 10)
	assert.Zero(t, summary.TotalLinearMM)
	assert.Zero(t, summary.PartCount)
	assert.Zero(t, summary.TotalWithWasteMM)
}
