package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutlistpro/cutlist/internal/model"
)

func checkNoOverlap(t *testing.T, report *model.Report) {
	t.Helper()
	for _, sheet := range report.Sheets {
		for i := 0; i < len(sheet.Pieces); i++ {
			for j := i + 1; j < len(sheet.Pieces); j++ {
				a, b := sheet.Pieces[i], sheet.Pieces[j]
				overlaps := a.X+a.Width > b.X+placeEpsilon &&
					b.X+b.Width > a.X+placeEpsilon &&
					a.Y+a.Height > b.Y+placeEpsilon &&
					b.Y+b.Height > a.Y+placeEpsilon
				assert.False(t, overlaps, "pieces %s and %s overlap on sheet %d", a.ID, b.ID, sheet.ID)
			}
		}
	}
}

func checkContainment(t *testing.T, report *model.Report) {
	t.Helper()
	for _, sheet := range report.Sheets {
		for _, p := range sheet.Pieces {
			assert.GreaterOrEqual(t, p.X, 0.0, "piece %s x", p.ID)
			assert.GreaterOrEqual(t, p.Y, 0.0, "piece %s y", p.ID)
			assert.LessOrEqual(t, p.X+p.Width, sheet.SheetWidth+placeEpsilon, "piece %s right edge", p.ID)
			assert.LessOrEqual(t, p.Y+p.Height, sheet.SheetHeight+placeEpsilon, "piece %s top edge", p.ID)
		}
	}
}

func checkConservation(t *testing.T, report *model.Report, parts []model.Part) {
	t.Helper()
	want := map[string]int{}
	for _, r := range ExpandParts(parts) {
		want[r.ID]++
	}
	got := map[string]int{}
	for _, sheet := range report.Sheets {
		for _, p := range sheet.Pieces {
			got[p.ID]++
		}
	}
	assert.Equal(t, want, got, "placed piece ids must match the expanded input exactly")
}

func checkUtilizationBounds(t *testing.T, report *model.Report) {
	t.Helper()
	for _, sheet := range report.Sheets {
		assert.GreaterOrEqual(t, sheet.UtilizationPercent, 0.0)
		assert.LessOrEqual(t, sheet.UtilizationPercent, 100.0+placeEpsilon)
		assert.InDelta(t, 100.0-sheet.UtilizationPercent, sheet.WastePercent, 1e-9)
	}
	assert.GreaterOrEqual(t, report.Summary.OverallUtilizationPercent, 0.0)
	assert.LessOrEqual(t, report.Summary.OverallUtilizationPercent, 100.0+placeEpsilon)
	assert.InDelta(t, 100.0-report.Summary.OverallUtilizationPercent, report.Summary.OverallWastePercent, 1e-9)
}

func TestOptimize_SinglePartSingleSheet(t *testing.T) {
	// 600x300 on a 2750x1830 sheet: one sheet, one piece, ~3.58% used.
	for _, alg := range model.Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			opt := New(3.0)
			parts := []model.Part{model.NewPart("Shelf", 600, 300, 18, 1)}

			report, err := opt.Optimize(parts, 2750, 1830, "", 18, alg)
			require.NoError(t, err)

			require.Len(t, report.Sheets, 1)
			require.Len(t, report.Sheets[0].Pieces, 1)
			assert.Equal(t, 1, report.Sheets[0].ID)
			assert.Equal(t, "Shelf", report.Sheets[0].Pieces[0].Name)
			assert.Equal(t, "Shelf_1", report.Sheets[0].Pieces[0].ID)
			assert.InDelta(t, 3.58, report.Sheets[0].UtilizationPercent, 0.01)
			assert.InDelta(t, 3.58, report.Summary.OverallUtilizationPercent, 0.01)
			assert.Equal(t, alg, report.Summary.AlgorithmUsed)
		})
	}
}

func TestOptimize_ExactTiling(t *testing.T) {
	// Four 900x900 pieces tile a 1800x1800 sheet exactly with zero kerf.
	for _, alg := range model.Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			opt := New(0)
			parts := []model.Part{model.NewPart("Panel", 900, 900, 18, 4)}

			report, err := opt.Optimize(parts, 1800, 1800, "", 18, alg)
			require.NoError(t, err)

			require.Len(t, report.Sheets, 1)
			assert.Len(t, report.Sheets[0].Pieces, 4)
			assert.InDelta(t, 100.0, report.Sheets[0].UtilizationPercent, 1e-9)
			assert.InDelta(t, 0.0, report.Sheets[0].WastePercent, 1e-9)
			checkNoOverlap(t, report)
			checkContainment(t, report)
		})
	}
}

func TestOptimize_GrainLockedOversizedPart(t *testing.T) {
	// A 3000x100 part with the grain locked cannot rotate onto a 2750-wide
	// sheet, so the whole run fails.
	for _, alg := range model.Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			opt := New(3.0)
			part := model.NewPart("Rail", 3000, 100, 18, 1)
			part.Rotatable = false

			report, err := opt.Optimize([]model.Part{part}, 2750, 1830, "", 18, alg)
			require.Error(t, err)
			assert.Nil(t, report)

			var unplaceable *UnplaceableError
			require.ErrorAs(t, err, &unplaceable)
			assert.Equal(t, "Rail_1", unplaceable.PieceID)
			assert.Equal(t, 3000.0, unplaceable.PieceWidth)
			assert.Equal(t, 2750.0, unplaceable.SheetWidth)
		})
	}
}

func TestOptimize_RotationRescuesOversizedPart(t *testing.T) {
	// The same part fits once rotation is allowed.
	opt := New(0)
	parts := []model.Part{model.NewPart("Rail", 3000, 100, 18, 1)}

	report, err := opt.Optimize(parts, 1830, 3050, "", 18, model.AlgorithmBottomLeftFill)
	require.NoError(t, err)
	require.Len(t, report.Sheets, 1)
	assert.True(t, report.Sheets[0].Pieces[0].Rotated)
	assert.Equal(t, 100.0, report.Sheets[0].Pieces[0].Width)
	assert.Equal(t, 3000.0, report.Sheets[0].Pieces[0].Height)
}

func TestOptimize_OverflowOpensSecondSheet(t *testing.T) {
	// Ten full-width strips of 1000x150 on a 1000x1000 sheet: six fit per
	// sheet, so every algorithm needs exactly two sheets.
	for _, alg := range model.Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			opt := New(0)
			parts := []model.Part{model.NewPart("Strip", 1000, 150, 18, 10)}

			report, err := opt.Optimize(parts, 1000, 1000, "", 18, alg)
			require.NoError(t, err)

			require.Len(t, report.Sheets, 2)
			assert.Equal(t, 10, report.PieceCount())
			assert.Equal(t, 1, report.Sheets[0].ID)
			assert.Equal(t, 2, report.Sheets[1].ID)
			checkNoOverlap(t, report)
			checkContainment(t, report)
			checkConservation(t, report, parts)
			checkUtilizationBounds(t, report)
		})
	}
}

func TestOptimize_EmptyPartList(t *testing.T) {
	opt := New(3.0)

	report, err := opt.Optimize(nil, 2750, 1830, "", 18, model.AlgorithmBottomLeftFill)
	require.Error(t, err)
	assert.Nil(t, report)

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "parts", validation.Field)
}

func TestOptimize_InputValidation(t *testing.T) {
	opt := New(3.0)
	parts := []model.Part{model.NewPart("A", 100, 100, 18, 1)}

	cases := []struct {
		name string
		run  func() (*model.Report, error)
	}{
		{"zero sheet width", func() (*model.Report, error) {
			return opt.Optimize(parts, 0, 1830, "", 18, model.AlgorithmBottomLeftFill)
		}},
		{"negative sheet height", func() (*model.Report, error) {
			return opt.Optimize(parts, 2750, -1, "", 18, model.AlgorithmBottomLeftFill)
		}},
		{"zero thickness", func() (*model.Report, error) {
			return opt.Optimize(parts, 2750, 1830, "", 0, model.AlgorithmBottomLeftFill)
		}},
		{"negative kerf", func() (*model.Report, error) {
			return New(-1).Optimize(parts, 2750, 1830, "", 18, model.AlgorithmBottomLeftFill)
		}},
		{"unknown algorithm", func() (*model.Report, error) {
			return opt.Optimize(parts, 2750, 1830, "", 18, model.Algorithm("simulated_annealing"))
		}},
		{"bad part quantity", func() (*model.Report, error) {
			bad := model.NewPart("B", 100, 100, 18, 0)
			return opt.Optimize([]model.Part{bad}, 2750, 1830, "", 18, model.AlgorithmBottomLeftFill)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report, err := tc.run()
			assert.Nil(t, report)
			var validation *ValidationError
			assert.True(t, errors.As(err, &validation), "expected a ValidationError, got %v", err)
		})
	}
}

func TestOptimize_KerfSeparatesPieces(t *testing.T) {
	// Two 500x500 pieces need 1003mm of width with a 3mm kerf. They share
	// a sheet at 1003mm and split across two sheets at 1000mm.
	opt := New(3.0)
	parts := []model.Part{model.NewPart("Square", 500, 500, 18, 2)}

	report, err := opt.Optimize(parts, 1003, 500, "", 18, model.AlgorithmBottomLeftFill)
	require.NoError(t, err)
	require.Len(t, report.Sheets, 1)
	require.Len(t, report.Sheets[0].Pieces, 2)

	a, b := report.Sheets[0].Pieces[0], report.Sheets[0].Pieces[1]
	gap := b.X - (a.X + a.Width)
	if b.X < a.X {
		gap = a.X - (b.X + b.Width)
	}
	assert.GreaterOrEqual(t, gap, 3.0-placeEpsilon, "kerf clearance between adjacent pieces")

	report, err = opt.Optimize(parts, 1000, 500, "", 18, model.AlgorithmBottomLeftFill)
	require.NoError(t, err)
	assert.Len(t, report.Sheets, 2)
}

func TestOptimize_MonotonicSheetCount(t *testing.T) {
	// A larger sheet never needs more sheets for the same piece set.
	for _, alg := range model.Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			opt := New(3.0)
			parts := []model.Part{
				model.NewPart("A", 600, 400, 18, 5),
				model.NewPart("B", 350, 350, 18, 7),
				model.NewPart("C", 800, 200, 18, 3),
			}

			small, err := opt.Optimize(parts, 1200, 800, "", 18, alg)
			require.NoError(t, err)
			large, err := opt.Optimize(parts, 2400, 1600, "", 18, alg)
			require.NoError(t, err)

			assert.LessOrEqual(t, large.Summary.TotalSheets, small.Summary.TotalSheets)
		})
	}
}

func TestOptimize_Deterministic(t *testing.T) {
	// Identical input gives identical output, color tags included.
	for _, alg := range model.Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			parts := []model.Part{
				model.NewPart("Side", 720, 400, 18, 2),
				model.NewPart("Top", 964, 400, 18, 2),
				model.NewPart("Back", 1000, 760, 3, 1),
			}

			first, err := New(3.0).Optimize(parts, 2750, 1830, "MDF", 18, alg)
			require.NoError(t, err)
			second, err := New(3.0).Optimize(parts, 2750, 1830, "MDF", 18, alg)
			require.NoError(t, err)

			assert.Equal(t, first, second)
		})
	}
}

func TestOptimize_InvariantsOnMixedLoad(t *testing.T) {
	parts := []model.Part{
		model.NewPart("Side", 720, 400, 18, 4),
		model.NewPart("Shelf", 764, 380, 18, 6),
		model.NewPart("Divider", 380, 350, 18, 3),
		model.NewPart("Plinth", 964, 100, 18, 2),
	}
	parts[2].Rotatable = false

	for _, alg := range model.Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			report, err := New(3.0).Optimize(parts, 2750, 1830, "", 18, alg)
			require.NoError(t, err)

			checkNoOverlap(t, report)
			checkContainment(t, report)
			checkConservation(t, report, parts)
			checkUtilizationBounds(t, report)

			// Grain-locked pieces must never come back rotated.
			for _, sheet := range report.Sheets {
				for _, p := range sheet.Pieces {
					if p.Name == "Divider 1" || p.Name == "Divider 2" || p.Name == "Divider 3" {
						assert.False(t, p.Rotated, "grain-locked piece %s was rotated", p.ID)
					}
				}
			}
		})
	}
}

func TestOptimize_AreaConversionBoundary(t *testing.T) {
	// Linear dimensions stay in mm, areas come back in m².
	opt := New(0)
	parts := []model.Part{model.NewPart("Panel", 1000, 500, 18, 1)}

	report, err := opt.Optimize(parts, 2000, 1000, "", 18, model.AlgorithmBottomLeftFill)
	require.NoError(t, err)

	sheet := report.Sheets[0]
	assert.Equal(t, 2000.0, sheet.SheetWidth)
	assert.InDelta(t, 0.5, sheet.UsedAreaM2, 1e-9)
	assert.InDelta(t, 2.0, sheet.TotalAreaM2, 1e-9)
	assert.InDelta(t, 0.5, report.Summary.TotalPieceAreaM2, 1e-9)
	assert.InDelta(t, 2.0, report.Summary.TotalSheetAreaM2, 1e-9)
	assert.InDelta(t, 25.0, report.Summary.OverallUtilizationPercent, 1e-9)
}

func TestExpandParts_NamingAndOrder(t *testing.T) {
	parts := []model.Part{
		model.NewPart("Door", 700, 400, 18, 2),
		model.NewPart("Back", 1000, 760, 3, 1),
	}
	parts[0].Priority = 5

	rects := ExpandParts(parts)
	require.Len(t, rects, 3)

	// Multi-quantity parts get indexed display names; singles keep the
	// bare part name. IDs are always indexed.
	assert.Equal(t, "Door_1", rects[0].ID)
	assert.Equal(t, "Door 1", rects[0].Name)
	assert.Equal(t, "Door_2", rects[1].ID)
	assert.Equal(t, "Door 2", rects[1].Name)
	assert.Equal(t, "Back_1", rects[2].ID)
	assert.Equal(t, "Back", rects[2].Name)

	// Length maps to rectangle width, width to height.
	assert.Equal(t, 700.0, rects[0].Width)
	assert.Equal(t, 400.0, rects[0].Height)
	assert.Equal(t, 5, rects[0].Priority)
}
