package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutlistpro/cutlist/internal/model"
)

func reportWithUtilizations(utils ...float64) *model.Report {
	report := &model.Report{}
	for i, u := range utils {
		report.Sheets = append(report.Sheets, model.SheetLayout{
			ID:                 i + 1,
			UtilizationPercent: u,
			WastePercent:       100 - u,
		})
	}
	return report
}

func TestScore(t *testing.T) {
	assert.Equal(t, 0.0, Score(nil))
	assert.Equal(t, 0.0, Score(&model.Report{}))

	// Single sheet: score is the sheet utilization.
	assert.InDelta(t, 80.0, Score(reportWithUtilizations(80)), 1e-9)

	// Each extra sheet costs 5 points off the average.
	assert.InDelta(t, 75.0, Score(reportWithUtilizations(90, 70)), 1e-9)
	assert.InDelta(t, 50.0, Score(reportWithUtilizations(60, 60, 60)), 1e-9)

	// Clamped to the 0-100 range.
	assert.Equal(t, 0.0, Score(reportWithUtilizations(1, 1, 1, 1, 1, 1)))
}

func TestCompareAlgorithms_RunsAllStrategies(t *testing.T) {
	opt := New(3.0)
	parts := []model.Part{
		model.NewPart("Side", 720, 400, 18, 2),
		model.NewPart("Shelf", 764, 380, 18, 4),
	}

	cmp, err := opt.CompareAlgorithms(parts, 2750, 1830, "", 18)
	require.NoError(t, err)

	require.Len(t, cmp.Results, 3)
	assert.Equal(t, model.Algorithms(), []model.Algorithm{
		cmp.Results[0].Algorithm, cmp.Results[1].Algorithm, cmp.Results[2].Algorithm,
	}, "results stay in canonical order")
	assert.True(t, cmp.Best.Valid())

	// The winner has the minimal sheet count among all strategies.
	minSheets := cmp.Results[0].Summary.TotalSheets
	var bestSheets int
	for _, r := range cmp.Results {
		if r.Summary.TotalSheets < minSheets {
			minSheets = r.Summary.TotalSheets
		}
		if r.Algorithm == cmp.Best {
			bestSheets = r.Summary.TotalSheets
		}
	}
	assert.Equal(t, minSheets, bestSheets)

	// The winner's score is the maximum.
	var bestScore float64
	for _, r := range cmp.Results {
		if r.Algorithm == cmp.Best {
			bestScore = r.Score
		}
	}
	for _, r := range cmp.Results {
		assert.LessOrEqual(t, r.Score, bestScore)
	}
}

func TestCompareAlgorithms_TiePrefersCanonicalOrder(t *testing.T) {
	// Full-width strips pack identically under every strategy, so the
	// first algorithm in canonical order wins the tie.
	opt := New(0)
	parts := []model.Part{model.NewPart("Strip", 1000, 150, 18, 10)}

	cmp, err := opt.CompareAlgorithms(parts, 1000, 1000, "", 18)
	require.NoError(t, err)

	for _, r := range cmp.Results {
		assert.Equal(t, 2, r.Summary.TotalSheets)
	}
	assert.Equal(t, model.AlgorithmBottomLeftFill, cmp.Best)
}

func TestCompareAlgorithms_PropagatesErrors(t *testing.T) {
	opt := New(3.0)
	part := model.NewPart("Oversized", 5000, 100, 18, 1)
	part.Rotatable = false

	cmp, err := opt.CompareAlgorithms([]model.Part{part}, 2750, 1830, "", 18)
	require.Error(t, err)
	assert.Nil(t, cmp)

	var unplaceable *UnplaceableError
	require.ErrorAs(t, err, &unplaceable)
}
