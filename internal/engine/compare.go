package engine

import "github.com/cutlistpro/cutlist/internal/model"

// AlgorithmResult holds one strategy's summary and its comparison score.
type AlgorithmResult struct {
	Algorithm model.Algorithm
	Summary   model.Summary
	Score     float64
}

// Comparison is the side-by-side outcome of running every strategy on the
// same input. Results are in canonical algorithm order.
type Comparison struct {
	Results []AlgorithmResult
	Best    model.Algorithm
}

// Score rates a report 0-100: the average per-sheet utilization minus a
// 5 point penalty for every sheet beyond the first. Penalizing sheet count
// rewards plans that use fewer sheets, not just plans with high average
// utilization per sheet.
func Score(report *model.Report) float64 {
	if report == nil || len(report.Sheets) == 0 {
		return 0
	}
	var total float64
	for _, s := range report.Sheets {
		total += s.UtilizationPercent
	}
	avg := total / float64(len(report.Sheets))

	penalty := float64(len(report.Sheets)-1) * 5.0
	score := avg - penalty
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// CompareAlgorithms runs all three strategies on the same input and
// identifies the highest-scoring one. All strategies see the same expanded
// pieces, so an unplaceable piece fails every variant; the first error is
// returned as-is.
func (o *Optimizer) CompareAlgorithms(parts []model.Part, sheetWidth, sheetHeight float64, materialRef string, thickness float64) (*Comparison, error) {
	cmp := &Comparison{}
	bestScore := -1.0

	for _, alg := range model.Algorithms() {
		report, err := o.Optimize(parts, sheetWidth, sheetHeight, materialRef, thickness, alg)
		if err != nil {
			return nil, err
		}
		score := Score(report)
		cmp.Results = append(cmp.Results, AlgorithmResult{
			Algorithm: alg,
			Summary:   report.Summary,
			Score:     score,
		})
		if score > bestScore {
			bestScore = score
			cmp.Best = alg
		}
	}
	return cmp, nil
}
