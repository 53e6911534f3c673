package engine

import (
	"sort"

	"github.com/cutlistpro/cutlist/internal/model"
)

// strategy is the common contract of the three packing algorithms: consume
// pending rectangles and a sheet template, produce fully packed sheets in
// order. Implementations never emit a sheet with zero pieces; a piece that
// fits no sheet orientation is an UnplaceableError.
type strategy interface {
	pack(pending []Rectangle, tpl SheetTemplate) ([]*Sheet, error)
}

// strategyFor maps the closed algorithm enum to its implementation.
func strategyFor(alg model.Algorithm) (strategy, bool) {
	switch alg {
	case model.AlgorithmBottomLeftFill:
		return bottomLeftFill{}, true
	case model.AlgorithmBestFitDecreasing:
		return bestFitDecreasing{}, true
	case model.AlgorithmGuillotineSplit:
		return guillotineSplit{}, true
	}
	return nil, false
}

// sortByAreaDesc orders pieces largest-first, breaking area ties by the
// priority hint. The sort is stable so full ties keep input order and
// results stay reproducible.
func sortByAreaDesc(rects []Rectangle) []Rectangle {
	sorted := make([]Rectangle, len(rects))
	copy(sorted, rects)
	sort.SliceStable(sorted, func(i, j int) bool {
		ai, aj := sorted[i].Area(), sorted[j].Area()
		if ai != aj {
			return ai > aj
		}
		return sorted[i].Priority > sorted[j].Priority
	})
	return sorted
}
