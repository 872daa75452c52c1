package cpi

import (
	"math"

	"box-office-lab/internal/domain"
)

// seedValue anchors the earliest year before re-basing. Any positive constant
// gives the same final index: re-basing divides it out.
const seedValue = 100.0

// BuildIndex compounds series into a price index where baseYear = 100.
//
// A year whose percentage change is missing holds the previous year's value.
// When baseYear is not in the series the latest year becomes the anchor and
// the returned index reports BaseYearFallback.
//
// An empty series yields an empty index together with ErrEmptySeries.
func BuildIndex(series domain.CpiSeries, baseYear int) (*domain.CpiIndex, error) {
	return buildIndex(series, baseYear, seedValue)
}

func buildIndex(series domain.CpiSeries, baseYear int, seed float64) (*domain.CpiIndex, error) {
	years := series.Years()
	if len(years) == 0 {
		return domain.NewCpiIndex(nil, baseYear, baseYear), domain.ErrEmptySeries
	}

	raw := make(map[int]float64, len(years))
	raw[years[0]] = seed
	for i := 1; i < len(years); i++ {
		prev, curr := years[i-1], years[i]
		if pct, ok := series.Value(curr); ok {
			raw[curr] = raw[prev] * (1 + pct/100)
		} else {
			raw[curr] = raw[prev]
		}
	}

	anchor := baseYear
	if _, ok := raw[anchor]; !ok {
		anchor = years[len(years)-1]
	}

	anchorValue := raw[anchor]
	if anchorValue == 0 || !isFinite(anchorValue) {
		return nil, domain.ErrDegenerateBase
	}

	rebased := make(map[int]float64, len(raw))
	for y, v := range raw {
		r := v / anchorValue * 100
		if !isFinite(r) {
			return nil, domain.ErrDegenerateBase
		}
		rebased[y] = r
	}
	rebased[anchor] = 100

	return domain.NewCpiIndex(rebased, anchor, baseYear), nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
