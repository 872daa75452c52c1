package domain

import (
	"math"
	"sort"
)

// DefaultBaseYear is the year normalized to 100 unless configured otherwise.
const DefaultBaseYear = 2024

// DefaultRegion is the CPI row used unless configured otherwise.
const DefaultRegion = "World"

// CpiSeries maps year to year-over-year CPI percentage change.
// A NaN value marks a year whose key is present but whose value is missing.
// The zero value is an empty series.
type CpiSeries struct {
	values map[int]float64
}

// NewCpiSeries copies values into an immutable series.
func NewCpiSeries(values map[int]float64) CpiSeries {
	cp := make(map[int]float64, len(values))
	for y, v := range values {
		cp[y] = v
	}
	return CpiSeries{values: cp}
}

// Len returns the number of years in the series.
func (s CpiSeries) Len() int {
	return len(s.values)
}

// Years returns the series years in ascending order.
func (s CpiSeries) Years() []int {
	years := make([]int, 0, len(s.values))
	for y := range s.values {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Value returns the percentage change for year.
// ok is false when the year is absent or its value is missing.
func (s CpiSeries) Value(year int) (pct float64, ok bool) {
	v, exists := s.values[year]
	if !exists || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Has reports whether year is a key of the series, regardless of its value.
func (s CpiSeries) Has(year int) bool {
	_, ok := s.values[year]
	return ok
}

// CpiIndex is a continuous price index re-based so BaseYear maps to 100.
type CpiIndex struct {
	values            map[int]float64
	years             []int // ascending
	baseYear          int   // anchor actually used for re-basing
	requestedBaseYear int   // anchor asked for by the caller
}

// NewCpiIndex builds an index from already re-based values.
func NewCpiIndex(values map[int]float64, baseYear, requestedBaseYear int) *CpiIndex {
	cp := make(map[int]float64, len(values))
	years := make([]int, 0, len(values))
	for y, v := range values {
		cp[y] = v
		years = append(years, y)
	}
	sort.Ints(years)
	return &CpiIndex{
		values:            cp,
		years:             years,
		baseYear:          baseYear,
		requestedBaseYear: requestedBaseYear,
	}
}

// Len returns the number of indexed years.
func (i *CpiIndex) Len() int {
	if i == nil {
		return 0
	}
	return len(i.years)
}

// Years returns indexed years in ascending order.
func (i *CpiIndex) Years() []int {
	if i == nil {
		return nil
	}
	out := make([]int, len(i.years))
	copy(out, i.years)
	return out
}

// Value returns the index value for year.
func (i *CpiIndex) Value(year int) (float64, bool) {
	if i == nil {
		return 0, false
	}
	v, ok := i.values[year]
	return v, ok
}

// MinYear returns the earliest indexed year. Callers must check Len first.
func (i *CpiIndex) MinYear() int {
	return i.years[0]
}

// MaxYear returns the latest indexed year. Callers must check Len first.
func (i *CpiIndex) MaxYear() int {
	return i.years[len(i.years)-1]
}

// BaseYear returns the year that maps to 100.
func (i *CpiIndex) BaseYear() int {
	return i.baseYear
}

// RequestedBaseYear returns the base year the index was asked to use.
func (i *CpiIndex) RequestedBaseYear() int {
	return i.requestedBaseYear
}

// BaseYearFallback reports whether the latest year replaced an absent base year.
func (i *CpiIndex) BaseYearFallback() bool {
	return i.Len() > 0 && i.baseYear != i.requestedBaseYear
}

// IndexPoint is one persisted year of a CPI index.
// Corresponds to cpi_index table in ClickHouse.
type IndexPoint struct {
	RunID     string   // pipeline run identifier
	Year      int      // calendar year
	PctChange *float64 // year-over-year change, nil when missing in the source
	Value     float64  // re-based index value
}

// Points flattens the index into persistable points ordered by year.
func (i *CpiIndex) Points(runID string, series CpiSeries) []*IndexPoint {
	points := make([]*IndexPoint, 0, i.Len())
	for _, y := range i.Years() {
		p := &IndexPoint{RunID: runID, Year: y, Value: i.values[y]}
		if pct, ok := series.Value(y); ok {
			p.PctChange = &pct
		}
		points = append(points, p)
	}
	return points
}
