// Package cpi turns a World Bank style CPI table into a price index.
package cpi

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"box-office-lab/internal/domain"
	"box-office-lab/internal/table"
)

// DefaultRegionColumn is the World Bank column holding region names.
const DefaultRegionColumn = "Country Name"

// missingTokens are cell values treated as absent data.
var missingTokens = map[string]struct{}{
	"":    {},
	"..":  {},
	"na":  {},
	"n/a": {},
	"nan": {},
}

// LoaderConfig selects the CPI row.
type LoaderConfig struct {
	Region       string // region name, default "World"
	RegionColumn string // column holding region names, default "Country Name"
}

// LoadSeries extracts the year-over-year CPI series for cfg.Region.
// The row is matched exactly first, then by case-insensitive substring.
// Years with missing values are left out of the series.
func LoadSeries(t *table.Table, cfg LoaderConfig) (domain.CpiSeries, error) {
	region := cfg.Region
	if region == "" {
		region = domain.DefaultRegion
	}
	regionCol := cfg.RegionColumn
	if regionCol == "" {
		regionCol = DefaultRegionColumn
	}

	col := t.Column(regionCol)
	if col < 0 {
		return domain.CpiSeries{}, fmt.Errorf("cpi table has no %q column", regionCol)
	}

	row := findRegionRow(t, col, region)
	if row == nil {
		return domain.CpiSeries{}, &domain.RegionNotFoundError{Region: region}
	}

	values := make(map[int]float64)
	for i, h := range t.Header {
		year, ok := parseYearHeader(h)
		if !ok {
			continue
		}

		raw := strings.TrimSpace(t.Cell(row, i))
		if _, missing := missingTokens[strings.ToLower(raw)]; missing {
			continue
		}

		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return domain.CpiSeries{}, &domain.InvalidValueError{Column: h, Value: raw}
		}
		values[year] = v
	}

	return domain.NewCpiSeries(values), nil
}

// findRegionRow returns the first exact match, else the first row whose
// region cell contains region case-insensitively.
func findRegionRow(t *table.Table, col int, region string) []string {
	for _, row := range t.Rows {
		if t.Cell(row, col) == region {
			return row
		}
	}

	needle := strings.ToLower(region)
	for _, row := range t.Rows {
		if strings.Contains(strings.ToLower(t.Cell(row, col)), needle) {
			return row
		}
	}
	return nil
}

// parseYearHeader accepts headers made only of ASCII digits.
func parseYearHeader(h string) (int, bool) {
	if h == "" {
		return 0, false
	}
	for _, r := range h {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(h)
	if err != nil {
		return 0, false
	}
	return year, true
}
