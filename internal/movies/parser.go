// Package movies parses the nominal box-office table into RevenueRecords.
package movies

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"box-office-lab/internal/domain"
	"box-office-lab/internal/table"
)

// ErrMissingColumn is returned when a required column cannot be resolved.
var ErrMissingColumn = errors.New("required column not found")

// Header aliases, compared after normalizeName.
var (
	titleAliases     = []string{"release group", "title", "movie", "film"}
	yearAliases      = []string{"year", "release year"}
	worldwideAliases = []string{"worldwide", "worldwide gross", "worldwide revenue"}
	domesticAliases  = []string{"domestic", "domestic gross", "domestic revenue"}
	foreignAliases   = []string{"foreign", "foreign gross", "foreign revenue", "international"}
)

// RowError points at a row that could not be parsed.
type RowError struct {
	Row    int // 1-based data row
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d column %s: invalid value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

type columns struct {
	title, year, worldwide, domestic, foreign int
}

// Parse converts t into RevenueRecords in table order.
// Money cells may carry "$" and thousands separators; "-" or blank means 0.
func Parse(t *table.Table) ([]domain.RevenueRecord, error) {
	cols, err := resolveColumns(t.Header)
	if err != nil {
		return nil, err
	}

	records := make([]domain.RevenueRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		rowNum := i + 1

		title := strings.TrimSpace(t.Cell(row, cols.title))
		if title == "" {
			return nil, &RowError{Row: rowNum, Column: t.Header[cols.title], Err: errors.New("empty title")}
		}

		rawYear := t.Cell(row, cols.year)
		year, err := ParseYear(rawYear)
		if err != nil {
			return nil, &RowError{Row: rowNum, Column: t.Header[cols.year], Value: rawYear, Err: err}
		}

		rec := domain.RevenueRecord{Title: title, Year: year}
		money := []struct {
			col int
			dst *float64
		}{
			{cols.worldwide, &rec.Worldwide},
			{cols.domestic, &rec.Domestic},
			{cols.foreign, &rec.Foreign},
		}
		for _, m := range money {
			if m.col < 0 {
				continue
			}
			raw := t.Cell(row, m.col)
			v, err := ParseMoney(raw)
			if err != nil {
				return nil, &RowError{Row: rowNum, Column: t.Header[m.col], Value: raw, Err: err}
			}
			*m.dst = v
		}

		records = append(records, rec)
	}

	return records, nil
}

// resolveColumns maps header aliases to column positions. Title, year and
// worldwide are required; domestic and foreign are optional.
func resolveColumns(header []string) (columns, error) {
	find := func(aliases []string) int {
		for i, h := range header {
			name := normalizeName(h)
			for _, a := range aliases {
				if name == a {
					return i
				}
			}
		}
		return -1
	}

	cols := columns{
		title:     find(titleAliases),
		year:      find(yearAliases),
		worldwide: find(worldwideAliases),
		domestic:  find(domesticAliases),
		foreign:   find(foreignAliases),
	}

	switch {
	case cols.title < 0:
		return cols, fmt.Errorf("%w: title (one of %v)", ErrMissingColumn, titleAliases)
	case cols.year < 0:
		return cols, fmt.Errorf("%w: year (one of %v)", ErrMissingColumn, yearAliases)
	case cols.worldwide < 0:
		return cols, fmt.Errorf("%w: worldwide (one of %v)", ErrMissingColumn, worldwideAliases)
	}
	return cols, nil
}

// normalizeName lower-cases h and drops "$", "_" and surrounding spaces.
func normalizeName(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.TrimPrefix(h, "$")
	h = strings.ReplaceAll(h, "_", " ")
	return strings.TrimSpace(h)
}

// Spreadsheet years outside this range are rejected.
const (
	minYear = 1000
	maxYear = 9999
)

// ParseYear accepts "2019" and spreadsheet-style "2019.0".
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty year")
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < minYear || f > maxYear || math.Trunc(f) != f {
		return 0, fmt.Errorf("not a year")
	}
	return int(f), nil
}

// ParseMoney accepts "1234.5" and "$1,234.50". Blank, dashes and N/A are 0.
func ParseMoney(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "", "-", "–", "—", "n/a", "N/A":
		return 0, nil
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a number")
	}
	return v, nil
}
