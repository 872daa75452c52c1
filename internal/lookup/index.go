package lookup

import (
	"box-office-lab/internal/domain"
)

// Match is the index value chosen for a release year.
type Match struct {
	Year  int                   // year whose value was used
	Value float64               // index value (base = 100)
	Clamp domain.ClampDirection // ClampNone for an exact hit
}

// IndexAt returns the index value for year.
// Years before the first indexed year use the first value; years after the
// last use the last value. A missing year inside the range is an
// InteriorGapError: values are never interpolated.
// Returns ErrEmptyIndex if the index has no years.
func IndexAt(year int, idx *domain.CpiIndex) (Match, error) {
	if idx.Len() == 0 {
		return Match{}, domain.ErrEmptyIndex
	}

	if v, ok := idx.Value(year); ok {
		return Match{Year: year, Value: v}, nil
	}

	minYear, maxYear := idx.MinYear(), idx.MaxYear()
	switch {
	case year < minYear:
		v, _ := idx.Value(minYear)
		return Match{Year: minYear, Value: v, Clamp: domain.ClampBelow}, nil
	case year > maxYear:
		v, _ := idx.Value(maxYear)
		return Match{Year: maxYear, Value: v, Clamp: domain.ClampAbove}, nil
	default:
		return Match{}, &domain.InteriorGapError{Year: year, MinYear: minYear, MaxYear: maxYear}
	}
}
