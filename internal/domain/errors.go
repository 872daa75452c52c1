package domain

import (
	"errors"
	"fmt"
)

// Pipeline errors shared across stages.
var (
	// ErrEmptySeries is returned when a CPI series has no usable year data.
	// The index returned alongside it is empty but valid.
	ErrEmptySeries = errors.New("cpi series has no usable year data")

	// ErrDegenerateBase is returned when the re-basing anchor evaluates to
	// zero or a compounded value is not finite.
	ErrDegenerateBase = errors.New("cpi index anchor value is zero or not finite")

	// ErrEmptyIndex is returned when a lookup is made against an empty index.
	ErrEmptyIndex = errors.New("cpi index is empty")
)

// RegionNotFoundError is returned when no CPI row matches the region exactly
// or as a case-insensitive substring.
type RegionNotFoundError struct {
	Region string
}

func (e *RegionNotFoundError) Error() string {
	return fmt.Sprintf("region %q not found in cpi table", e.Region)
}

// InvalidValueError is returned for a non-blank CPI cell that is not a number.
type InvalidValueError struct {
	Column string
	Value  string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid cpi value %q in column %s", e.Value, e.Column)
}

// DivisionByZeroError is returned when a record matches a zero index value.
type DivisionByZeroError struct {
	Title     string
	Year      int
	IndexYear int
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("zero cpi index at %d for %q (%d)", e.IndexYear, e.Title, e.Year)
}

// NonFiniteRevenueError is returned when a record's revenue, nominal or
// adjusted, is NaN or infinite. Such a value has no place in the ranking.
type NonFiniteRevenueError struct {
	Title string
	Year  int
	Value float64
}

func (e *NonFiniteRevenueError) Error() string {
	return fmt.Sprintf("non-finite revenue %v for %q (%d)", e.Value, e.Title, e.Year)
}

// InteriorGapError is returned when a year inside the index range has no value.
// Interior years are never interpolated.
type InteriorGapError struct {
	Year    int
	MinYear int
	MaxYear int
}

func (e *InteriorGapError) Error() string {
	return fmt.Sprintf("year %d missing inside cpi index range [%d, %d]", e.Year, e.MinYear, e.MaxYear)
}

// Extrapolation records a boundary clamp. It is an audit entry, not a failure.
type Extrapolation struct {
	Title     string
	Year      int
	IndexYear int
	Direction ClampDirection
}

func (e Extrapolation) String() string {
	return fmt.Sprintf("%q (%d) priced at %d index (%s range)", e.Title, e.Year, e.IndexYear, e.Direction)
}

// StageError names the pipeline stage that failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
