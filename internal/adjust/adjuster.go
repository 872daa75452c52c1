// Package adjust restates nominal box-office revenue in base-year currency.
package adjust

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"box-office-lab/internal/domain"
	"box-office-lab/internal/lookup"
)

// FaultPolicy decides what a per-record failure does to the batch.
type FaultPolicy string

const (
	// PolicyFailFast aborts the whole batch on the first bad record.
	PolicyFailFast FaultPolicy = "fail-fast"
	// PolicySkip drops the bad record from the ranking and lists it in Audit.Skipped.
	PolicySkip FaultPolicy = "skip"
)

// ParseFaultPolicy converts a config string to a FaultPolicy.
func ParseFaultPolicy(s string) (FaultPolicy, error) {
	switch FaultPolicy(s) {
	case "", PolicyFailFast:
		return PolicyFailFast, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("unknown fault policy %q", s)
	}
}

// SkippedRecord is a record excluded under PolicySkip.
type SkippedRecord struct {
	Record domain.RevenueRecord
	Err    error
}

// Audit lists the data-quality events of one adjustment pass.
type Audit struct {
	Extrapolations []domain.Extrapolation
	Skipped        []SkippedRecord
}

// Adjuster converts RevenueRecords to AdjustedRevenueRecords.
type Adjuster struct {
	index  *domain.CpiIndex
	policy FaultPolicy
}

// NewAdjuster creates an adjuster over idx.
func NewAdjuster(idx *domain.CpiIndex, policy FaultPolicy) *Adjuster {
	if policy == "" {
		policy = PolicyFailFast
	}
	return &Adjuster{index: idx, policy: policy}
}

// Adjust prices every record at its release-year index, then ranks the
// results by adjusted worldwide revenue, highest first. Equal values keep
// their input order. records is not modified.
func (a *Adjuster) Adjust(records []domain.RevenueRecord) ([]*domain.AdjustedRevenueRecord, *Audit, error) {
	if a.index.Len() == 0 {
		return nil, nil, domain.ErrEmptyIndex
	}

	audit := &Audit{}
	out := make([]*domain.AdjustedRevenueRecord, 0, len(records))

	for i, rec := range records {
		adj, err := a.adjustOne(rec)
		if err != nil {
			if a.policy == PolicySkip && isRecordError(err) {
				audit.Skipped = append(audit.Skipped, SkippedRecord{Record: rec, Err: err})
				continue
			}
			return nil, audit, fmt.Errorf("record %d (%q, %d): %w", i+1, rec.Title, rec.Year, err)
		}

		if adj.Clamp != domain.ClampNone {
			audit.Extrapolations = append(audit.Extrapolations, domain.Extrapolation{
				Title:     rec.Title,
				Year:      rec.Year,
				IndexYear: adj.IndexYear,
				Direction: adj.Clamp,
			})
		}
		out = append(out, adj)
	}

	Rank(out)
	return out, audit, nil
}

func (a *Adjuster) adjustOne(rec domain.RevenueRecord) (*domain.AdjustedRevenueRecord, error) {
	for _, v := range []float64{rec.Domestic, rec.Foreign, rec.Worldwide} {
		if !finite(v) {
			return nil, &domain.NonFiniteRevenueError{Title: rec.Title, Year: rec.Year, Value: v}
		}
	}

	m, err := lookup.IndexAt(rec.Year, a.index)
	if err != nil {
		return nil, err
	}
	if m.Value == 0 {
		return nil, &domain.DivisionByZeroError{Title: rec.Title, Year: rec.Year, IndexYear: m.Year}
	}

	factor := 100 / m.Value
	worldwideAdj := rec.Worldwide * factor
	if !finite(worldwideAdj) {
		return nil, &domain.NonFiniteRevenueError{Title: rec.Title, Year: rec.Year, Value: worldwideAdj}
	}

	return &domain.AdjustedRevenueRecord{
		RevenueRecord:     rec,
		IndexYear:         m.Year,
		IndexValue:        m.Value,
		Clamp:             m.Clamp,
		InflationFactor:   factor,
		DomesticAdjusted:  rec.Domestic * factor,
		ForeignAdjusted:   rec.Foreign * factor,
		WorldwideAdjusted: worldwideAdj,
		AdjustmentAmount:  worldwideAdj - rec.Worldwide,
	}, nil
}

// Rank stable-sorts records by WorldwideAdjusted descending and assigns
// AdjustedRank 1..N.
func Rank(records []*domain.AdjustedRevenueRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].WorldwideAdjusted > records[j].WorldwideAdjusted
	})
	for i, r := range records {
		r.AdjustedRank = i + 1
	}
}

func isRecordError(err error) bool {
	var dz *domain.DivisionByZeroError
	var gap *domain.InteriorGapError
	var nf *domain.NonFiniteRevenueError
	return errors.As(err, &dz) || errors.As(err, &gap) || errors.As(err, &nf)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
