package reporting

import (
	"context"
	"fmt"
	"time"

	"box-office-lab/internal/storage"
)

// Generator produces reports from stored data.
type Generator struct {
	runStore     storage.RunStore
	revenueStore storage.AdjustedRevenueStore
	indexStore   storage.IndexStore
	now          func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(
	runStore storage.RunStore,
	revenueStore storage.AdjustedRevenueStore,
	indexStore storage.IndexStore,
) *Generator {
	return &Generator{
		runStore:     runStore,
		revenueStore: revenueStore,
		indexStore:   indexStore,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate assembles the report of a stored run. quality carries the audit
// of the adjustment pass, which is not persisted beyond its counts.
func (g *Generator) Generate(ctx context.Context, runID string, topN int, quality DataQuality) (*Report, error) {
	run, err := g.runStore.GetByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}

	rankings, err := g.revenueStore.GetByRunID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("load rankings: %w", err)
	}

	index, err := g.indexStore.GetByRunID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("load index: %w", err)
	}

	quality.BaseYearFallback = run.BaseYear != run.RequestedBaseYear

	return &Report{
		GeneratedAt: g.now(),
		Run:         *run,
		Rankings:    rankings,
		Index:       index,
		TopN:        topN,
		Franchises:  SummarizeFranchises(rankings),
		Quality:     quality,
	}, nil
}
