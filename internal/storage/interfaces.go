package storage

import (
	"context"

	"box-office-lab/internal/domain"
)

// RunStore provides access to runs storage.
type RunStore interface {
	// Insert adds a new run. Returns ErrDuplicateKey if run_id exists.
	Insert(ctx context.Context, r *domain.Run) error

	// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
	GetByID(ctx context.Context, runID string) (*domain.Run, error)

	// GetLatest retrieves the most recently started run. Returns ErrNotFound if none.
	GetLatest(ctx context.Context) (*domain.Run, error)
}

// AdjustedRevenueStore provides access to adjusted_revenues storage.
type AdjustedRevenueStore interface {
	// InsertBulk adds a run's ranking atomically. Fails entire batch on duplicate (run_id, adjusted_rank).
	InsertBulk(ctx context.Context, records []*domain.AdjustedRevenueRecord) error

	// GetByRunID retrieves all records of a run, ordered by adjusted_rank ASC.
	GetByRunID(ctx context.Context, runID string) ([]*domain.AdjustedRevenueRecord, error)

	// GetTopN retrieves the n best-ranked records of a run, ordered by adjusted_rank ASC.
	GetTopN(ctx context.Context, runID string, n int) ([]*domain.AdjustedRevenueRecord, error)
}

// IndexStore provides access to cpi_index storage.
type IndexStore interface {
	// InsertBulk adds a run's index points. Fails entire batch on duplicate (run_id, year).
	InsertBulk(ctx context.Context, points []*domain.IndexPoint) error

	// GetByRunID retrieves all points of a run, ordered by year ASC.
	GetByRunID(ctx context.Context, runID string) ([]*domain.IndexPoint, error)
}
