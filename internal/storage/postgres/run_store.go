package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"box-office-lab/internal/domain"
	"box-office-lab/internal/storage"
)

// RunStore implements storage.RunStore using PostgreSQL.
type RunStore struct {
	pool *Pool
}

// NewRunStore creates a new RunStore.
func NewRunStore(pool *Pool) *RunStore {
	return &RunStore{pool: pool}
}

// Compile-time interface check.
var _ storage.RunStore = (*RunStore)(nil)

const runColumns = `
	run_id, started_at, finished_at, region,
	requested_base_year, base_year, cpi_source, revenue_source,
	index_years, movie_count, clamped_count, skipped_count
`

// Insert adds a new run. Returns ErrDuplicateKey if run_id exists.
func (s *RunStore) Insert(ctx context.Context, r *domain.Run) error {
	if r == nil || r.RunID == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO runs (` + runColumns + `) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8,
			$9, $10, $11, $12
		)
	`

	_, err := s.pool.Exec(ctx, query,
		r.RunID, r.StartedAt, r.FinishedAt, r.Region,
		r.RequestedBaseYear, r.BaseYear, r.CpiSource, r.RevenueSource,
		r.IndexYears, r.MovieCount, r.ClampedCount, r.SkippedCount,
	)
	return storeError("insert run", err)
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *RunStore) GetByID(ctx context.Context, runID string) (*domain.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE run_id = $1`

	r, err := scanRun(s.pool.QueryRow(ctx, query, runID))
	if err != nil {
		return nil, storeError("get run by id", err)
	}
	return r, nil
}

// GetLatest retrieves the most recently started run. Returns ErrNotFound if none.
func (s *RunStore) GetLatest(ctx context.Context) (*domain.Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, run_id DESC LIMIT 1`

	r, err := scanRun(s.pool.QueryRow(ctx, query))
	if err != nil {
		return nil, storeError("get latest run", err)
	}
	return r, nil
}

func scanRun(row pgx.Row) (*domain.Run, error) {
	var r domain.Run

	err := row.Scan(
		&r.RunID, &r.StartedAt, &r.FinishedAt, &r.Region,
		&r.RequestedBaseYear, &r.BaseYear, &r.CpiSource, &r.RevenueSource,
		&r.IndexYears, &r.MovieCount, &r.ClampedCount, &r.SkippedCount,
	)
	if err != nil {
		return nil, err
	}

	r.StartedAt = r.StartedAt.UTC()
	r.FinishedAt = r.FinishedAt.UTC()
	return &r, nil
}
