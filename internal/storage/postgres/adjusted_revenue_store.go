package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"box-office-lab/internal/domain"
	"box-office-lab/internal/storage"
)

// AdjustedRevenueStore implements storage.AdjustedRevenueStore using PostgreSQL.
type AdjustedRevenueStore struct {
	pool *Pool
}

// NewAdjustedRevenueStore creates a new AdjustedRevenueStore.
func NewAdjustedRevenueStore(pool *Pool) *AdjustedRevenueStore {
	return &AdjustedRevenueStore{pool: pool}
}

// Compile-time interface check.
var _ storage.AdjustedRevenueStore = (*AdjustedRevenueStore)(nil)

const adjustedRevenueColumns = `
	run_id, adjusted_rank, movie_id, title, release_year,
	domestic_gross, foreign_gross, worldwide_gross,
	index_year, index_value, clamp, inflation_factor,
	domestic_adjusted, foreign_adjusted, worldwide_adjusted,
	adjustment_amount, franchise
`

// InsertBulk adds a run's ranking atomically. Fails entire batch on any duplicate.
func (s *AdjustedRevenueStore) InsertBulk(ctx context.Context, records []*domain.AdjustedRevenueRecord) error {
	if len(records) == 0 {
		return nil
	}
	for _, r := range records {
		if r == nil || r.RunID == "" || r.AdjustedRank <= 0 {
			return storage.ErrInvalidInput
		}
	}

	query := `
		INSERT INTO adjusted_revenues (` + adjustedRevenueColumns + `) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15,
			$16, $17
		)
	`

	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(query,
			r.RunID, r.AdjustedRank, r.MovieID, r.Title, r.Year,
			r.Domestic, r.Foreign, r.Worldwide,
			r.IndexYear, r.IndexValue, string(r.Clamp), r.InflationFactor,
			r.DomesticAdjusted, r.ForeignAdjusted, r.WorldwideAdjusted,
			r.AdjustmentAmount, r.Franchise,
		)
	}

	return s.pool.withTx(ctx, func(tx pgx.Tx) error {
		results := tx.SendBatch(ctx, batch)
		for range records {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return storeError("insert adjusted revenue in bulk", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}
		return nil
	})
}

// GetByRunID retrieves all records of a run, ordered by adjusted_rank ASC.
func (s *AdjustedRevenueStore) GetByRunID(ctx context.Context, runID string) ([]*domain.AdjustedRevenueRecord, error) {
	query := `
		SELECT ` + adjustedRevenueColumns + `
		FROM adjusted_revenues
		WHERE run_id = $1
		ORDER BY adjusted_rank ASC
	`

	rows, err := s.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("get adjusted revenues by run id: %w", err)
	}
	defer rows.Close()

	return scanAdjustedRevenues(rows)
}

// GetTopN retrieves the n best-ranked records of a run. n <= 0 returns all.
func (s *AdjustedRevenueStore) GetTopN(ctx context.Context, runID string, n int) ([]*domain.AdjustedRevenueRecord, error) {
	if n <= 0 {
		return s.GetByRunID(ctx, runID)
	}

	query := `
		SELECT ` + adjustedRevenueColumns + `
		FROM adjusted_revenues
		WHERE run_id = $1
		ORDER BY adjusted_rank ASC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, runID, n)
	if err != nil {
		return nil, fmt.Errorf("get top adjusted revenues: %w", err)
	}
	defer rows.Close()

	return scanAdjustedRevenues(rows)
}

func scanAdjustedRevenues(rows pgx.Rows) ([]*domain.AdjustedRevenueRecord, error) {
	records := make([]*domain.AdjustedRevenueRecord, 0)

	for rows.Next() {
		var r domain.AdjustedRevenueRecord
		var clamp string

		err := rows.Scan(
			&r.RunID, &r.AdjustedRank, &r.MovieID, &r.Title, &r.Year,
			&r.Domestic, &r.Foreign, &r.Worldwide,
			&r.IndexYear, &r.IndexValue, &clamp, &r.InflationFactor,
			&r.DomesticAdjusted, &r.ForeignAdjusted, &r.WorldwideAdjusted,
			&r.AdjustmentAmount, &r.Franchise,
		)
		if err != nil {
			return nil, fmt.Errorf("scan adjusted revenue row: %w", err)
		}
		r.Clamp = domain.ClampDirection(clamp)

		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate adjusted revenue rows: %w", err)
	}

	return records, nil
}
