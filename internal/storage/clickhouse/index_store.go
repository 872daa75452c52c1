package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"box-office-lab/internal/domain"
	"box-office-lab/internal/storage"
)

// IndexStore implements storage.IndexStore using ClickHouse.
type IndexStore struct {
	conn *Conn
}

// NewIndexStore creates a new IndexStore.
func NewIndexStore(conn *Conn) *IndexStore {
	return &IndexStore{conn: conn}
}

// Compile-time interface check.
var _ storage.IndexStore = (*IndexStore)(nil)

// InsertBulk adds a run's index points. Fails entire batch on duplicate (run_id, year).
// MergeTree does not enforce keys, so duplicates are checked before sending.
func (s *IndexStore) InsertBulk(ctx context.Context, points []*domain.IndexPoint) error {
	if len(points) == 0 {
		return nil
	}

	type key struct {
		runID string
		year  int
	}
	seen := make(map[key]struct{}, len(points))
	runIDs := make(map[string]struct{})
	for _, p := range points {
		if p == nil || p.RunID == "" {
			return storage.ErrInvalidInput
		}
		k := key{p.RunID, p.Year}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
		runIDs[p.RunID] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for runID := range runIDs {
		existing, err := s.existingYears(ctx, runID)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		for year := range existing {
			if _, clash := seen[key{runID, year}]; clash {
				return storage.ErrDuplicateKey
			}
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO cpi_index (run_id, year, pct_change, value)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		if err := batch.Append(p.RunID, int32(p.Year), p.PctChange, p.Value); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByRunID retrieves all points of a run, ordered by year ASC.
func (s *IndexStore) GetByRunID(ctx context.Context, runID string) ([]*domain.IndexPoint, error) {
	query := `
		SELECT run_id, year, pct_change, value
		FROM cpi_index
		WHERE run_id = ?
		ORDER BY year ASC
	`

	rows, err := s.conn.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query by run id: %w", err)
	}
	defer rows.Close()

	return scanIndexPoints(rows)
}

func (s *IndexStore) existingYears(ctx context.Context, runID string) (map[int]struct{}, error) {
	rows, err := s.conn.Query(ctx, `SELECT year FROM cpi_index WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	years := make(map[int]struct{})
	for rows.Next() {
		var year int32
		if err := rows.Scan(&year); err != nil {
			return nil, err
		}
		years[int(year)] = struct{}{}
	}
	return years, rows.Err()
}

func scanIndexPoints(rows driver.Rows) ([]*domain.IndexPoint, error) {
	points := make([]*domain.IndexPoint, 0)

	for rows.Next() {
		var (
			runID string
			year  int32
			pct   *float64
			value float64
		)
		if err := rows.Scan(&runID, &year, &pct, &value); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		points = append(points, &domain.IndexPoint{
			RunID:     runID,
			Year:      int(year),
			PctChange: pct,
			Value:     value,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return points, nil
}
