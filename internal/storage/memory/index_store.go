package memory

import (
	"context"
	"sort"
	"sync"

	"box-office-lab/internal/domain"
	"box-office-lab/internal/storage"
)

// IndexStore is an in-memory implementation of storage.IndexStore.
type IndexStore struct {
	mu   sync.RWMutex
	data map[string]map[int]*domain.IndexPoint // run_id -> year -> point
}

// NewIndexStore creates a new in-memory CPI index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{
		data: make(map[string]map[int]*domain.IndexPoint),
	}
}

// InsertBulk adds a run's index points. Fails entire batch on duplicate (run_id, year).
func (s *IndexStore) InsertBulk(_ context.Context, points []*domain.IndexPoint) error {
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	type key struct {
		runID string
		year  int
	}
	batchKeys := make(map[key]struct{}, len(points))

	for _, p := range points {
		if p == nil || p.RunID == "" {
			return storage.ErrInvalidInput
		}
		k := key{p.RunID, p.Year}
		if _, exists := s.data[p.RunID][p.Year]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[k]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[k] = struct{}{}
	}

	for _, p := range points {
		byYear, ok := s.data[p.RunID]
		if !ok {
			byYear = make(map[int]*domain.IndexPoint)
			s.data[p.RunID] = byYear
		}
		byYear[p.Year] = copyPoint(p)
	}

	return nil
}

// GetByRunID retrieves all points of a run, ordered by year ASC.
func (s *IndexStore) GetByRunID(_ context.Context, runID string) ([]*domain.IndexPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byYear := s.data[runID]
	result := make([]*domain.IndexPoint, 0, len(byYear))
	for _, p := range byYear {
		result = append(result, copyPoint(p))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Year < result[j].Year
	})

	return result, nil
}

func copyPoint(p *domain.IndexPoint) *domain.IndexPoint {
	pointCopy := *p
	if p.PctChange != nil {
		pct := *p.PctChange
		pointCopy.PctChange = &pct
	}
	return &pointCopy
}

var _ storage.IndexStore = (*IndexStore)(nil)
