package memory

import (
	"context"
	"sort"
	"sync"

	"box-office-lab/internal/domain"
	"box-office-lab/internal/storage"
)

// AdjustedRevenueStore is an in-memory implementation of storage.AdjustedRevenueStore.
type AdjustedRevenueStore struct {
	mu   sync.RWMutex
	data map[string]map[int]*domain.AdjustedRevenueRecord // run_id -> adjusted_rank -> record
}

// NewAdjustedRevenueStore creates a new in-memory adjusted revenue store.
func NewAdjustedRevenueStore() *AdjustedRevenueStore {
	return &AdjustedRevenueStore{
		data: make(map[string]map[int]*domain.AdjustedRevenueRecord),
	}
}

// InsertBulk adds a run's ranking atomically. Fails entire batch on any duplicate.
func (s *AdjustedRevenueStore) InsertBulk(_ context.Context, records []*domain.AdjustedRevenueRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	type key struct {
		runID string
		rank  int
	}
	batchKeys := make(map[key]struct{}, len(records))

	// First pass: validate and check for duplicates (existing + intra-batch)
	for _, r := range records {
		if r == nil || r.RunID == "" || r.AdjustedRank <= 0 {
			return storage.ErrInvalidInput
		}
		k := key{r.RunID, r.AdjustedRank}
		if _, exists := s.data[r.RunID][r.AdjustedRank]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[k]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[k] = struct{}{}
	}

	// Second pass: insert all
	for _, r := range records {
		byRank, ok := s.data[r.RunID]
		if !ok {
			byRank = make(map[int]*domain.AdjustedRevenueRecord)
			s.data[r.RunID] = byRank
		}
		recCopy := *r
		byRank[r.AdjustedRank] = &recCopy
	}

	return nil
}

// GetByRunID retrieves all records of a run, ordered by adjusted_rank ASC.
func (s *AdjustedRevenueStore) GetByRunID(ctx context.Context, runID string) ([]*domain.AdjustedRevenueRecord, error) {
	return s.GetTopN(ctx, runID, 0)
}

// GetTopN retrieves the n best-ranked records of a run. n <= 0 returns all.
func (s *AdjustedRevenueStore) GetTopN(_ context.Context, runID string, n int) ([]*domain.AdjustedRevenueRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byRank := s.data[runID]
	result := make([]*domain.AdjustedRevenueRecord, 0, len(byRank))
	for _, r := range byRank {
		recCopy := *r
		result = append(result, &recCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].AdjustedRank < result[j].AdjustedRank
	})

	if n > 0 && n < len(result) {
		result = result[:n]
	}
	return result, nil
}

var _ storage.AdjustedRevenueStore = (*AdjustedRevenueStore)(nil)
