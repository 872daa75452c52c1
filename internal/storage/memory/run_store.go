package memory

import (
	"context"
	"sync"

	"box-office-lab/internal/domain"
	"box-office-lab/internal/storage"
)

// RunStore is an in-memory implementation of storage.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Run // keyed by run_id
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{
		data: make(map[string]*domain.Run),
	}
}

// Insert adds a new run. Returns ErrDuplicateKey if run_id exists.
func (s *RunStore) Insert(_ context.Context, r *domain.Run) error {
	if r == nil || r.RunID == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.RunID]; exists {
		return storage.ErrDuplicateKey
	}

	runCopy := *r
	s.data[r.RunID] = &runCopy
	return nil
}

// GetByID retrieves a run by its ID. Returns ErrNotFound if not exists.
func (s *RunStore) GetByID(_ context.Context, runID string) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, exists := s.data[runID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	runCopy := *r
	return &runCopy, nil
}

// GetLatest retrieves the most recently started run. Returns ErrNotFound if none.
func (s *RunStore) GetLatest(_ context.Context) (*domain.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.Run
	for _, r := range s.data {
		if latest == nil || r.StartedAt.After(latest.StartedAt) ||
			(r.StartedAt.Equal(latest.StartedAt) && r.RunID > latest.RunID) {
			latest = r
		}
	}
	if latest == nil {
		return nil, storage.ErrNotFound
	}

	runCopy := *latest
	return &runCopy, nil
}

var _ storage.RunStore = (*RunStore)(nil)
