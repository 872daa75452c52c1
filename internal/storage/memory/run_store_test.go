package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"box-office-lab/internal/domain"
	"box-office-lab/internal/storage"
)

func TestRunStore_InsertAndGet(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	run := &domain.Run{
		RunID:      "run1",
		StartedAt:  time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Region:     "World",
		BaseYear:   2024,
		MovieCount: 3,
	}

	if err := store.Insert(ctx, run); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByID(ctx, "run1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.MovieCount != 3 || got.Region != "World" {
		t.Errorf("unexpected run: %+v", got)
	}

	// Mutating the returned copy must not leak into the store
	got.MovieCount = 99
	again, _ := store.GetByID(ctx, "run1")
	if again.MovieCount != 3 {
		t.Errorf("store was mutated through returned pointer: %d", again.MovieCount)
	}
}

func TestRunStore_DuplicateKey(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	run := &domain.Run{RunID: "run1"}
	if err := store.Insert(ctx, run); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.Insert(ctx, run)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestRunStore_InvalidInput(t *testing.T) {
	store := NewRunStore()

	err := store.Insert(context.Background(), &domain.Run{})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestRunStore_NotFound(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()

	if _, err := store.GetByID(ctx, "nonexistent"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetLatest(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound from GetLatest, got %v", err)
	}
}

func TestRunStore_GetLatest(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"older", "newest", "middle"} {
		offsets := []time.Duration{0, 2 * time.Hour, time.Hour}
		run := &domain.Run{RunID: id, StartedAt: base.Add(offsets[i])}
		if err := store.Insert(ctx, run); err != nil {
			t.Fatalf("Insert %s failed: %v", id, err)
		}
	}

	got, err := store.GetLatest(ctx)
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}
	if got.RunID != "newest" {
		t.Errorf("GetLatest = %s, want newest", got.RunID)
	}
}
