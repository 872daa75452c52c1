package memory

import (
	"context"
	"errors"
	"testing"

	"box-office-lab/internal/domain"
	"box-office-lab/internal/storage"
)

func TestIndexStore_InsertBulkAndGet(t *testing.T) {
	store := NewIndexStore()
	ctx := context.Background()

	pct := 10.0
	points := []*domain.IndexPoint{
		{RunID: "run1", Year: 2002, Value: 100},
		{RunID: "run1", Year: 2000, Value: 90.9, PctChange: nil},
		{RunID: "run1", Year: 2001, Value: 100, PctChange: &pct},
	}

	if err := store.InsertBulk(ctx, points); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetByRunID(ctx, "run1")
	if err != nil {
		t.Fatalf("GetByRunID failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(got))
	}
	for i, want := range []int{2000, 2001, 2002} {
		if got[i].Year != want {
			t.Errorf("point %d year = %d, want %d", i, got[i].Year, want)
		}
	}
	if got[0].PctChange != nil {
		t.Errorf("Expected nil pct change for 2000")
	}
	if got[1].PctChange == nil || *got[1].PctChange != 10 {
		t.Errorf("Expected pct change 10 for 2001, got %v", got[1].PctChange)
	}

	// Stored pct change is a copy
	pct = 99
	again, _ := store.GetByRunID(ctx, "run1")
	if *again[1].PctChange != 10 {
		t.Errorf("store shares pct change pointer with caller")
	}
}

func TestIndexStore_DuplicateKey(t *testing.T) {
	store := NewIndexStore()
	ctx := context.Background()

	if err := store.InsertBulk(ctx, []*domain.IndexPoint{{RunID: "run1", Year: 2000, Value: 100}}); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.InsertBulk(ctx, []*domain.IndexPoint{{RunID: "run1", Year: 2000, Value: 100}})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}

	err = store.InsertBulk(ctx, []*domain.IndexPoint{
		{RunID: "run2", Year: 2000},
		{RunID: "run2", Year: 2000},
	})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey for intra-batch duplicate, got %v", err)
	}
}

func TestIndexStore_EmptyBatch(t *testing.T) {
	store := NewIndexStore()

	if err := store.InsertBulk(context.Background(), nil); err != nil {
		t.Errorf("Expected nil error for empty batch, got %v", err)
	}
}
