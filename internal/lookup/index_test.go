package lookup

import (
	"errors"
	"testing"

	"box-office-lab/internal/domain"
)

func testIndex() *domain.CpiIndex {
	return domain.NewCpiIndex(map[int]float64{
		2000: 50,
		2001: 60,
		2003: 80,
		2024: 100,
	}, 2024, 2024)
}

func TestIndexAt_EmptyIndex(t *testing.T) {
	_, err := IndexAt(2000, nil)
	if !errors.Is(err, domain.ErrEmptyIndex) {
		t.Errorf("expected ErrEmptyIndex, got %v", err)
	}

	_, err = IndexAt(2000, domain.NewCpiIndex(nil, 2024, 2024))
	if !errors.Is(err, domain.ErrEmptyIndex) {
		t.Errorf("expected ErrEmptyIndex, got %v", err)
	}
}

func TestIndexAt_ExactMatch(t *testing.T) {
	m, err := IndexAt(2001, testIndex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Value != 60 || m.Year != 2001 || m.Clamp != domain.ClampNone {
		t.Errorf("expected exact 2001 = 60, got %+v", m)
	}
}

func TestIndexAt_BeforeFirst(t *testing.T) {
	// 1997 should use the 2000 value
	m, err := IndexAt(1997, testIndex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Value != 50 || m.Year != 2000 || m.Clamp != domain.ClampBelow {
		t.Errorf("expected clamp below to 2000 = 50, got %+v", m)
	}
}

func TestIndexAt_AfterLast(t *testing.T) {
	// 2025 should use the 2024 value
	m, err := IndexAt(2025, testIndex())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Value != 100 || m.Year != 2024 || m.Clamp != domain.ClampAbove {
		t.Errorf("expected clamp above to 2024 = 100, got %+v", m)
	}
}

func TestIndexAt_InteriorGap(t *testing.T) {
	_, err := IndexAt(2002, testIndex())

	var gap *domain.InteriorGapError
	if !errors.As(err, &gap) {
		t.Fatalf("expected InteriorGapError, got %v", err)
	}
	if gap.Year != 2002 || gap.MinYear != 2000 || gap.MaxYear != 2024 {
		t.Errorf("unexpected gap details: %+v", gap)
	}
}
