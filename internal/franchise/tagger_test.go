package franchise

import (
	"testing"

	"box-office-lab/internal/domain"
)

func TestTag(t *testing.T) {
	tagger := NewTagger(nil)

	tests := []struct {
		title string
		want  string
	}{
		{"Avengers: Endgame", "Marvel"},
		{"The Dark Knight", "DC"},
		{"Star Wars: Episode VII - The Force Awakens", "Star Wars"},
		{"Harry Potter and the Deathly Hallows: Part 2", "Harry Potter"},
		{"The Lord of the Rings: The Return of the King", "LOTR/Hobbit"},
		{"Furious 7", "Fast & Furious"},
		{"Skyfall", "James Bond"},
		{"Jurassic World", "Jurassic"},
		{"Mission: Impossible - Fallout", "Mission Impossible"},
		{"Toy Story 4", "Pixar"},
		{"Frozen II", "Disney"},
		{"Titanic", domain.FranchiseOther},
		{"AVATAR", domain.FranchiseOther},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := tagger.Tag(tt.title); got != tt.want {
				t.Errorf("Tag(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestTag_LaterGroupOverrides(t *testing.T) {
	tagger := NewTagger([]Group{
		{Name: "First", Keywords: []string{"hero"}},
		{Name: "Second", Keywords: []string{"big hero"}},
	})

	if got := tagger.Tag("Big Hero 6"); got != "Second" {
		t.Errorf("expected later group to win, got %q", got)
	}
	if got := tagger.Tag("Superhero Movie"); got != "First" {
		t.Errorf("expected First, got %q", got)
	}
}

func TestTag_CaseInsensitive(t *testing.T) {
	tagger := NewTagger([]Group{{Name: "Bond", Keywords: []string{"SKYFALL"}}})

	if got := tagger.Tag("skyfall"); got != "Bond" {
		t.Errorf("expected Bond, got %q", got)
	}
}

func TestTagAll(t *testing.T) {
	records := []*domain.AdjustedRevenueRecord{
		{RevenueRecord: domain.RevenueRecord{Title: "Black Panther"}},
		{RevenueRecord: domain.RevenueRecord{Title: "Gravity"}},
	}

	NewTagger(nil).TagAll(records)

	if records[0].Franchise != "Marvel" || records[1].Franchise != domain.FranchiseOther {
		t.Errorf("unexpected labels: %q, %q", records[0].Franchise, records[1].Franchise)
	}
}

func TestColor(t *testing.T) {
	tagger := NewTagger(nil)

	if got := tagger.Color("Marvel"); got != "#ED1D24" {
		t.Errorf("expected Marvel red, got %s", got)
	}
	if got := tagger.Color("Unknown"); got != OtherColor {
		t.Errorf("expected fallback colour, got %s", got)
	}
}
