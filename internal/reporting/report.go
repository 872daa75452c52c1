package reporting

import (
	"fmt"
	"sort"
	"time"

	"box-office-lab/internal/domain"
)

// Report holds everything the renderers need for one run.
type Report struct {
	GeneratedAt time.Time
	Run         domain.Run
	Rankings    []*domain.AdjustedRevenueRecord // adjusted_rank ASC
	Index       []*domain.IndexPoint            // year ASC
	TopN        int                             // <= 0 means all
	Franchises  []FranchiseSummary
	Quality     DataQuality
}

// FranchiseSummary aggregates the ranking by franchise label.
type FranchiseSummary struct {
	Franchise         string
	Movies            int
	NominalWorldwide  float64
	AdjustedWorldwide float64
	BestTitle         string
	BestRank          int
}

// DataQuality lists the non-fatal events of a run.
type DataQuality struct {
	BaseYearFallback bool
	Extrapolations   []domain.Extrapolation
	Skipped          []SkippedRow
}

// SkippedRow is a record excluded from the ranking and why.
type SkippedRow struct {
	Title  string
	Year   int
	Reason string
}

// Top returns the first TopN rankings, or all of them.
func (r *Report) Top() []*domain.AdjustedRevenueRecord {
	if r.TopN <= 0 || r.TopN >= len(r.Rankings) {
		return r.Rankings
	}
	return r.Rankings[:r.TopN]
}

// SummarizeFranchises groups records by franchise, ordered by adjusted
// worldwide total DESC, then name ASC.
func SummarizeFranchises(records []*domain.AdjustedRevenueRecord) []FranchiseSummary {
	byName := make(map[string]*FranchiseSummary)
	for _, r := range records {
		name := r.Franchise
		if name == "" {
			name = domain.FranchiseOther
		}
		s, ok := byName[name]
		if !ok {
			s = &FranchiseSummary{Franchise: name}
			byName[name] = s
		}
		s.Movies++
		s.NominalWorldwide += r.Worldwide
		s.AdjustedWorldwide += r.WorldwideAdjusted
		if s.BestRank == 0 || r.AdjustedRank < s.BestRank {
			s.BestRank = r.AdjustedRank
			s.BestTitle = r.Title
		}
	}

	out := make([]FranchiseSummary, 0, len(byName))
	for _, s := range byName {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AdjustedWorldwide != out[j].AdjustedWorldwide {
			return out[i].AdjustedWorldwide > out[j].AdjustedWorldwide
		}
		return out[i].Franchise < out[j].Franchise
	})
	return out
}

// Output file names.
func AdjustedCSVName(baseYear int) string {
	return fmt.Sprintf("movies_inflation_adjusted_%d.csv", baseYear)
}

func IndexCSVName(baseYear int) string {
	return fmt.Sprintf("cpi_index_%d.csv", baseYear)
}

func WorkbookName(baseYear int) string {
	return fmt.Sprintf("movies_inflation_adjusted_%d.xlsx", baseYear)
}

const (
	MarkdownName = "REPORT.md"
	ChartName    = "top_movies_inflation_adjusted.svg"
	ChartPNGName = "top_movies_inflation_adjusted.png"
)
