package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Inflation-Adjusted Box Office Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("All amounts in %d dollars (%s CPI).\n\n", r.Run.BaseYear, r.Run.Region))

	// Run summary
	sb.WriteString("## Run Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Run ID | %s |\n", r.Run.RunID))
	sb.WriteString(fmt.Sprintf("| Region | %s |\n", r.Run.Region))
	sb.WriteString(fmt.Sprintf("| Requested Base Year | %d |\n", r.Run.RequestedBaseYear))
	sb.WriteString(fmt.Sprintf("| Effective Base Year | %d |\n", r.Run.BaseYear))
	if len(r.Index) > 0 {
		sb.WriteString(fmt.Sprintf("| Index Range | %d-%d (%d years) |\n",
			r.Index[0].Year, r.Index[len(r.Index)-1].Year, len(r.Index)))
	}
	sb.WriteString(fmt.Sprintf("| Movies Ranked | %d |\n", r.Run.MovieCount))
	sb.WriteString(fmt.Sprintf("| Clamped | %d |\n", r.Run.ClampedCount))
	sb.WriteString(fmt.Sprintf("| Skipped | %d |\n", r.Run.SkippedCount))
	sb.WriteString(fmt.Sprintf("| CPI Source | %s |\n", escapeCell(r.Run.CpiSource)))
	sb.WriteString(fmt.Sprintf("| Revenue Source | %s |\n", escapeCell(r.Run.RevenueSource)))
	sb.WriteString("\n")

	// Top movies
	top := r.Top()
	sb.WriteString(fmt.Sprintf("## Top %d Movies\n\n", len(top)))
	if len(top) > 0 {
		sb.WriteString("| Rank | Title | Year | Worldwide | Adjusted Worldwide | Factor | Franchise |\n")
		sb.WriteString("|------|-------|------|-----------|--------------------|--------|-----------|\n")
		for _, m := range top {
			sb.WriteString(fmt.Sprintf("| %d | %s | %d | %s | %s | %.4f | %s |\n",
				m.AdjustedRank, escapeCell(m.Title), m.Year,
				Dollars(m.Worldwide), Dollars(m.WorldwideAdjusted),
				m.InflationFactor, m.Franchise))
		}
	} else {
		sb.WriteString("No movies ranked.\n")
	}
	sb.WriteString("\n")

	// Franchises
	sb.WriteString("## Franchise Breakdown\n\n")
	if len(r.Franchises) > 0 {
		sb.WriteString("| Franchise | Movies | Nominal Worldwide | Adjusted Worldwide | Best Ranked |\n")
		sb.WriteString("|-----------|--------|-------------------|--------------------|-------------|\n")
		for _, f := range r.Franchises {
			sb.WriteString(fmt.Sprintf("| %s | %d | %s | %s | #%d %s |\n",
				f.Franchise, f.Movies,
				Dollars(f.NominalWorldwide), Dollars(f.AdjustedWorldwide),
				f.BestRank, escapeCell(f.BestTitle)))
		}
	} else {
		sb.WriteString("No franchise data available.\n")
	}
	sb.WriteString("\n")

	// Data quality
	sb.WriteString("## Data Quality\n\n")
	q := r.Quality
	if !q.BaseYearFallback && len(q.Extrapolations) == 0 && len(q.Skipped) == 0 {
		sb.WriteString("No data quality issues.\n\n")
		return sb.String()
	}

	if q.BaseYearFallback {
		sb.WriteString(fmt.Sprintf("**Base year %d not in CPI data; re-based on %d.**\n\n",
			r.Run.RequestedBaseYear, r.Run.BaseYear))
	}

	if len(q.Extrapolations) > 0 {
		sb.WriteString("### Extrapolated Years\n\n")
		sb.WriteString("| Title | Year | Index Year | Direction |\n")
		sb.WriteString("|-------|------|------------|-----------|\n")
		for _, e := range q.Extrapolations {
			sb.WriteString(fmt.Sprintf("| %s | %d | %d | %s |\n",
				escapeCell(e.Title), e.Year, e.IndexYear, e.Direction))
		}
		sb.WriteString("\n")
	}

	if len(q.Skipped) > 0 {
		sb.WriteString("### Skipped Records\n\n")
		for _, s := range q.Skipped {
			sb.WriteString(fmt.Sprintf("- %s (%d): %s\n", s.Title, s.Year, s.Reason))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
