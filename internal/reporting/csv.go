package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"box-office-lab/internal/domain"
)

// adjustedHeader keeps the revenue table's own column names so the output
// can be fed back through the revenue parser.
var adjustedHeader = []string{
	"Adjusted_Rank", "Release Group", "Year",
	"$Worldwide", "$Domestic", "$Foreign",
	"CPI_Index", "Index_Year", "Clamp", "Inflation_Factor",
	"$Worldwide_Adjusted", "$Domestic_Adjusted", "$Foreign_Adjusted",
	"Adjustment_Amount", "Franchise", "Movie_ID",
}

// RenderCSV writes the adjusted table in rank order.
func RenderCSV(w io.Writer, records []*domain.AdjustedRevenueRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(adjustedHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.AdjustedRank),
			r.Title,
			strconv.Itoa(r.Year),
			Money(r.Worldwide),
			Money(r.Domestic),
			Money(r.Foreign),
			Ratio(r.IndexValue),
			strconv.Itoa(r.IndexYear),
			string(r.Clamp),
			Ratio(r.InflationFactor),
			Money(r.WorldwideAdjusted),
			Money(r.DomesticAdjusted),
			Money(r.ForeignAdjusted),
			Money(r.AdjustmentAmount),
			r.Franchise,
			r.MovieID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", r.AdjustedRank, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// RenderIndexCSV writes one row per index year. Pct_Change is blank where
// the source value was missing.
func RenderIndexCSV(w io.Writer, points []*domain.IndexPoint) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Year", "Pct_Change", "CPI_Index"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range points {
		pct := ""
		if p.PctChange != nil {
			pct = strconv.FormatFloat(*p.PctChange, 'f', -1, 64)
		}
		if err := cw.Write([]string{strconv.Itoa(p.Year), pct, Ratio(p.Value)}); err != nil {
			return fmt.Errorf("write year %d: %w", p.Year, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
