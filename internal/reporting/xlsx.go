package reporting

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook sheet names.
const (
	SheetRanking    = "Ranking"
	SheetIndex      = "CPI Index"
	SheetFranchises = "Franchises"
)

// RenderWorkbook builds the ranking, index and franchise sheets.
// The caller owns the returned file and must Close it.
func RenderWorkbook(r *Report) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SheetRanking); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetIndex); err != nil {
		f.Close()
		return nil, fmt.Errorf("add sheet %s: %w", SheetIndex, err)
	}
	if _, err := f.NewSheet(SheetFranchises); err != nil {
		f.Close()
		return nil, fmt.Errorf("add sheet %s: %w", SheetFranchises, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	moneyFmt := "#,##0"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create money style: %w", err)
	}

	// Ranking
	rows := make([][]any, 0, len(r.Rankings)+1)
	header := make([]any, len(adjustedHeader))
	for i, h := range adjustedHeader {
		header[i] = h
	}
	rows = append(rows, header)
	for _, m := range r.Rankings {
		rows = append(rows, []any{
			m.AdjustedRank, m.Title, m.Year,
			m.Worldwide, m.Domestic, m.Foreign,
			m.IndexValue, m.IndexYear, string(m.Clamp), m.InflationFactor,
			m.WorldwideAdjusted, m.DomesticAdjusted, m.ForeignAdjusted,
			m.AdjustmentAmount, m.Franchise, m.MovieID,
		})
	}
	if err := writeSheet(f, SheetRanking, rows, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	last := len(r.Rankings) + 1
	for _, span := range [][2]string{{"D", "F"}, {"K", "N"}} {
		from, _ := excelize.JoinCellName(span[0], 2)
		to, _ := excelize.JoinCellName(span[1], last)
		if last >= 2 {
			_ = f.SetCellStyle(SheetRanking, from, to, moneyStyle)
		}
	}
	_ = f.SetColWidth(SheetRanking, "B", "B", 40)
	_ = f.SetColWidth(SheetRanking, "D", "F", 16)
	_ = f.SetColWidth(SheetRanking, "K", "N", 18)
	_ = f.SetColWidth(SheetRanking, "P", "P", 20)

	// CPI Index
	rows = [][]any{{"Year", "Pct_Change", "CPI_Index"}}
	for _, p := range r.Index {
		var pct any = ""
		if p.PctChange != nil {
			pct = *p.PctChange
		}
		rows = append(rows, []any{p.Year, pct, p.Value})
	}
	if err := writeSheet(f, SheetIndex, rows, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	_ = f.SetColWidth(SheetIndex, "A", "C", 14)

	// Franchises
	rows = [][]any{{"Franchise", "Movies", "Nominal_Worldwide", "Adjusted_Worldwide", "Best_Rank", "Best_Title"}}
	for _, s := range r.Franchises {
		rows = append(rows, []any{s.Franchise, s.Movies, s.NominalWorldwide, s.AdjustedWorldwide, s.BestRank, s.BestTitle})
	}
	if err := writeSheet(f, SheetFranchises, rows, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	if n := len(r.Franchises) + 1; n >= 2 {
		to, _ := excelize.JoinCellName("D", n)
		_ = f.SetCellStyle(SheetFranchises, "C2", to, moneyStyle)
	}
	_ = f.SetColWidth(SheetFranchises, "A", "A", 20)
	_ = f.SetColWidth(SheetFranchises, "C", "D", 20)
	_ = f.SetColWidth(SheetFranchises, "F", "F", 40)

	f.SetActiveSheet(0)
	return f, nil
}

// WriteWorkbook renders r and saves it to path.
func WriteWorkbook(path string, r *Report) error {
	f, err := RenderWorkbook(r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
