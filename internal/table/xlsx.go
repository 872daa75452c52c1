package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSXFile reads one sheet of a workbook into a Table.
// The first non-blank row after opts.SkipRows is the header.
func ReadXLSXFile(path string, opts Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	return ReadWorkbook(f, opts)
}

// ReadWorkbook reads one sheet of an open workbook into a Table.
func ReadWorkbook(f *excelize.File, opts Options) (*Table, error) {
	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoHeader
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	if opts.SkipRows >= len(rows) {
		return nil, ErrNoHeader
	}
	rows = rows[opts.SkipRows:]

	start := 0
	for start < len(rows) && isBlankRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return nil, ErrNoHeader
	}

	t := &Table{Header: normalizeHeader(rows[start])}
	for _, row := range rows[start+1:] {
		if isBlankRow(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
