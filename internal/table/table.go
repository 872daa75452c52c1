// Package table reads whole tabular sources (CSV or XLSX) into memory.
package table

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNoHeader is returned when a source has no header row.
var ErrNoHeader = errors.New("table has no header row")

// Table is a header plus string cells. Rows may be shorter than Header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of the header equal to name, or -1.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns row[col], or "" when the row is too short.
func (t *Table) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// Options control how a source is read.
type Options struct {
	// SkipRows is the number of leading CSV lines before the header.
	SkipRows int
	// Sheet selects an XLSX sheet by name; the first sheet when empty.
	Sheet string
}

// ReadFile reads path as CSV or XLSX depending on its extension.
func ReadFile(ctx context.Context, path string, opts Options) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadXLSXFile(path, opts)
	case ".csv", ".txt", "":
		return ReadCSVFile(path, opts)
	default:
		return nil, fmt.Errorf("unsupported table format %q", filepath.Ext(path))
	}
}

// normalizeHeader trims whitespace and a leading UTF-8 BOM.
func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}
