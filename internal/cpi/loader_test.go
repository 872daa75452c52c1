package cpi

import (
	"errors"
	"testing"

	"box-office-lab/internal/domain"
	"box-office-lab/internal/table"
)

func cpiTable(rows ...[]string) *table.Table {
	return &table.Table{
		Header: []string{"Country Name", "Country Code", "Indicator Name", "2019", "2020", "2021", "2022", ""},
		Rows:   rows,
	}
}

func TestLoadSeries_ExactMatch(t *testing.T) {
	tbl := cpiTable(
		[]string{"Arab World", "ARB", "CPI", "9.9", "9.9", "9.9", "9.9"},
		[]string{"World", "WLD", "CPI", "2.1", "1.9", "3.5", "8.0"},
	)

	series, err := LoadSeries(tbl, LoaderConfig{})
	if err != nil {
		t.Fatalf("LoadSeries failed: %v", err)
	}

	if series.Len() != 4 {
		t.Fatalf("expected 4 years, got %d", series.Len())
	}
	v, ok := series.Value(2022)
	if !ok || v != 8.0 {
		t.Errorf("expected 2022 = 8.0, got %v (ok=%v)", v, ok)
	}
}

func TestLoadSeries_SubstringFallback(t *testing.T) {
	tbl := cpiTable(
		[]string{"Aruba", "ABW", "CPI", "1", "1", "1", "1"},
		[]string{"WORLD (total)", "WLD", "CPI", "2", "2", "2", "2"},
	)

	series, err := LoadSeries(tbl, LoaderConfig{Region: "World"})
	if err != nil {
		t.Fatalf("LoadSeries failed: %v", err)
	}
	v, _ := series.Value(2019)
	if v != 2 {
		t.Errorf("expected substring match row, got 2019 = %v", v)
	}
}

func TestLoadSeries_RegionNotFound(t *testing.T) {
	tbl := cpiTable([]string{"Aruba", "ABW", "CPI", "1", "1", "1", "1"})

	_, err := LoadSeries(tbl, LoaderConfig{Region: "World"})

	var rnf *domain.RegionNotFoundError
	if !errors.As(err, &rnf) {
		t.Fatalf("expected RegionNotFoundError, got %v", err)
	}
	if rnf.Region != "World" {
		t.Errorf("expected region World in error, got %q", rnf.Region)
	}
}

func TestLoadSeries_MissingValuesAreAbsent(t *testing.T) {
	tbl := cpiTable([]string{"World", "WLD", "CPI", "", "..", "3.5", "NaN"})

	series, err := LoadSeries(tbl, LoaderConfig{})
	if err != nil {
		t.Fatalf("LoadSeries failed: %v", err)
	}

	if series.Len() != 1 {
		t.Fatalf("expected only 2021 present, got %d years: %v", series.Len(), series.Years())
	}
	if series.Has(2019) || series.Has(2020) || series.Has(2022) {
		t.Error("missing years must be absent, not defaulted")
	}
}

func TestLoadSeries_ShortRowIsMissing(t *testing.T) {
	tbl := cpiTable([]string{"World", "WLD", "CPI", "1.5"})

	series, err := LoadSeries(tbl, LoaderConfig{})
	if err != nil {
		t.Fatalf("LoadSeries failed: %v", err)
	}
	if got := series.Years(); len(got) != 1 || got[0] != 2019 {
		t.Errorf("expected [2019], got %v", got)
	}
}

func TestLoadSeries_InvalidValue(t *testing.T) {
	tbl := cpiTable([]string{"World", "WLD", "CPI", "abc", "1", "1", "1"})

	_, err := LoadSeries(tbl, LoaderConfig{})

	var inv *domain.InvalidValueError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvalidValueError, got %v", err)
	}
	if inv.Column != "2019" {
		t.Errorf("expected column 2019, got %s", inv.Column)
	}
}

func TestLoadSeries_InfiniteValue(t *testing.T) {
	for _, raw := range []string{"Inf", "-Inf", "+Infinity", "1e400"} {
		tbl := cpiTable([]string{"World", "WLD", "CPI", "2", raw, "3", "1"})

		_, err := LoadSeries(tbl, LoaderConfig{})

		var inv *domain.InvalidValueError
		if !errors.As(err, &inv) {
			t.Fatalf("%s: expected InvalidValueError, got %v", raw, err)
		}
		if inv.Column != "2020" || inv.Value != raw {
			t.Errorf("%s: expected column 2020, got %s (%q)", raw, inv.Column, inv.Value)
		}
	}
}

func TestLoadSeries_MissingRegionColumn(t *testing.T) {
	tbl := &table.Table{Header: []string{"Name", "2020"}, Rows: [][]string{{"World", "1"}}}

	if _, err := LoadSeries(tbl, LoaderConfig{}); err == nil {
		t.Fatal("expected error for missing region column")
	}

	series, err := LoadSeries(tbl, LoaderConfig{RegionColumn: "Name"})
	if err != nil {
		t.Fatalf("LoadSeries with custom column failed: %v", err)
	}
	if series.Len() != 1 {
		t.Errorf("expected 1 year, got %d", series.Len())
	}
}

func TestParseYearHeader(t *testing.T) {
	tests := []struct {
		header string
		want   int
		ok     bool
	}{
		{"2020", 2020, true},
		{"1960", 1960, true},
		{"Country Code", 0, false},
		{"", 0, false},
		{"2020.0", 0, false},
		{"-2020", 0, false},
		{" 2020", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, ok := parseYearHeader(tt.header)
			if ok != tt.ok || got != tt.want {
				t.Errorf("parseYearHeader(%q) = (%d, %v), want (%d, %v)", tt.header, got, ok, tt.want, tt.ok)
			}
		})
	}
}
