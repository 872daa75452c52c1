package reporting

import (
	"math"
	"testing"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{1234567.891, "1234567.89"},
		{2923706026, "2923706026.00"},
		{-12.5, "-12.50"},
		{0.005, "0.01"},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDollars(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{1000, "$1,000"},
		{1234567.6, "$1,234,568"},
		{2923706026, "$2,923,706,026"},
		{-1500, "-$1,500"},
		{-0.2, "$0"},
	}
	for _, tt := range tests {
		if got := Dollars(tt.in); got != tt.want {
			t.Errorf("Dollars(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBillions(t *testing.T) {
	if got := Billions(2923706026); got != "$2.92B" {
		t.Errorf("Billions = %q, want $2.92B", got)
	}
	if got := Billions(0); got != "$0.00B" {
		t.Errorf("Billions(0) = %q, want $0.00B", got)
	}
}

func TestRatio(t *testing.T) {
	if got := Ratio(100.0 / 70); got != "1.428571" {
		t.Errorf("Ratio = %q, want 1.428571", got)
	}
}

func TestNonFinite(t *testing.T) {
	if got := Money(math.Inf(1)); got != "+Inf" {
		t.Errorf("Money(+Inf) = %q", got)
	}
	if got := Dollars(math.NaN()); got != "NaN" {
		t.Errorf("Dollars(NaN) = %q", got)
	}
}
