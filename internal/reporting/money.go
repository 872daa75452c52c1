package reporting

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money renders v with exactly two decimals and no grouping, for CSV.
func Money(v float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Ratio renders an index value or factor with six decimals.
func Ratio(v float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(6)
}

// Dollars renders v rounded to whole dollars with thousands separators: "$1,234,567".
func Dollars(v float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := decimal.NewFromFloat(v).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if s == "0" {
		neg = false
	}

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	sb.WriteByte('$')
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(ch)
	}
	return sb.String()
}

// Billions renders v in billions with two decimals: "$2.92B".
func Billions(v float64) string {
	if !finite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "$" + decimal.NewFromFloat(v).Div(decimal.New(1, 9)).StringFixed(2) + "B"
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
