package reporting

import (
	"bytes"
	"fmt"
	"image/color"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"box-office-lab/internal/domain"
)

// Palette maps a franchise label to a fill colour.
type Palette interface {
	Color(label string) string
}

// Chart geometry.
const (
	chartWidth = 14 * vg.Inch
	rowHeight  = 18 // points per bar
	chartFrame = 160
	barWidth   = 13
)

// NewChart builds a horizontal bar chart of the report's top movies by
// adjusted worldwide revenue, one colour per franchise. Rank 1 is on top.
func NewChart(r *Report, palette Palette) (*plot.Plot, error) {
	top := r.Top()

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Top %d Movies by Inflation-Adjusted Revenue", len(top))
	p.X.Label.Text = fmt.Sprintf("Revenue (Billions USD, %d dollars)\nData Sources: %s | %s CPI (%s)",
		r.Run.BaseYear, filepath.Base(r.Run.RevenueSource), filepath.Base(r.Run.CpiSource), r.Run.Region)
	p.X.Min = 0
	p.X.Tick.Marker = billionTicks{}
	p.Legend.Top = false
	p.Legend.Left = false

	n := len(top)
	names := make([]string, n)
	bars := make(map[string]*plotter.BarChart)
	labels := plotter.XYLabels{
		XYs:    make(plotter.XYs, 0, n),
		Labels: make([]string, 0, n),
	}

	maxValue := 0.0
	for i, m := range top {
		pos := n - 1 - i
		names[pos] = fmt.Sprintf("%d. %s (%d)", m.AdjustedRank, m.Title, m.Year)

		bar, err := plotter.NewBarChart(plotter.Values{m.WorldwideAdjusted}, vg.Points(barWidth))
		if err != nil {
			return nil, fmt.Errorf("bar %q: %w", m.Title, err)
		}
		bar.Horizontal = true
		bar.XMin = float64(pos)
		bar.Color = parseHexColor(palette.Color(franchiseOf(m)))
		bar.LineStyle.Width = 0
		p.Add(bar)

		if _, ok := bars[franchiseOf(m)]; !ok {
			bars[franchiseOf(m)] = bar
		}
		labels.XYs = append(labels.XYs, plotter.XY{X: m.WorldwideAdjusted, Y: float64(pos)})
		labels.Labels = append(labels.Labels, Billions(m.WorldwideAdjusted))
		if m.WorldwideAdjusted > maxValue {
			maxValue = m.WorldwideAdjusted
		}
	}

	if n > 0 {
		values, err := plotter.NewLabels(labels)
		if err != nil {
			return nil, fmt.Errorf("value labels: %w", err)
		}
		values.Offset = vg.Point{X: vg.Points(4), Y: -vg.Points(4)}
		p.Add(values)
		p.NominalY(names...)
	}

	p.X.Max = maxValue * 1.15
	if p.X.Max <= 0 {
		p.X.Max = 1
	}

	for _, name := range legendLabels(top) {
		p.Legend.Add(name, bars[name])
	}
	return p, nil
}

// RenderChart encodes the chart as format (FormatSVG or FormatPNG).
func RenderChart(r *Report, palette Palette, format string) ([]byte, error) {
	p, err := NewChart(r, palette)
	if err != nil {
		return nil, err
	}

	height := vg.Points(float64(chartFrame + rowHeight*len(r.Top())))
	wt, err := p.WriterTo(chartWidth, height, format)
	if err != nil {
		return nil, fmt.Errorf("chart %s writer: %w", format, err)
	}

	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode chart %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// billionTicks labels the revenue axis in billions of dollars.
type billionTicks struct{}

func (billionTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = Billions(ticks[i].Value)
		}
	}
	return ticks
}

// parseHexColor parses "#RRGGBB". Anything else is grey.
func parseHexColor(s string) color.Color {
	grey := color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return grey
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return grey
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// legendLabels returns the distinct franchises of records, alphabetical
// with FranchiseOther last.
func legendLabels(records []*domain.AdjustedRevenueRecord) []string {
	seen := make(map[string]struct{})
	var labels []string
	for _, m := range records {
		name := franchiseOf(m)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		labels = append(labels, name)
	}
	sort.Slice(labels, func(i, j int) bool {
		oi, oj := labels[i] == domain.FranchiseOther, labels[j] == domain.FranchiseOther
		if oi != oj {
			return oj
		}
		return labels[i] < labels[j]
	})
	return labels
}

func franchiseOf(m *domain.AdjustedRevenueRecord) string {
	if m.Franchise == "" {
		return domain.FranchiseOther
	}
	return m.Franchise
}
