package reporting

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Output formats.
const (
	FormatCSV      = "csv"
	FormatIndexCSV = "index_csv"
	FormatMarkdown = "markdown"
	FormatXLSX     = "xlsx"
	FormatSVG      = "svg"
	FormatPNG      = "png"
)

// Output is one written report file.
type Output struct {
	Format string
	Path   string
}

// WriteAll writes every report format into dir, creating it if needed.
// It stops at the first failure and returns the files written so far.
func WriteAll(dir string, r *Report, palette Palette) ([]Output, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	base := r.Run.BaseYear
	var written []Output

	var buf bytes.Buffer
	if err := RenderCSV(&buf, r.Rankings); err != nil {
		return written, fmt.Errorf("render adjusted csv: %w", err)
	}
	path := filepath.Join(dir, AdjustedCSVName(base))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return written, fmt.Errorf("write %s: %w", path, err)
	}
	written = append(written, Output{Format: FormatCSV, Path: path})

	buf.Reset()
	if err := RenderIndexCSV(&buf, r.Index); err != nil {
		return written, fmt.Errorf("render index csv: %w", err)
	}
	path = filepath.Join(dir, IndexCSVName(base))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return written, fmt.Errorf("write %s: %w", path, err)
	}
	written = append(written, Output{Format: FormatIndexCSV, Path: path})

	path = filepath.Join(dir, MarkdownName)
	if err := os.WriteFile(path, []byte(RenderMarkdown(r)), 0o644); err != nil {
		return written, fmt.Errorf("write %s: %w", path, err)
	}
	written = append(written, Output{Format: FormatMarkdown, Path: path})

	path = filepath.Join(dir, WorkbookName(base))
	if err := WriteWorkbook(path, r); err != nil {
		return written, err
	}
	written = append(written, Output{Format: FormatXLSX, Path: path})

	for _, c := range []struct{ format, name string }{
		{FormatSVG, ChartName},
		{FormatPNG, ChartPNGName},
	} {
		img, err := RenderChart(r, palette, c.format)
		if err != nil {
			return written, err
		}
		path = filepath.Join(dir, c.name)
		if err := os.WriteFile(path, img, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, Output{Format: c.format, Path: path})
	}

	return written, nil
}
