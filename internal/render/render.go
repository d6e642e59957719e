// Package render draws waveforms as gonum line plots and exports them
// to image and vector formats.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/HamletTheHamster/waveplot/internal/wave"
)

// Labels of the waveform figure.
const (
	Title  = "Wave Generator Output"
	XLabel = "Time (s)"
	YLabel = "Amplitude"
)

// Figure size.
const (
	DefaultWidth  = 12 * vg.Inch
	DefaultHeight = 6 * vg.Inch
)

// ErrUnsupportedFormat is returned for export formats gonum cannot write.
var ErrUnsupportedFormat = errors.New("unsupported plot format")

var formats = []string{"png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff"}

// Series is an extra line drawn over the waveform.
type Series struct {
	Name string
	X, Y []float64
}

// Options control the figure.
type Options struct {
	Width, Height vg.Length
	Series        []Series
}

// DefaultOptions returns the 12x6 inch figure with no extra series.
func DefaultOptions() Options {
	return Options{Width: DefaultWidth, Height: DefaultHeight}
}

// Figure is a rendered waveform plot ready for export.
type Figure struct {
	Plot          *plot.Plot
	Width, Height vg.Length
}

// New builds the waveform figure: one line of (time, amplitude), a
// background grid, axis labels and the title.
func New(w *wave.Waveform, opts Options) (*Figure, error) {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}

	p := plot.New()
	p.Title.Text = Title
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel
	p.Add(plotter.NewGrid())

	l, err := plotter.NewLine(buildData(w.XY()))
	if err != nil {
		return nil, fmt.Errorf("waveform line: %w", err)
	}
	l.LineStyle.Width = vg.Points(1)
	l.LineStyle.Color = palette(0)
	p.Add(l)

	for i, s := range opts.Series {
		if len(s.X) != len(s.Y) {
			return nil, fmt.Errorf("series %q: %d x values, %d y values", s.Name, len(s.X), len(s.Y))
		}

		sl, err := plotter.NewLine(buildData([][]float64{s.X, s.Y}))
		if err != nil {
			return nil, fmt.Errorf("series %q: %w", s.Name, err)
		}
		sl.LineStyle.Width = vg.Points(1.5)
		sl.LineStyle.Color = palette(i + 1)
		sl.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		p.Add(sl)

		// Legend
		if i == 0 {
			p.Legend.Add("samples", l)
			p.Legend.Top = true
		}
		p.Legend.Add(s.Name, sl)
	}

	return &Figure{Plot: p, Width: opts.Width, Height: opts.Height}, nil
}

// Encode writes the figure to out in format (png, svg, pdf, ...).
func (f *Figure) Encode(out io.Writer, format string) error {
	format = strings.ToLower(format)
	if !slices.Contains(formats, format) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	wt, err := f.Plot.WriterTo(f.Width, f.Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(out)
	return err
}

// Save writes the figure to path, choosing the format from its extension.
func (f *Figure) Save(path string) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}

	// Make the output folder if it doesn't already exist
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.Encode(out, format); err != nil {
		out.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	log.Debug().Str("path", path).Str("format", format).Msg("plot saved")
	return nil
}

// FormatOf returns the export format implied by path's extension.
func FormatOf(path string) (string, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !slices.Contains(formats, format) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return format, nil
}

func buildData(
	data [][]float64,
) plotter.XYs {
	xy := make(plotter.XYs, len(data[0]))

	for i := range xy {
		xy[i].X = data[0][i]
		xy[i].Y = data[1][i]
	}

	return xy
}

func palette(brush int) color.RGBA {
	col := []color.RGBA{
		{R: 27, G: 170, B: 139, A: 255},
		{R: 201, G: 104, B: 146, A: 255},
		{R: 99, G: 124, B: 198, A: 255},
		{R: 194, G: 140, B: 86, A: 255},
	}

	return col[brush%len(col)]
}
