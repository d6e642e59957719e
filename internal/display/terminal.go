package display

import (
	"context"
	"fmt"
	"io"

	"github.com/guptarohit/asciigraph"

	"github.com/HamletTheHamster/waveplot/internal/render"
	"github.com/HamletTheHamster/waveplot/internal/wave"
)

// Terminal chart size in text rows and columns.
const (
	DefaultTermHeight = 15
	DefaultTermWidth  = 100
)

// Terminal prints the waveform as an ASCII chart.
type Terminal struct {
	Out           io.Writer
	Width, Height int
}

func (d *Terminal) Show(_ context.Context, w *wave.Waveform, series []render.Series) error {
	height, width := d.Height, d.Width
	if height <= 0 {
		height = DefaultTermHeight
	}
	if width <= 0 {
		width = DefaultTermWidth
	}

	data := [][]float64{w.Samples}
	for _, s := range series {
		data = append(data, s.Y)
	}

	chart := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.Caption(caption(w)),
	)

	_, err := fmt.Fprintln(d.Out, chart)
	return err
}

func caption(w *wave.Waveform) string {
	end := 0.0
	if n := len(w.Time); n > 0 {
		end = w.Time[n-1]
	}
	return fmt.Sprintf("%s: %s vs %s, 0 to %.3g s", render.Title, render.YLabel, render.XLabel, end)
}
