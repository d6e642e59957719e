//go:build gnuplot

package gnuplot

import (
	"context"
	"fmt"
	"io"

	"github.com/Arafatk/glot"
	"github.com/rs/zerolog/log"

	"github.com/HamletTheHamster/waveplot/internal/display"
	"github.com/HamletTheHamster/waveplot/internal/render"
	"github.com/HamletTheHamster/waveplot/internal/wave"
)

func init() {
	display.Register(display.ModeWindow, func(in io.Reader, out io.Writer) display.Displayer {
		return &Window{In: in, Out: out}
	})
}

// Window draws the waveform in a gnuplot window and keeps it open until
// a line is read from In.
type Window struct {
	In    io.Reader
	Out   io.Writer
	Debug bool // echo gnuplot commands
}

func (d *Window) Show(ctx context.Context, w *wave.Waveform, series []render.Series) error {
	dimensions := 2
	persist := false
	plot, err := glot.NewPlot(dimensions, persist, d.Debug)
	if err != nil {
		return fmt.Errorf("start gnuplot: %w", err)
	}
	defer plot.Close()

	// 12x6 figure
	if err := plot.Cmd("set size ratio 0.5"); err != nil {
		return err
	}
	if err := plot.Cmd("set grid"); err != nil {
		return err
	}
	if err := plot.SetTitle(render.Title); err != nil {
		return err
	}
	if err := plot.SetXLabel(render.XLabel); err != nil {
		return err
	}
	if err := plot.SetYLabel(render.YLabel); err != nil {
		return err
	}

	if err := plot.AddPointGroup("samples", "lines", w.XY()); err != nil {
		return fmt.Errorf("plot samples: %w", err)
	}
	for _, s := range series {
		if err := plot.AddPointGroup(s.Name, "lines", [][]float64{s.X, s.Y}); err != nil {
			return fmt.Errorf("plot %s: %w", s.Name, err)
		}
	}

	log.Debug().Int("samples", w.Len()).Int("series", len(series)).Msg("gnuplot window open")

	if d.Out != nil {
		fmt.Fprintln(d.Out, "Press Enter to close the plot window.")
	}
	return display.WaitForEnter(ctx, d.In)
}
