// Package app runs the waveplot commands: plotting a sample file and
// generating one.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot/vg"

	"github.com/HamletTheHamster/waveplot/internal/analysis"
	"github.com/HamletTheHamster/waveplot/internal/config"
	"github.com/HamletTheHamster/waveplot/internal/display"
	"github.com/HamletTheHamster/waveplot/internal/render"
	"github.com/HamletTheHamster/waveplot/internal/wave"
)

// Result is what a plot run loaded and derived.
type Result struct {
	Waveform *wave.Waveform
	Summary  *analysis.Summary
	Fit      *analysis.Fit
}

// PlotWave loads cfg.Input, optionally summarizes and fits it, saves the
// figure when cfg.Output is set and finally hands it to d, blocking
// until d returns.
func PlotWave(ctx context.Context, cfg *config.Config, d display.Displayer) (*Result, error) {
	w, err := wave.ReadFile(cfg.Input)
	if err != nil {
		return nil, err
	}
	res := &Result{Waveform: w}

	log.Info().
		Str("file", cfg.Input).
		Int("samples", w.Len()).
		Float64("duration_s", w.Duration()).
		Msg("waveform loaded")

	if cfg.Stats {
		s := analysis.Summarize(w)
		res.Summary = &s
		log.Info().
			Int("count", s.Count).
			Float64("min", s.Min).
			Float64("max", s.Max).
			Float64("mean", s.Mean).
			Float64("stddev", s.StdDev).
			Float64("rms", s.RMS).
			Float64("peak", s.Peak).
			Float64("peak_to_peak", s.PeakToPeak).
			Int("zero_crossings", s.ZeroCrossings).
			Msg("summary")
	}

	var series []render.Series
	if cfg.Fit {
		fit, err := analysis.FitSine(w)
		switch {
		case errors.Is(err, analysis.ErrTooFewSamples), errors.Is(err, analysis.ErrNoOscillation):
			log.Warn().Err(err).Msg("skipping sine fit")
		case err != nil:
			return nil, err
		default:
			res.Fit = &fit
			series = append(series, render.Series{Name: "sine fit", X: w.Time, Y: fit.Curve(w.Time)})
			log.Info().
				Float64("amplitude", fit.Amplitude).
				Float64("frequency_hz", fit.Frequency).
				Float64("phase_rad", fit.Phase).
				Float64("offset", fit.Offset).
				Float64("residual_rms", fit.Residual).
				Msg("sine fit")
		}
	}

	if cfg.Output != "" {
		opts := render.Options{
			Width:  vg.Length(cfg.Width) * vg.Inch,
			Height: vg.Length(cfg.Height) * vg.Inch,
			Series: series,
		}
		fig, err := render.New(w, opts)
		if err != nil {
			return nil, err
		}
		if err := fig.Save(cfg.Output); err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.Output).Msg("plot saved")
	}

	if err := d.Show(ctx, w, series); err != nil {
		return nil, fmt.Errorf("display: %w", err)
	}
	return res, nil
}

// Generate writes cfg.Samples generator samples to cfg.Output.
func Generate(cfg *config.GenerateConfig) ([]float64, error) {
	s, err := cfg.Settings()
	if err != nil {
		return nil, err
	}
	g, err := wave.NewGenerator(s)
	if err != nil {
		return nil, err
	}

	samples := g.Generate(cfg.Samples)
	if err := wave.WriteFile(cfg.Output, samples); err != nil {
		return nil, err
	}

	s = g.Settings()
	log.Info().
		Str("file", cfg.Output).
		Stringer("type", s.Type).
		Float64("frequency_hz", s.Frequency).
		Uint32("amplitude", s.Amplitude).
		Uint32("phase_deg", s.Phase).
		Uint32("duty_pct", s.Duty).
		Int("samples", len(samples)).
		Msg("waveform generated")

	return samples, nil
}
