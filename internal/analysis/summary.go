// Package analysis computes summary statistics and sinusoid fits of
// waveforms.
package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/HamletTheHamster/waveplot/internal/wave"
)

// Summary holds time-domain statistics of a waveform.
type Summary struct {
	Count         int
	Duration      float64 // seconds
	Min           float64
	Max           float64
	Mean          float64
	StdDev        float64 // population
	RMS           float64
	Peak          float64 // max(|min|, |max|)
	PeakToPeak    float64
	ZeroCrossings int
}

// Summarize computes the Summary of w. An empty waveform yields a zero
// Summary.
func Summarize(w *wave.Waveform) Summary {
	x := w.Samples
	if len(x) == 0 {
		return Summary{}
	}

	mean, std := stat.PopMeanStdDev(x, nil)
	lo, hi := floats.Min(x), floats.Max(x)

	return Summary{
		Count:         len(x),
		Duration:      w.Duration(),
		Min:           lo,
		Max:           hi,
		Mean:          mean,
		StdDev:        std,
		RMS:           floats.Norm(x, 2) / math.Sqrt(float64(len(x))),
		Peak:          math.Max(math.Abs(lo), math.Abs(hi)),
		PeakToPeak:    hi - lo,
		ZeroCrossings: zeroCrossings(x),
	}
}

// zeroCrossings counts strict sign changes between adjacent samples.
func zeroCrossings(x []float64) int {
	n := 0
	for i := 1; i < len(x); i++ {
		if x[i-1]*x[i] < 0 {
			n++
		}
	}
	return n
}
