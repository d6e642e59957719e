package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/maorshutman/lm"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/HamletTheHamster/waveplot/internal/wave"
)

var (
	// ErrTooFewSamples is returned when a waveform is too short to fit.
	ErrTooFewSamples = errors.New("too few samples to fit")

	// ErrNoOscillation is returned when a waveform does not cross its
	// mean at least twice, so no frequency can be estimated.
	ErrNoOscillation = errors.New("waveform does not oscillate")
)

const minFitSamples = 4

// Fit is a least-squares fit of y = Amplitude·sin(2π·Frequency·t + Phase) + Offset.
type Fit struct {
	Amplitude float64
	Frequency float64 // Hz
	Phase     float64 // radians, in (-π, π]
	Offset    float64
	Residual  float64 // RMS of fit minus data
}

// Eval returns the fitted value at time t.
func (f Fit) Eval(t float64) float64 {
	return f.Amplitude*math.Sin(2*math.Pi*f.Frequency*t+f.Phase) + f.Offset
}

// Curve returns the fit evaluated at every point of ts.
func (f Fit) Curve(ts []float64) []float64 {
	out := make([]float64, len(ts))
	for i, t := range ts {
		out[i] = f.Eval(t)
	}
	return out
}

// FitSine fits a single sinusoid to w with Levenberg-Marquardt. The
// initial frequency comes from the mean crossings and the initial
// amplitude and phase from a quadrature projection at that frequency.
func FitSine(w *wave.Waveform) (Fit, error) {
	if w.Len() < minFitSamples {
		return Fit{}, fmt.Errorf("%w: have %d, need %d", ErrTooFewSamples, w.Len(), minFitSamples)
	}

	ts, ys := w.Time, w.Samples
	offset := stat.Mean(ys, nil)

	freq, err := estimateFrequency(ts, ys, offset)
	if err != nil {
		return Fit{}, err
	}
	amp, phase := project(ts, ys, offset, freq)

	f := func(dst, guess []float64) {
		amp, freq, phase, offset := guess[0], guess[1], guess[2], guess[3]

		for i := range ts {
			dst[i] = amp*math.Sin(2*math.Pi*freq*ts[i]+phase) + offset - ys[i]
		}
	}

	jacobian := lm.NumJac{Func: f}

	// Solve for fit
	toBeSolved := lm.LMProblem{
		Dim:        4,
		Size:       len(ts),
		Func:       f,
		Jac:        jacobian.Jac,
		InitParams: []float64{amp, freq, phase, offset},
		Tau:        1e-6,
		Eps1:       1e-8,
		Eps2:       1e-8,
	}

	results, err := lm.LM(toBeSolved, &lm.Settings{Iterations: 100, ObjectiveTol: 1e-16})
	if err != nil {
		return Fit{}, fmt.Errorf("sine fit: %w", err)
	}

	fit := Fit{
		Amplitude: results.X[0],
		Frequency: results.X[1],
		Phase:     results.X[2],
		Offset:    results.X[3],
	}
	if fit.Amplitude < 0 {
		fit.Amplitude = -fit.Amplitude
		fit.Phase += math.Pi
	}
	fit.Phase = wrapPhase(fit.Phase)

	resid := fit.Curve(ts)
	floats.Sub(resid, ys)
	fit.Residual = floats.Norm(resid, 2) / math.Sqrt(float64(len(ts)))

	log.Debug().
		Floats64("initial", []float64{amp, freq, phase, offset}).
		Floats64("solved", results.X).
		Msg("sine fit")

	return fit, nil
}

// estimateFrequency measures the span between the first and last
// crossing of offset, interpolating each crossing time linearly.
func estimateFrequency(ts, ys []float64, offset float64) (float64, error) {
	var first, last float64
	crossings := 0

	for i := 1; i < len(ys); i++ {
		a, b := ys[i-1]-offset, ys[i]-offset
		if (a < 0) == (b < 0) {
			continue
		}
		tc := ts[i-1] + (ts[i]-ts[i-1])*a/(a-b)
		if crossings == 0 {
			first = tc
		}
		last = tc
		crossings++
	}

	if crossings < 2 || last <= first {
		return 0, ErrNoOscillation
	}
	return float64(crossings-1) / (2 * (last - first)), nil
}

// project returns the amplitude and phase of the component of ys at freq.
func project(ts, ys []float64, offset, freq float64) (float64, float64) {
	var s, c float64
	for i, t := range ts {
		w := 2 * math.Pi * freq * t
		y := ys[i] - offset
		s += y * math.Sin(w)
		c += y * math.Cos(w)
	}
	n := float64(len(ts))
	s, c = 2*s/n, 2*c/n
	return math.Hypot(s, c), math.Atan2(c, s)
}

func wrapPhase(p float64) float64 {
	p = math.Mod(p, 2*math.Pi)
	if p <= -math.Pi {
		p += 2 * math.Pi
	} else if p > math.Pi {
		p -= 2 * math.Pi
	}
	return p
}
