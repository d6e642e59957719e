// Package wave reads waveform sample files and derives their time axis.
package wave

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// SampleRate is the fixed acquisition rate of every sample file, in Hz.
const SampleRate = 1000.0

// MaxLineLength is the longest sample line Read accepts, in bytes.
const MaxLineLength = 1 << 20

// ErrNoSamples is returned when a sample file holds no non-blank lines.
var ErrNoSamples = errors.New("no samples")

// ParseError reports the first line that is not a finite float literal.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: cannot parse %q as a sample: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var errNotFinite = errors.New("value is not finite")

// Waveform is a sample sequence with its time axis. Samples and Time
// always have the same length.
type Waveform struct {
	Samples []float64
	Time    []float64
}

// New builds a Waveform from samples, deriving the time axis.
func New(samples []float64) *Waveform {
	return &Waveform{
		Samples: samples,
		Time:    TimeAxis(len(samples)),
	}
}

// Len returns the number of samples.
func (w *Waveform) Len() int { return len(w.Samples) }

// Duration returns the elapsed time covered by the samples in seconds.
func (w *Waveform) Duration() float64 {
	return float64(w.Len()) / SampleRate
}

// XY returns the waveform as the {x, y} pair used by the plotting code.
func (w *Waveform) XY() [][]float64 {
	return [][]float64{w.Time, w.Samples}
}

// TimeAxis returns n timestamps, one per sample, at SampleRate.
func TimeAxis(n int) []float64 {
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) / SampleRate
	}
	return t
}

// ReadFile loads a sample file. The file is closed before ReadFile
// returns, on success and on failure.
func ReadFile(path string) (*Waveform, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sample file: %w", err)
	}
	defer f.Close()

	w, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	log.Debug().Str("path", path).Int("samples", w.Len()).Msg("samples loaded")
	return w, nil
}

// Read parses one sample per line from r. Blank lines are skipped; the
// first line that does not parse, or is longer than MaxLineLength, aborts
// the read with a *ParseError.
func Read(r io.Reader) (*Waveform, error) {
	var samples []float64

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" {
			continue
		}

		v, err := strconv.ParseFloat(text, 64)
		if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
			err = errNotFinite
		}
		if err != nil {
			return nil, &ParseError{Line: line, Text: text, Err: err}
		}
		samples = append(samples, v)
	}
	if err := s.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{Line: line + 1, Err: err}
		}
		return nil, err
	}

	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	return New(samples), nil
}
