package wave

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// Type selects the generator's waveform shape.
type Type int

const (
	Sine Type = iota
	Square
	Triangle
	Sawtooth
)

var typeNames = []string{"sine", "square", "triangle", "sawtooth"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// ParseType maps a waveform name to its Type.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return Sine, fmt.Errorf("unknown waveform type %q", name)
}

// Limits of the generator settings.
const (
	MaxAmplitude = 255
	MaxDuty      = 100
)

// Settings configure a Generator.
type Settings struct {
	Type      Type
	Frequency float64 // Hz
	Amplitude uint32  // 0..255, full scale maps to 1.0
	Phase     uint32  // degrees
	Duty      uint32  // percent of the period spent high, square only
	Enabled   bool
}

// DefaultSettings returns the power-on state of the generator: a 1 kHz
// full-scale sine with 50% duty, disabled.
func DefaultSettings() Settings {
	return Settings{
		Type:      Sine,
		Frequency: 1000,
		Amplitude: MaxAmplitude,
		Phase:     0,
		Duty:      50,
	}
}

// normalize clamps amplitude and duty and wraps phase into [0, 360).
func (s Settings) normalize() Settings {
	s.Amplitude = min(s.Amplitude, MaxAmplitude)
	s.Duty = min(s.Duty, MaxDuty)
	s.Phase %= 360
	return s
}

// Generator produces samples at SampleRate. It is not safe for
// concurrent use.
type Generator struct {
	settings Settings
	count    uint32
}

// NewGenerator returns a Generator starting at sample zero.
func NewGenerator(s Settings) (*Generator, error) {
	if s.Frequency < 0 || math.IsNaN(s.Frequency) || math.IsInf(s.Frequency, 0) {
		return nil, fmt.Errorf("invalid frequency %v", s.Frequency)
	}
	if s.Type < Sine || s.Type > Sawtooth {
		return nil, fmt.Errorf("invalid waveform type %v", s.Type)
	}
	return &Generator{settings: s.normalize()}, nil
}

// Settings returns the normalized settings in use.
func (g *Generator) Settings() Settings { return g.settings }

// Count returns the number of samples emitted while enabled.
func (g *Generator) Count() uint32 { return g.count }

// Value returns the generator output at sample index n without
// advancing the generator.
func (g *Generator) Value(n uint32) float64 {
	s := g.settings
	if !s.Enabled {
		return 0
	}

	t := float64(n) / SampleRate
	a := float64(s.Amplitude) / MaxAmplitude
	p := float64(s.Phase) * math.Pi / 180
	theta := 2*math.Pi*s.Frequency*t + p

	switch s.Type {
	case Square:
		d := float64(s.Duty) / MaxDuty
		if math.Mod(theta, 2*math.Pi)/(2*math.Pi) < d {
			return a
		}
		return -a
	case Triangle:
		x := math.Mod(theta, 2*math.Pi) / (2 * math.Pi)
		if x < 0.5 {
			return a * (4*x - 1)
		}
		return a * (3 - 4*x)
	case Sawtooth:
		return a * (math.Mod(theta, 2*math.Pi)/math.Pi - 1)
	default:
		return a * math.Sin(theta)
	}
}

// Next returns the current sample and advances the sample counter. A
// disabled generator returns 0 and does not advance.
func (g *Generator) Next() float64 {
	if !g.settings.Enabled {
		return 0
	}
	v := g.Value(g.count)
	g.count++
	return v
}

// Generate returns the next n samples, none when n <= 0.
func (g *Generator) Generate(n int) []float64 {
	out := make([]float64, max(n, 0))
	for i := range out {
		out[i] = g.Next()
	}
	return out
}

// WriteSamples writes samples to w in the sample file format, one value
// per line.
func WriteSamples(w io.Writer, samples []float64) error {
	bw := bufio.NewWriter(w)
	for _, v := range samples {
		if _, err := bw.WriteString(strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile creates or truncates path and writes samples to it.
func WriteFile(path string, samples []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sample file: %w", err)
	}

	if err := WriteSamples(f, samples); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
