package wave

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, typ Type, freq float64) *Generator {
	t.Helper()
	s := DefaultSettings()
	s.Type = typ
	s.Frequency = freq
	s.Enabled = true
	g, err := NewGenerator(s)
	require.NoError(t, err)
	return g
}

func TestGeneratorSine(t *testing.T) {
	g := newTestGenerator(t, Sine, 250)
	assert.InDeltaSlice(t, []float64{0, 1, 0, -1, 0}, g.Generate(5), 1e-9)
	assert.Equal(t, uint32(5), g.Count())
}

func TestGeneratorGenerateNonPositive(t *testing.T) {
	g := newTestGenerator(t, Sine, 250)
	assert.Empty(t, g.Generate(0))
	assert.Empty(t, g.Generate(-3))
	assert.Zero(t, g.Count())
}

func TestGeneratorSquare(t *testing.T) {
	g := newTestGenerator(t, Square, 250)
	assert.Equal(t, 1.0, g.Value(0))
	assert.Equal(t, 1.0, g.Value(1))
	assert.Equal(t, -1.0, g.Value(3))

	s := g.Settings()
	s.Duty = 10
	g, err := NewGenerator(s)
	require.NoError(t, err)
	assert.Equal(t, 1.0, g.Value(0))
	assert.Equal(t, -1.0, g.Value(1))
}

func TestGeneratorTriangle(t *testing.T) {
	g := newTestGenerator(t, Triangle, 250)
	assert.InDeltaSlice(t, []float64{-1, 0, 1, 0}, g.Generate(4), 1e-9)
}

func TestGeneratorSawtooth(t *testing.T) {
	g := newTestGenerator(t, Sawtooth, 250)
	assert.InDeltaSlice(t, []float64{-1, -0.5, 0, 0.5}, g.Generate(4), 1e-9)
}

func TestGeneratorAmplitudeAndPhase(t *testing.T) {
	s := DefaultSettings()
	s.Frequency = 1
	s.Amplitude = 51
	s.Phase = 90
	s.Enabled = true
	g, err := NewGenerator(s)
	require.NoError(t, err)

	assert.InDelta(t, 0.2, g.Value(0), 1e-12)
	assert.InDelta(t, -0.2, g.Value(500), 1e-9)
}

func TestGeneratorDisabled(t *testing.T) {
	g, err := NewGenerator(DefaultSettings())
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 0}, g.Generate(3))
	assert.Equal(t, uint32(0), g.Count())
}

func TestGeneratorNormalizesSettings(t *testing.T) {
	g, err := NewGenerator(Settings{Type: Square, Frequency: 5, Amplitude: 300, Phase: 370, Duty: 150})
	require.NoError(t, err)

	s := g.Settings()
	assert.Equal(t, uint32(MaxAmplitude), s.Amplitude)
	assert.Equal(t, uint32(10), s.Phase)
	assert.Equal(t, uint32(MaxDuty), s.Duty)
}

func TestNewGeneratorRejectsInvalid(t *testing.T) {
	_, err := NewGenerator(Settings{Frequency: -1})
	assert.Error(t, err)

	_, err = NewGenerator(Settings{Type: Type(9), Frequency: 1})
	assert.Error(t, err)
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{Sine, Square, Triangle, Sawtooth} {
		got, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}

	_, err := ParseType("pulse")
	assert.Error(t, err)
	assert.Equal(t, "Type(7)", Type(7).String())
}

func TestWriteSamplesReadsBack(t *testing.T) {
	g := newTestGenerator(t, Sine, 7)
	samples := g.Generate(300)

	var buf bytes.Buffer
	require.NoError(t, WriteSamples(&buf, samples))
	assert.Equal(t, 300, bytes.Count(buf.Bytes(), []byte("\n")))

	w, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, samples, w.Samples)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wave.txt")
	require.NoError(t, WriteFile(path, []float64{0, 0.5, -0.25}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "0\n0.5\n-0.25\n", string(b))

	w, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5, -0.25}, w.Samples)
}

func TestWriteFileBadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "wave.txt"), []float64{1})
	assert.Error(t, err)
}
