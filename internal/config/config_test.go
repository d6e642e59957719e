package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamletTheHamster/waveplot/internal/display"
	"github.com/HamletTheHamster/waveplot/internal/render"
	"github.com/HamletTheHamster/waveplot/internal/wave"
)

func plotFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("waveplot", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func generateFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	RegisterGenerateFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	config, err := Load(plotFlags(t), "")
	require.NoError(t, err)

	assert.Equal(t, &Config{
		Input:    DefaultInput,
		Display:  display.DefaultMode(),
		LogLevel: "info",
		Width:    12,
		Height:   6,
	}, config)
}

func TestLoadFlagsAndArgument(t *testing.T) {
	config, err := Load(plotFlags(t, "--display", "terminal", "-o", "out/wave.svg", "--stats", "--fit"), "samples.txt")
	require.NoError(t, err)

	assert.Equal(t, "samples.txt", config.Input)
	assert.Equal(t, display.ModeTerminal, config.Display)
	assert.Equal(t, "out/wave.svg", config.Output)
	assert.True(t, config.Stats)
	assert.True(t, config.Fit)
}

func TestLoadEnvironment(t *testing.T) {
	t.Setenv("WAVEPLOT_INPUT", "env.txt")
	t.Setenv("WAVEPLOT_DISPLAY", "none")
	t.Setenv("WAVEPLOT_LOG_LEVEL", "debug")
	t.Setenv("WAVEPLOT_WIDTH", "8")

	config, err := Load(plotFlags(t), "")
	require.NoError(t, err)
	assert.Equal(t, "env.txt", config.Input)
	assert.Equal(t, display.ModeNone, config.Display)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, 8.0, config.Width)

	// flags win over the environment
	config, err = Load(plotFlags(t, "--display", "terminal"), "")
	require.NoError(t, err)
	assert.Equal(t, display.ModeTerminal, config.Display)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"display", []string{"--display", "popup"}},
		{"output", []string{"--output", "wave.bmp"}},
		{"log level", []string{"--log-level", "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(plotFlags(t, tt.args...), "")
			assert.Error(t, err)
		})
	}

	_, err := Load(plotFlags(t, "--output", "wave.bmp"), "")
	assert.ErrorIs(t, err, render.ErrUnsupportedFormat)
}

func TestValidateCollectsErrors(t *testing.T) {
	c := &Config{Display: "popup", LogLevel: "loud"}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file is empty")
	assert.Contains(t, err.Error(), "popup")
	assert.Contains(t, err.Error(), "loud")
	assert.Contains(t, err.Error(), "figure size")
}

func TestValidateLeavesConfigUnchanged(t *testing.T) {
	c := &Config{Input: "wave.txt", LogLevel: "info", Width: 12, Height: 6}
	before := *c

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `display ""`)
	assert.Equal(t, before, *c)
}

func TestLoadEmptyDisplayDefaults(t *testing.T) {
	t.Setenv("WAVEPLOT_DISPLAY", "")

	config, err := Load(plotFlags(t, "--display", ""), "")
	require.NoError(t, err)
	assert.Equal(t, display.DefaultMode(), config.Display)
}

func TestLoadGenerate(t *testing.T) {
	config, err := LoadGenerate(generateFlags(t))
	require.NoError(t, err)
	assert.Equal(t, DefaultInput, config.Output)
	assert.Equal(t, "sine", config.Type)
	assert.Equal(t, 10.0, config.Frequency)
	assert.Equal(t, uint32(255), config.Amplitude)
	assert.Equal(t, uint32(50), config.Duty)
	assert.Equal(t, 1000, config.Samples)

	config, err = LoadGenerate(generateFlags(t, "-t", "square", "-f", "3.5", "-a", "128", "--phase", "45", "--duty", "25", "-n", "64", "-o", "sq.txt"))
	require.NoError(t, err)

	s, err := config.Settings()
	require.NoError(t, err)
	assert.Equal(t, wave.Settings{
		Type:      wave.Square,
		Frequency: 3.5,
		Amplitude: 128,
		Phase:     45,
		Duty:      25,
		Enabled:   true,
	}, s)
	assert.Equal(t, "sq.txt", config.Output)
	assert.Equal(t, 64, config.Samples)
}

func TestLoadGenerateInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"-t", "pulse"},
		{"--frequency=-1"},
		{"-n", "0"},
		{"-o", ""},
	} {
		_, err := LoadGenerate(generateFlags(t, args...))
		assert.Error(t, err, "%v", args)
	}
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, l)

	l, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
