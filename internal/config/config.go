package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/HamletTheHamster/waveplot/internal/display"
	"github.com/HamletTheHamster/waveplot/internal/render"
	"github.com/HamletTheHamster/waveplot/internal/wave"
)

// EnvPrefix prefixes the environment variable of every setting, e.g.
// WAVEPLOT_DISPLAY.
const EnvPrefix = "WAVEPLOT"

// DefaultInput is the sample file read when none is given.
const DefaultInput = "wave.txt"

// Config holds the settings of a plot run
type Config struct {
	Input    string
	Display  string
	Output   string
	Stats    bool
	Fit      bool
	LogLevel string
	Width    float64 // inches
	Height   float64 // inches
}

// GenerateConfig holds the settings of a generate run
type GenerateConfig struct {
	Output    string
	Type      string
	Frequency float64
	Amplitude uint32
	Phase     uint32
	Duty      uint32
	Samples   int
	LogLevel  string
}

// RegisterFlags adds the plot flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("display", "d", display.DefaultMode(), "display mode: "+strings.Join(display.Modes, ", "))
	fs.StringP("output", "o", "", "also save the plot to this file (.png, .svg, .pdf, ...)")
	fs.Bool("stats", false, "log summary statistics of the waveform")
	fs.Bool("fit", false, "fit a sinusoid and overlay it on the plot")
	fs.String("log-level", zerolog.InfoLevel.String(), "log level: trace, debug, info, warn, error")
}

// RegisterGenerateFlags adds the generate flags to fs.
func RegisterGenerateFlags(fs *pflag.FlagSet) {
	d := wave.DefaultSettings()
	fs.StringP("out", "o", DefaultInput, "sample file to write")
	fs.StringP("type", "t", d.Type.String(), "waveform: sine, square, triangle, sawtooth")
	fs.Float64P("frequency", "f", 10, "frequency in Hz")
	fs.Uint32P("amplitude", "a", d.Amplitude, "amplitude, 0-255 maps to 0-1")
	fs.Uint32("phase", d.Phase, "phase in degrees")
	fs.Uint32("duty", d.Duty, "square wave duty cycle in percent")
	fs.IntP("samples", "n", 1000, "number of samples")
	fs.String("log-level", zerolog.InfoLevel.String(), "log level: trace, debug, info, warn, error")
}

func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("input", DefaultInput)
	v.SetDefault("width", 12.0)
	v.SetDefault("height", 6.0)

	// Environment variables override defaults, flags override both
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Load resolves the plot settings from fs, the environment and defaults.
// input, when non-empty, overrides the configured sample file.
func Load(fs *pflag.FlagSet, input string) (*Config, error) {
	v, err := newViper(fs)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Input:    v.GetString("input"),
		Display:  v.GetString("display"),
		Output:   v.GetString("output"),
		Stats:    v.GetBool("stats"),
		Fit:      v.GetBool("fit"),
		LogLevel: v.GetString("log-level"),
		Width:    v.GetFloat64("width"),
		Height:   v.GetFloat64("height"),
	}
	if input != "" {
		config.Input = input
	}
	if config.Display == "" {
		config.Display = display.DefaultMode()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the settings for values the run cannot use.
func (c *Config) Validate() error {
	var errs []error

	if c.Input == "" {
		errs = append(errs, errors.New("input file is empty"))
	}
	if !slices.Contains(display.Modes, c.Display) {
		errs = append(errs, fmt.Errorf("display %q is not one of %s", c.Display, strings.Join(display.Modes, ", ")))
	}
	if c.Output != "" {
		if _, err := render.FormatOf(c.Output); err != nil {
			errs = append(errs, fmt.Errorf("output %q: %w", c.Output, err))
		}
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("figure size %gx%g must be positive", c.Width, c.Height))
	}

	return errors.Join(errs...)
}

// LoadGenerate resolves the generate settings from fs, the environment
// and defaults.
func LoadGenerate(fs *pflag.FlagSet) (*GenerateConfig, error) {
	v, err := newViper(fs)
	if err != nil {
		return nil, err
	}

	config := &GenerateConfig{
		Output:    v.GetString("out"),
		Type:      v.GetString("type"),
		Frequency: v.GetFloat64("frequency"),
		Amplitude: v.GetUint32("amplitude"),
		Phase:     v.GetUint32("phase"),
		Duty:      v.GetUint32("duty"),
		Samples:   v.GetInt("samples"),
		LogLevel:  v.GetString("log-level"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the generate settings.
func (c *GenerateConfig) Validate() error {
	var errs []error

	if c.Output == "" {
		errs = append(errs, errors.New("output file is empty"))
	}
	if _, err := wave.ParseType(c.Type); err != nil {
		errs = append(errs, err)
	}
	if c.Frequency < 0 {
		errs = append(errs, fmt.Errorf("frequency %g must not be negative", c.Frequency))
	}
	if c.Samples <= 0 {
		errs = append(errs, fmt.Errorf("samples %d must be positive", c.Samples))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Settings converts the generate config into generator settings.
func (c *GenerateConfig) Settings() (wave.Settings, error) {
	typ, err := wave.ParseType(c.Type)
	if err != nil {
		return wave.Settings{}, err
	}
	return wave.Settings{
		Type:      typ,
		Frequency: c.Frequency,
		Amplitude: c.Amplitude,
		Phase:     c.Phase,
		Duty:      c.Duty,
		Enabled:   true,
	}, nil
}

// ParseLevel maps a log level name to its zerolog level. The empty
// string means info.
func ParseLevel(level string) (zerolog.Level, error) {
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", level, err)
	}
	return l, nil
}
