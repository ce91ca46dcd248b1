// Package config holds the extraction settings record, its defaults, and
// its loading from flags, environment, and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-specprep/dsp/stft"
	"github.com/cwbudde/algo-specprep/dsp/window"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. SPECPREP_MIN_FREQ.
const EnvPrefix = "SPECPREP"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete set of extraction settings.
type Config struct {
	Input        string  `mapstructure:"input"`
	Output       string  `mapstructure:"output"`
	MinFreq      int     `mapstructure:"min_freq"`
	MaxFreq      int     `mapstructure:"max_freq"`
	NumWindows   int     `mapstructure:"num_windows"`
	ClipDuration float64 `mapstructure:"clip_duration"`
	FreqBin      int     `mapstructure:"freq_bin"`
	Window       string  `mapstructure:"window"`
	// Workers bounds concurrently processed files; 0 selects runtime.NumCPU.
	Workers   int    `mapstructure:"workers"`
	Normalize bool   `mapstructure:"normalize"`
	FailFast  bool   `mapstructure:"fail_fast"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Default returns the documented defaults. Input and Output are empty.
func Default() Config {
	return Config{
		MinFreq:      2048,
		MaxFreq:      8192,
		NumWindows:   168,
		ClipDuration: 4.0,
		FreqBin:      128,
		Window:       "hann",
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Input) == "":
		return fmt.Errorf("%w: input directory is required", ErrInvalid)
	case strings.TrimSpace(c.Output) == "":
		return fmt.Errorf("%w: output directory is required", ErrInvalid)
	case c.MinFreq <= 0:
		return fmt.Errorf("%w: min_freq must be > 0: %d", ErrInvalid, c.MinFreq)
	case c.MaxFreq <= 0:
		return fmt.Errorf("%w: max_freq must be > 0: %d", ErrInvalid, c.MaxFreq)
	case c.NumWindows <= 0:
		return fmt.Errorf("%w: num_windows must be > 0: %d", ErrInvalid, c.NumWindows)
	case !(c.ClipDuration > 0) || math.IsInf(c.ClipDuration, 0):
		return fmt.Errorf("%w: clip_duration must be > 0: %v", ErrInvalid, c.ClipDuration)
	case c.FreqBin <= 0:
		return fmt.Errorf("%w: freq_bin must be > 0: %d", ErrInvalid, c.FreqBin)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must be >= 0: %d", ErrInvalid, c.Workers)
	}

	if _, err := window.Parse(c.Window); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json: %q", ErrInvalid, c.LogFormat)
	}

	return nil
}

// Params converts the analysis fields to [stft.Params].
func (c Config) Params() (stft.Params, error) {
	wt, err := window.Parse(c.Window)
	if err != nil {
		return stft.Params{}, err
	}

	p := stft.Params{
		ClipDuration:   c.ClipDuration,
		NumTimeBuckets: c.NumWindows,
		FreqBinSize:    c.FreqBin,
		Window:         wt,
	}

	return p, p.Validate()
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"min-freq":      "min_freq",
	"max-freq":      "max_freq",
	"num-windows":   "num_windows",
	"clip-duration": "clip_duration",
	"freq-bin":      "freq_bin",
	"window":        "window",
	"workers":       "workers",
	"normalize":     "normalize",
	"fail-fast":     "fail_fast",
	"log-level":     "log_level",
	"log-format":    "log_format",
}

// RegisterFlags adds the analysis and runtime flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()

	fs.Int("min-freq", d.MinFreq, "lowest target sample rate in Hz")
	fs.Int("max-freq", d.MaxFreq, "highest target sample rate in Hz")
	fs.Int("num-windows", d.NumWindows, "number of time buckets per spectrogram")
	fs.Float64("clip-duration", d.ClipDuration, "seconds of audio analysed per clip")
	fs.Int("freq-bin", d.FreqBin, "number of frequency bins kept (half the FFT size)")
	fs.String("window", d.Window, "analysis window: "+strings.Join(window.Names(), ", "))
	fs.Int("workers", d.Workers, "files processed concurrently (0 = number of CPUs)")
	fs.Bool("normalize", d.Normalize, "scale PCM samples to [-1, 1) by bit depth")
	fs.Bool("fail-fast", d.FailFast, "abort the whole run on the first file error")
	fs.String("log-level", d.LogLevel, "log level: trace, debug, info, warn, error")
	fs.String("log-format", d.LogFormat, "log format: text or json")
}

// NewViper returns a viper instance preloaded with defaults and environment
// lookups.
func NewViper() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("input", d.Input)
	v.SetDefault("output", d.Output)
	v.SetDefault("min_freq", d.MinFreq)
	v.SetDefault("max_freq", d.MaxFreq)
	v.SetDefault("num_windows", d.NumWindows)
	v.SetDefault("clip_duration", d.ClipDuration)
	v.SetDefault("freq_bin", d.FreqBin)
	v.SetDefault("window", d.Window)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("normalize", d.Normalize)
	v.SetDefault("fail_fast", d.FailFast)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// BindFlags binds the flags registered by [RegisterFlags] to v. Flags only
// override lower layers when set explicitly.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the optional YAML file at path into v, decodes the merged
// settings, and validates them.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}

	return c, nil
}
