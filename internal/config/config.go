// Package config holds the constants for a run, optionally overridden from TOML.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lozord/flutetone/internal/resonator"
	"github.com/lozord/flutetone/internal/tone"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Resonator ResonatorConfig `toml:"resonator"`
	Tones     []*ToneConfig   `toml:"tones"`
}

// ResonatorConfig is in meters and m/s.
type ResonatorConfig struct {
	SpeedOfSound float64   `toml:"speed_of_sound"`
	TotalLength  float64   `toml:"total_length"`
	BlockLength  float64   `toml:"block_length"`
	Diameters    []float64 `toml:"diameters"`
	BoreLengths  []float64 `toml:"bore_lengths"`
}

type ToneConfig struct {
	Name        string  `toml:"name"`
	Frequency   float64 `toml:"frequency"`
	Duration    float64 `toml:"duration"`
	SampleRate  int     `toml:"sample_rate"`
	Fade        float64 `toml:"fade"`
	Attenuation float64 `toml:"attenuation"`
	Path        string  `toml:"path"`
}

// Default returns the built-in configuration: a 200mm flute body swept over
// two diameters and three bore lengths, and the A4 and C5 reference tones.
func Default() *Config {
	m, in, g := resonator.DefaultModel(), resonator.DefaultInstrument(), resonator.DefaultGrid()
	return &Config{
		Resonator: ResonatorConfig{
			SpeedOfSound: m.SpeedOfSound,
			TotalLength:  in.TotalLength,
			BlockLength:  in.BlockLength,
			Diameters:    g.Diameters,
			BoreLengths:  g.BoreLengths,
		},
		Tones: []*ToneConfig{
			fromParams(tone.A4()),
			fromParams(tone.C5()),
		},
	}
}

// ParseFromFile reads file and overlays it on Default. Tones named in the file
// replace or extend the default tones; fields left out keep their defaults.
func ParseFromFile(file string) (*Config, error) {
	bs, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file at %q: %w", file, err)
	}

	cfg, err := Parse(bs)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Config from TOML file %q: %w", file, err)
	}
	return cfg, nil
}

// Parse decodes TOML bytes on top of Default.
func Parse(bs []byte) (*Config, error) {
	var overlay struct {
		Resonator ResonatorConfig `toml:"resonator"`
		Tones     []*ToneConfig   `toml:"tones"`
	}
	if err := toml.Unmarshal(bs, &overlay); err != nil {
		return nil, err
	}

	cfg := Default()
	r := &cfg.Resonator
	if overlay.Resonator.SpeedOfSound != 0 {
		r.SpeedOfSound = overlay.Resonator.SpeedOfSound
	}
	if overlay.Resonator.TotalLength != 0 {
		r.TotalLength = overlay.Resonator.TotalLength
	}
	if overlay.Resonator.BlockLength != 0 {
		r.BlockLength = overlay.Resonator.BlockLength
	}
	if overlay.Resonator.Diameters != nil {
		r.Diameters = overlay.Resonator.Diameters
	}
	if overlay.Resonator.BoreLengths != nil {
		r.BoreLengths = overlay.Resonator.BoreLengths
	}

	for _, tc := range overlay.Tones {
		base := cfg.Tone(tc.Name)
		if base == nil {
			base = fromParams(tone.New(tc.Name, 0))
			cfg.Tones = append(cfg.Tones, base)
		}
		base.merge(tc)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Tone returns the tone called name, or nil.
func (c *Config) Tone(name string) *ToneConfig {
	for _, tc := range c.Tones {
		if tc.Name == name {
			return tc
		}
	}
	return nil
}

// Validate checks every field is usable.
func (c *Config) Validate() error {
	r := c.Resonator
	if r.SpeedOfSound <= 0 || r.TotalLength <= 0 || r.BlockLength < 0 {
		return fmt.Errorf("%w: resonator constants must be positive", ErrInvalidConfig)
	}
	if len(r.Diameters) == 0 || len(r.BoreLengths) == 0 {
		return fmt.Errorf("%w: resonator grid is empty", ErrInvalidConfig)
	}
	for _, v := range append(append([]float64(nil), r.Diameters...), r.BoreLengths...) {
		if v < 0 {
			return fmt.Errorf("%w: negative length %v", ErrInvalidConfig, v)
		}
	}
	for _, tc := range c.Tones {
		if tc.Name == "" || tc.Path == "" {
			return fmt.Errorf("%w: tone needs a name and a path", ErrInvalidConfig)
		}
		if err := tc.Params().Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Model, Instrument and Grid split the resonator section into its runtime parts.
func (r ResonatorConfig) Model() resonator.Model {
	return resonator.Model{SpeedOfSound: r.SpeedOfSound}
}

func (r ResonatorConfig) Instrument() resonator.Instrument {
	return resonator.Instrument{TotalLength: r.TotalLength, BlockLength: r.BlockLength}
}

func (r ResonatorConfig) Grid() resonator.Grid {
	return resonator.Grid{Diameters: r.Diameters, BoreLengths: r.BoreLengths}
}

// Params converts tc into render parameters.
func (tc *ToneConfig) Params() tone.Params {
	return tone.Params{
		Name:        tc.Name,
		Frequency:   tc.Frequency,
		Duration:    tc.Duration,
		SampleRate:  tc.SampleRate,
		Fade:        tc.Fade,
		Attenuation: tc.Attenuation,
		Path:        tc.Path,
	}
}

func (tc *ToneConfig) merge(o *ToneConfig) {
	if o.Frequency != 0 {
		tc.Frequency = o.Frequency
	}
	if o.Duration != 0 {
		tc.Duration = o.Duration
	}
	if o.SampleRate != 0 {
		tc.SampleRate = o.SampleRate
	}
	if o.Fade != 0 {
		tc.Fade = o.Fade
	}
	if o.Attenuation != 0 {
		tc.Attenuation = o.Attenuation
	}
	if o.Path != "" {
		tc.Path = o.Path
	}
}

func fromParams(p tone.Params) *ToneConfig {
	return &ToneConfig{
		Name:        p.Name,
		Frequency:   p.Frequency,
		Duration:    p.Duration,
		SampleRate:  p.SampleRate,
		Fade:        p.Fade,
		Attenuation: p.Attenuation,
		Path:        p.Path,
	}
}
