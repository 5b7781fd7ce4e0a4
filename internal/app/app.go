// Package app wires configuration, computation and output for the commands.
package app

import (
	"context"
	"fmt"
	"io"
	"math"

	log "github.com/golang/glog"

	"github.com/lozord/flutetone/internal/config"
	"github.com/lozord/flutetone/internal/pitch"
	"github.com/lozord/flutetone/internal/resonator"
	"github.com/lozord/flutetone/internal/tone"
	"github.com/lozord/flutetone/internal/wavfile"
)

// LoadConfig returns the built-in configuration, overlaid with path when it is set.
func LoadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	log.Infof("loading config from %q", path)
	return config.ParseFromFile(path)
}

// NoteRange sweeps the configured resonator grid and writes the report to w.
func NoteRange(ctx context.Context, cfg *config.Config, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r := cfg.Resonator
	survey, err := resonator.Sweep(r.Model(), r.Instrument(), r.Grid(), pitch.DefaultTable())
	if err != nil {
		return fmt.Errorf("failed to sweep resonator grid: %w", err)
	}
	for _, res := range survey.Results {
		log.V(1).Infof("D=%.3f m L=%.3f m: f0=%.2f Hz %v", res.Diameter, res.BoreLength, res.Fundamental, res.Match)
	}
	return resonator.Report(w, survey)
}

// ToneByName resolves a configured tone and applies an optional output path override.
func ToneByName(cfg *config.Config, name, out string) (tone.Params, error) {
	tc := cfg.Tone(name)
	if tc == nil {
		return tone.Params{}, fmt.Errorf("no tone named %q in config", name)
	}
	p := tc.Params()
	if out != "" {
		p.Path = out
	}
	return p, nil
}

// GenerateTone renders p, writes it to p.Path and prints a short summary to w.
func GenerateTone(ctx context.Context, p tone.Params, w io.Writer) error {
	buf, err := p.Render()
	if err != nil {
		return fmt.Errorf("failed to render tone: %w", err)
	}
	log.V(1).Infof("%s: rendered %d samples at %d Hz", p.Name, len(buf.Data), p.SampleRate)

	if peak := tone.DominantFrequency(buf.AsFloatBuffer().Data, p.SampleRate); math.Abs(peak-p.Frequency) > float64(p.SampleRate)/float64(len(buf.Data)) {
		log.Warningf("%s: spectral peak at %.2f Hz, expected %.2f Hz", p.Name, peak, p.Frequency)
	} else {
		log.V(1).Infof("%s: spectral peak at %.2f Hz", p.Name, peak)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := wavfile.WriteBuffer(p.Path, buf); err != nil {
		return err
	}
	log.Infof("wrote %s", p.Path)

	fmt.Fprintf(w, "Generated %s note (%s Hz)\n", p.Name, decimal(p.Frequency))
	fmt.Fprintf(w, "Duration: %s seconds\n", decimal(p.Duration))
	fmt.Fprintf(w, "Saved to: %s\n", p.Path)
	fmt.Fprintf(w, "\nYou can play this file to hear what %s sounds like.\n", p.Name)
	return nil
}

// decimal formats v with at least one fractional digit, so 440 prints as "440.0".
func decimal(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.1f", v)
	}
	return fmt.Sprintf("%g", v)
}
