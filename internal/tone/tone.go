// Package tone renders pure reference tones as 16-bit PCM sample buffers.
package tone

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/transforms"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultDuration is the length of a rendered tone, in seconds.
	DefaultDuration = 2.0
	// DefaultFade is the length of each end of the fade envelope, in seconds.
	DefaultFade = 0.05
	// DefaultAttenuation keeps the peak at half of full scale.
	DefaultAttenuation = 0.5
	// BitDepth of quantized output.
	BitDepth = 16

	fullScale = math.MaxInt16
)

var (
	// ErrInvalidParams is returned for non-positive or non-finite tone parameters.
	ErrInvalidParams = errors.New("invalid tone parameters")
	// ErrFadeTooLong is returned when a fade is longer than the whole buffer.
	ErrFadeTooLong = errors.New("fade longer than tone")
	// ErrSampleOverflow is returned when a sample does not fit in 16 bits.
	ErrSampleOverflow = errors.New("sample exceeds 16-bit range")
)

// Params describes a single tone and where it is written.
type Params struct {
	// Name is the note name, e.g. "A4".
	Name       string
	Frequency  float64
	Duration   float64
	SampleRate int
	// Fade is the ramp length at each end, in seconds.
	Fade float64
	// Attenuation is the linear gain applied before quantization.
	Attenuation float64
	Path        string
}

// New returns Params for the named note with the default duration, rate, fade and gain.
// The output path is "<name>_note.wav".
func New(name string, freq float64) Params {
	return Params{
		Name:        name,
		Frequency:   freq,
		Duration:    DefaultDuration,
		SampleRate:  DefaultSampleRate,
		Fade:        DefaultFade,
		Attenuation: DefaultAttenuation,
		Path:        name + "_note.wav",
	}
}

// A4 is concert pitch, 440 Hz.
func A4() Params { return New("A4", 440.0) }

// C5 is 523.25 Hz.
func C5() Params { return New("C5", 523.25) }

// Validate checks that p can be rendered.
func (p Params) Validate() error {
	switch {
	case !finitePositive(p.Frequency):
		return fmt.Errorf("%s: frequency %v Hz: %w", p.Name, p.Frequency, ErrInvalidParams)
	case !finitePositive(p.Duration):
		return fmt.Errorf("%s: duration %v s: %w", p.Name, p.Duration, ErrInvalidParams)
	case p.SampleRate <= 0:
		return fmt.Errorf("%s: sample rate %d: %w", p.Name, p.SampleRate, ErrInvalidParams)
	case !(p.Fade >= 0) || math.IsInf(p.Fade, 0):
		return fmt.Errorf("%s: fade %v s: %w", p.Name, p.Fade, ErrInvalidParams)
	case !(p.Attenuation >= 0) || math.IsInf(p.Attenuation, 0):
		return fmt.Errorf("%s: attenuation %v: %w", p.Name, p.Attenuation, ErrInvalidParams)
	}
	return nil
}

// Format is the mono audio format of p.
func (p Params) Format() *audio.Format {
	return &audio.Format{NumChannels: 1, SampleRate: p.SampleRate}
}

// Render synthesizes, attenuates and quantizes the tone.
func (p Params) Render() (*audio.IntBuffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	samples, err := synthesize(p.Frequency, p.Duration, p.SampleRate, p.Fade)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}

	fb := &audio.FloatBuffer{Format: p.Format(), Data: samples}
	if err := transforms.Gain(fb, p.Attenuation); err != nil {
		return nil, fmt.Errorf("%s: attenuate: %w", p.Name, err)
	}

	data, err := Quantize(fb.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	return &audio.IntBuffer{Format: fb.Format, Data: data, SourceBitDepth: BitDepth}, nil
}

// NumSamples is the number of samples in a tone of the given length.
func NumSamples(duration float64, sampleRate int) int {
	return int(math.Round(duration * float64(sampleRate)))
}

// Synthesize returns duration seconds of a sine at freq with the default fade applied.
// Samples are evenly spaced over [0, duration) and lie in [-1, 1].
func Synthesize(freq, duration float64, sampleRate int) ([]float64, error) {
	if !finitePositive(freq) || !finitePositive(duration) || sampleRate <= 0 {
		return nil, fmt.Errorf("freq %v Hz, duration %v s, rate %d: %w", freq, duration, sampleRate, ErrInvalidParams)
	}
	return synthesize(freq, duration, sampleRate, DefaultFade)
}

func synthesize(freq, duration float64, sampleRate int, fade float64) ([]float64, error) {
	n := NumSamples(duration, sampleRate)
	if n == 0 {
		return nil, fmt.Errorf("%v s at %d Hz yields no samples: %w", duration, sampleRate, ErrInvalidParams)
	}

	buf := make([]float64, n)
	NewSineWave(freq, duration/float64(n)).Fill(buf)

	env, err := Envelope(n, NumSamples(fade, sampleRate))
	if err != nil {
		return nil, err
	}
	floats.Mul(buf, env)
	return buf, nil
}

// Envelope returns n gain multipliers that rise linearly from 0 to 1 over the
// first fade samples and fall from 1 to 0 over the last fade samples. Both
// ramps include their endpoints. When the ramps overlap the fall wins.
func Envelope(n, fade int) ([]float64, error) {
	if n < 0 || fade < 0 {
		return nil, fmt.Errorf("envelope of %d samples with %d fade: %w", n, fade, ErrInvalidParams)
	}
	if fade > n {
		return nil, fmt.Errorf("fade of %d samples over %d: %w", fade, n, ErrFadeTooLong)
	}

	env := make([]float64, n)
	for i := range env {
		env[i] = 1
	}
	copy(env[:fade], ramp(fade, 0, 1))
	copy(env[n-fade:], ramp(fade, 1, 0))
	return env, nil
}

func ramp(n int, from, to float64) []float64 {
	switch n {
	case 0:
		return nil
	case 1:
		return []float64{from}
	}
	return floats.Span(make([]float64, n), from, to)
}

// Quantize scales samples in [-1, 1] to signed 16-bit integers, rounding to nearest.
// Values that do not fit are reported rather than clipped.
func Quantize(samples []float64) ([]int, error) {
	out := make([]int, len(samples))
	for i, v := range samples {
		q := math.Round(v * fullScale)
		if math.IsNaN(q) || q > math.MaxInt16 || q < math.MinInt16 {
			return nil, fmt.Errorf("sample %d = %v: %w", i, v, ErrSampleOverflow)
		}
		out[i] = int(q)
	}
	return out, nil
}

func finitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
