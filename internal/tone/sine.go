package tone

import "math"

// DefaultSampleRate is a good sample rate since it is at least twice as much as 20kHz,
// the upper bound for human hearing.
const DefaultSampleRate = 44100

// Sine represents a sine wave sampled at a fixed time step.
type Sine struct {
	freq float64
	// step is the time between samples, in seconds.
	step float64

	index int
}

// NewSineWave returns a new Sine wave starting at phase zero.
func NewSineWave(freq, step float64) *Sine {
	return &Sine{
		freq: freq,
		step: step,
	}
}

// Fill populates the buffer with the next len(buf) samples.
func (s *Sine) Fill(buf []float64) {
	for i := range buf {
		buf[i] = s.Next()
	}
}

// Next returns the next sample. Phase is computed from the sample index, not accumulated.
func (s *Sine) Next() float64 {
	t := float64(s.index) * s.step
	s.index++
	return math.Sin(2 * math.Pi * s.freq * t)
}
