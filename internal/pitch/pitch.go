// Package pitch maps frequencies onto a fixed table of named equal-tempered notes.
package pitch

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNonPositiveFrequency is returned when a frequency has no defined pitch.
	ErrNonPositiveFrequency = errors.New("frequency must be positive")
	// ErrEmptyTable is returned when a lookup is made against a table with no notes.
	ErrEmptyTable = errors.New("pitch table is empty")
)

// Note is a named reference pitch.
type Note struct {
	Name      string
	Frequency float64
}

// Table is an ordered set of notes. Order matters: ties are resolved in favor
// of the note that appears first.
type Table []Note

// Match is the result of mapping a frequency onto a Table.
type Match struct {
	Note Note
	// Frequency is the input frequency that was mapped.
	Frequency float64
	// Cents is the signed distance from Note. Positive is sharp.
	Cents float64
}

func (m Match) String() string {
	return fmt.Sprintf("%s (%+.1f cents)", m.Note.Name, m.Cents)
}

// DefaultTable returns the C4 to A5 reference table. Each call returns a new slice.
func DefaultTable() Table {
	return Table{
		{"C4", 261.63},
		{"C#4", 277.18},
		{"D4", 293.66},
		{"D#4", 311.13},
		{"E4", 329.63},
		{"F4", 349.23},
		{"F#4", 369.99},
		{"G4", 392.00},
		{"G#4", 415.30},
		{"A4", 440.00},
		{"A#4", 466.16},
		{"B4", 493.88},
		{"C5", 523.25},
		{"C#5", 554.37},
		{"D5", 587.33},
		{"D#5", 622.25},
		{"E5", 659.25},
		{"F5", 698.46},
		{"F#5", 739.99},
		{"G5", 783.99},
		{"G#5", 830.61},
		{"A5", 880.00},
	}
}

// Lookup returns the note called name.
func (t Table) Lookup(name string) (Note, bool) {
	for _, n := range t {
		if n.Name == name {
			return n, true
		}
	}
	return Note{}, false
}

// Nearest returns the note closest to freq by absolute difference in Hz.
func (t Table) Nearest(freq float64) (Match, error) {
	if len(t) == 0 {
		return Match{}, ErrEmptyTable
	}
	if !(freq > 0) {
		return Match{}, fmt.Errorf("nearest note for %v Hz: %w", freq, ErrNonPositiveFrequency)
	}

	best := -1
	minDiff := math.Inf(1)
	for i, n := range t {
		if d := math.Abs(freq - n.Frequency); d < minDiff {
			minDiff = d
			best = i
		}
	}
	if best < 0 {
		// Only reachable when every table frequency is NaN or infinite.
		return Match{}, fmt.Errorf("no comparable note for %v Hz", freq)
	}

	return Match{
		Note:      t[best],
		Frequency: freq,
		Cents:     Cents(freq, t[best].Frequency),
	}, nil
}

// Cents returns the distance from ref to f in cents. 100 cents is one semitone.
func Cents(f, ref float64) float64 {
	return 1200 * math.Log2(f/ref)
}
