// Package resonator estimates the fundamental of a flute-like air column using
// empirical end corrections at both openings.
package resonator

import (
	"errors"
	"fmt"
	"math"
)

// SpeedOfSound20C is the speed of sound in dry air at 20°C, in m/s.
const SpeedOfSound20C = 343.0

var (
	// ErrInvalidGeometry is returned for negative or non-finite dimensions.
	ErrInvalidGeometry = errors.New("invalid resonator geometry")
	// ErrDegenerateGeometry is returned when the effective length collapses to zero.
	ErrDegenerateGeometry = errors.New("degenerate resonator geometry")
)

// Model holds the physical constants used by Estimate.
type Model struct {
	// SpeedOfSound in m/s.
	SpeedOfSound float64
}

// DefaultModel returns a Model at 20°C.
func DefaultModel() Model {
	return Model{SpeedOfSound: SpeedOfSound20C}
}

// Estimate is the outcome of evaluating a Model for one geometry. All lengths are in meters.
type Estimate struct {
	Diameter        float64
	BoreLength      float64
	K1              float64
	K2              float64
	EndCorrection   float64
	EffectiveLength float64
	// Fundamental is f0 in Hz.
	Fundamental float64
}

// K1 is the end correction factor for the embouchure end.
func K1(d, l float64) float64 {
	if l == 0 {
		return 0.3
	}
	return 0.3 + 0.2*math.Sqrt(d/l)
}

// K2 is the end correction factor for the open end.
func K2(d, l float64) float64 {
	if l == 0 {
		return 0.6
	}
	return 0.6 + 0.1*math.Sqrt(d/l)
}

// Estimate computes the quarter-wave fundamental for diameter d and bore length l.
//
// l may be zero as long as d is positive; both zero is rejected since the
// effective length would be zero.
func (m Model) Estimate(d, l float64) (Estimate, error) {
	if !validLength(d) || !validLength(l) {
		return Estimate{}, fmt.Errorf("diameter %v m, bore %v m: %w", d, l, ErrInvalidGeometry)
	}
	if !(m.SpeedOfSound > 0) || math.IsInf(m.SpeedOfSound, 0) {
		return Estimate{}, fmt.Errorf("speed of sound %v m/s: %w", m.SpeedOfSound, ErrInvalidGeometry)
	}

	k1, k2 := K1(d, l), K2(d, l)
	dl := (k1 + k2) * d
	leff := l + dl
	if leff == 0 {
		return Estimate{}, fmt.Errorf("diameter %v m, bore %v m: %w", d, l, ErrDegenerateGeometry)
	}

	return Estimate{
		Diameter:        d,
		BoreLength:      l,
		K1:              k1,
		K2:              k2,
		EndCorrection:   dl,
		EffectiveLength: leff,
		Fundamental:     m.SpeedOfSound / (4 * leff),
	}, nil
}

func validLength(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
