package resonator

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/lozord/flutetone/internal/pitch"
)

// Grid is the set of geometries swept by Sweep, in meters.
type Grid struct {
	Diameters   []float64
	BoreLengths []float64
}

// DefaultGrid covers 20-30mm bores from 140mm to 160mm long.
func DefaultGrid() Grid {
	return Grid{
		Diameters:   []float64{0.020, 0.030},
		BoreLengths: []float64{0.140, 0.150, 0.160},
	}
}

// Instrument describes the body the bore is cut into, in meters.
type Instrument struct {
	TotalLength float64
	// BlockLength is the length taken by the fipple block.
	BlockLength float64
}

// DefaultInstrument is a 200mm body with a 10mm block.
func DefaultInstrument() Instrument {
	return Instrument{TotalLength: 0.200, BlockLength: 0.010}
}

// SlowAirChamber is the length left over for the slow air chamber once the
// bore and block are accounted for.
func (in Instrument) SlowAirChamber(bore float64) float64 {
	return in.TotalLength - bore - in.BlockLength
}

// Result is a single grid point.
type Result struct {
	Estimate
	SlowAirChamber float64
	Match          pitch.Match
}

// Survey is the ordered output of a Sweep.
type Survey struct {
	Model      Model
	Instrument Instrument
	Table      pitch.Table
	// Results are in sweep order: diameter major, bore length minor.
	Results []Result
}

// Summary reduces a Survey to its frequency range.
type Summary struct {
	Min, Max        pitch.Match
	Lowest, Highest Result
}

// ErrEmptySurvey is returned when summarizing a survey with no results.
var ErrEmptySurvey = errors.New("survey has no results")

// Sweep evaluates every diameter and bore length pair in g.
func Sweep(m Model, in Instrument, g Grid, table pitch.Table) (*Survey, error) {
	s := &Survey{
		Model:      m,
		Instrument: in,
		Table:      table,
		Results:    make([]Result, 0, len(g.Diameters)*len(g.BoreLengths)),
	}
	for _, d := range g.Diameters {
		for _, l := range g.BoreLengths {
			est, err := m.Estimate(d, l)
			if err != nil {
				return nil, err
			}
			match, err := table.Nearest(est.Fundamental)
			if err != nil {
				return nil, fmt.Errorf("diameter %v m, bore %v m: %w", d, l, err)
			}
			s.Results = append(s.Results, Result{
				Estimate:       est,
				SlowAirChamber: in.SlowAirChamber(l),
				Match:          match,
			})
		}
	}
	return s, nil
}

// Frequencies returns the fundamentals of all results in sweep order.
func (s *Survey) Frequencies() []float64 {
	fs := make([]float64, len(s.Results))
	for i, r := range s.Results {
		fs[i] = r.Fundamental
	}
	return fs
}

// Sorted returns a copy of the results ordered by ascending fundamental.
// Equal frequencies keep sweep order.
func (s *Survey) Sorted() []Result {
	out := append([]Result(nil), s.Results...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Fundamental < out[j].Fundamental
	})
	return out
}

// Summary returns the frequency extremes of the survey.
func (s *Survey) Summary() (Summary, error) {
	if len(s.Results) == 0 {
		return Summary{}, ErrEmptySurvey
	}
	fs := s.Frequencies()
	lo, err := s.Table.Nearest(fs[floats.MinIdx(fs)])
	if err != nil {
		return Summary{}, err
	}
	hi, err := s.Table.Nearest(fs[floats.MaxIdx(fs)])
	if err != nil {
		return Summary{}, err
	}
	sorted := s.Sorted()
	return Summary{
		Min:     lo,
		Max:     hi,
		Lowest:  sorted[0],
		Highest: sorted[len(sorted)-1],
	}, nil
}
