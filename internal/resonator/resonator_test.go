package resonator_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lozord/flutetone/internal/pitch"
	"github.com/lozord/flutetone/internal/resonator"
)

func TestEstimateReferenceGeometry(t *testing.T) {
	est, err := resonator.DefaultModel().Estimate(0.020, 0.150)
	require.NoError(t, err)

	assert.InDelta(t, 0.3730, est.K1, 1e-4)
	assert.InDelta(t, 0.6365, est.K2, 1e-4)
	assert.InDelta(t, 0.02019, est.EndCorrection, 1e-5)
	assert.InDelta(t, 0.17019, est.EffectiveLength, 1e-5)
	assert.InDelta(t, 503.85, est.Fundamental, 0.05)
}

func TestEstimateZeroBore(t *testing.T) {
	est, err := resonator.DefaultModel().Estimate(0.020, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.3, est.K1)
	assert.Equal(t, 0.6, est.K2)
	assert.InDelta(t, 0.9*0.020, est.EffectiveLength, 1e-12)
	assert.InDelta(t, 343/(4*0.018), est.Fundamental, 1e-9)
}

func TestEstimateRejectsBadGeometry(t *testing.T) {
	m := resonator.DefaultModel()

	_, err := m.Estimate(0, 0)
	require.ErrorIs(t, err, resonator.ErrDegenerateGeometry)

	for _, g := range [][2]float64{{-0.02, 0.15}, {0.02, -0.15}, {math.NaN(), 0.15}, {0.02, math.Inf(1)}} {
		_, err := m.Estimate(g[0], g[1])
		require.ErrorIs(t, err, resonator.ErrInvalidGeometry, "geometry %v", g)
	}

	_, err = resonator.Model{}.Estimate(0.02, 0.15)
	require.ErrorIs(t, err, resonator.ErrInvalidGeometry)
}

func TestEstimateEndCorrectionPositive(t *testing.T) {
	m := resonator.DefaultModel()
	for _, d := range []float64{0.001, 0.010, 0.020, 0.030, 0.050} {
		for _, l := range []float64{0.010, 0.100, 0.140, 0.160, 0.600} {
			est, err := m.Estimate(d, l)
			require.NoError(t, err)
			assert.Greater(t, est.Fundamental, 0.0)
			assert.Greater(t, est.EffectiveLength, l)
		}
	}
}

func TestSweepDefaultGrid(t *testing.T) {
	s, err := resonator.Sweep(resonator.DefaultModel(), resonator.DefaultInstrument(), resonator.DefaultGrid(), pitch.DefaultTable())
	require.NoError(t, err)
	require.Len(t, s.Results, 6)

	// Diameter major, bore length minor.
	assert.Equal(t, 0.020, s.Results[0].Diameter)
	assert.Equal(t, 0.140, s.Results[0].BoreLength)
	assert.Equal(t, 0.020, s.Results[2].Diameter)
	assert.Equal(t, 0.160, s.Results[2].BoreLength)
	assert.Equal(t, 0.030, s.Results[3].Diameter)

	assert.InDelta(t, 0.050, s.Results[0].SlowAirChamber, 1e-9)
	assert.InDelta(t, 0.030, s.Results[2].SlowAirChamber, 1e-9)

	names := make([]string, len(s.Results))
	for i, r := range s.Results {
		names[i] = r.Match.Note.Name
	}
	assert.Equal(t, []string{"C5", "B4", "A#4", "B4", "A#4", "A4"}, names)

	sum, err := s.Summary()
	require.NoError(t, err)
	assert.Equal(t, "A4", sum.Min.Note.Name)
	assert.Equal(t, "C5", sum.Max.Note.Name)
	assert.InDelta(t, 449.19, sum.Min.Frequency, 0.01)
	assert.InDelta(t, 535.04, sum.Max.Frequency, 0.01)

	assert.Equal(t, 0.030, sum.Lowest.Diameter)
	assert.Equal(t, 0.160, sum.Lowest.BoreLength)
	assert.Equal(t, 0.020, sum.Highest.Diameter)
	assert.Equal(t, 0.140, sum.Highest.BoreLength)
}

func TestSweepPropagatesErrors(t *testing.T) {
	g := resonator.Grid{Diameters: []float64{0.02}, BoreLengths: []float64{-1}}
	_, err := resonator.Sweep(resonator.DefaultModel(), resonator.DefaultInstrument(), g, pitch.DefaultTable())
	require.ErrorIs(t, err, resonator.ErrInvalidGeometry)

	_, err = resonator.Sweep(resonator.DefaultModel(), resonator.DefaultInstrument(), resonator.DefaultGrid(), nil)
	require.ErrorIs(t, err, pitch.ErrEmptyTable)
}

func TestSummaryEmpty(t *testing.T) {
	s, err := resonator.Sweep(resonator.DefaultModel(), resonator.DefaultInstrument(), resonator.Grid{}, pitch.DefaultTable())
	require.NoError(t, err)
	_, err = s.Summary()
	require.ErrorIs(t, err, resonator.ErrEmptySurvey)
}

func TestReport(t *testing.T) {
	s, err := resonator.Sweep(resonator.DefaultModel(), resonator.DefaultInstrument(), resonator.DefaultGrid(), pitch.DefaultTable())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, resonator.Report(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "BASE NOTE RANGE CALCULATION FOR 200MM TOTAL LENGTH FLUTE")
	assert.Contains(t, out, "Speed of Sound: 343.0 m/s (at 20°C)")
	assert.Contains(t, out, "INNER DIAMETER: 20 mm (0.79 inches)")
	assert.Contains(t, out, "INNER DIAMETER: 30 mm (1.18 inches)")
	assert.Contains(t, out, "Bore Length: 150 mm\n  Slow Air Chamber: ~40 mm\n  K1: 0.373, K2: 0.637")
	assert.Contains(t, out, "  Fundamental Frequency: 503.85 Hz\n  Closest Note: B4 (+34.")
	assert.Contains(t, out, "Note Range: Approximately A4 to C5")
	assert.Contains(t, out, "Lowest Note (30mm diameter, 160mm bore):")
	assert.Contains(t, out, "Highest Note (20mm diameter, 140mm bore):")
}
