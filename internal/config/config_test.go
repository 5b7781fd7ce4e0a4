package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lozord/flutetone/internal/config"
	"github.com/lozord/flutetone/internal/resonator"
	"github.com/lozord/flutetone/internal/tone"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, resonator.DefaultModel(), cfg.Resonator.Model())
	assert.Equal(t, resonator.DefaultInstrument(), cfg.Resonator.Instrument())
	assert.Equal(t, resonator.DefaultGrid(), cfg.Resonator.Grid())

	require.Len(t, cfg.Tones, 2)
	assert.Equal(t, tone.A4(), cfg.Tone("A4").Params())
	assert.Equal(t, tone.C5(), cfg.Tone("C5").Params())
	assert.Nil(t, cfg.Tone("D5"))
}

func TestParseOverlay(t *testing.T) {
	cfg, err := config.Parse([]byte(`
[resonator]
speed_of_sound = 346.1
diameters = [0.025]

[[tones]]
name = "A4"
frequency = 442.0
path = "out/a4.wav"

[[tones]]
name = "E5"
frequency = 659.25
duration = 1.5
`))
	require.NoError(t, err)

	r := cfg.Resonator
	assert.Equal(t, 346.1, r.SpeedOfSound)
	assert.Equal(t, 0.200, r.TotalLength)
	assert.Equal(t, []float64{0.025}, r.Diameters)
	assert.Equal(t, []float64{0.140, 0.150, 0.160}, r.BoreLengths)

	a4 := cfg.Tone("A4").Params()
	assert.Equal(t, 442.0, a4.Frequency)
	assert.Equal(t, "out/a4.wav", a4.Path)
	assert.Equal(t, 2.0, a4.Duration)

	assert.Equal(t, tone.C5(), cfg.Tone("C5").Params())

	e5 := cfg.Tone("E5").Params()
	assert.Equal(t, 659.25, e5.Frequency)
	assert.Equal(t, 1.5, e5.Duration)
	assert.Equal(t, 44100, e5.SampleRate)
	assert.Equal(t, "E5_note.wav", e5.Path)
}

func TestParseRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"negative bore":  "[resonator]\nbore_lengths = [-0.1]\n",
		"negative block": "[resonator]\nblock_length = -0.01\n",
		"tone no freq":   "[[tones]]\nname = \"G5\"\n",
		"negative speed": "[resonator]\nspeed_of_sound = -1.0\n",
	} {
		_, err := config.Parse([]byte(doc))
		require.ErrorIs(t, err, config.ErrInvalidConfig, name)
	}

	_, err := config.Parse([]byte("[resonator\n"))
	require.Error(t, err)
}

func TestParseFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flute.toml")
	require.NoError(t, os.WriteFile(path, []byte("[resonator]\ntotal_length = 0.25\n"), 0o644))

	cfg, err := config.ParseFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Resonator.TotalLength)

	_, err = config.ParseFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
