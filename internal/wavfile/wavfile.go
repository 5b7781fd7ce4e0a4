// Package wavfile reads and writes single channel 16-bit PCM WAVE files.
package wavfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	bitDepth    = 16
	numChannels = 1
	// formatPCM is the WAVE format tag for uncompressed integer PCM.
	formatPCM = 1
)

var (
	// ErrInvalidWAV is returned when a file is not a readable WAVE file.
	ErrInvalidWAV = errors.New("not a valid WAV file")
	// ErrNoSamples is returned when asked to write an empty clip.
	ErrNoSamples = errors.New("no samples to write")
)

// Clip is the decoded content of a WAVE file.
type Clip struct {
	SampleRate  int
	BitDepth    int
	NumChannels int
	// AudioFormat is the WAVE format tag; 1 is integer PCM.
	AudioFormat int
	Samples     []int
}

// WriteMonoPCM16 writes samples to path as a mono 16-bit little-endian PCM WAVE file,
// replacing any existing file.
//
// The data is written to a temporary file next to path and renamed into place,
// so a failed write never leaves a truncated file at path.
func WriteMonoPCM16(path string, samples []int, sampleRate int) (err error) {
	if len(samples) == 0 {
		return fmt.Errorf("write %q: %w", path, ErrNoSamples)
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %q: %w", path, err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if err := f.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to chmod %q: %w", tmp, err)
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, numChannels, formatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to encode %q: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to move %q into place: %w", path, err)
	}
	return nil
}

// WriteBuffer writes a mono IntBuffer with WriteMonoPCM16.
func WriteBuffer(path string, buf *audio.IntBuffer) error {
	if buf == nil || buf.Format == nil {
		return fmt.Errorf("write %q: %w", path, audio.ErrInvalidBuffer)
	}
	if buf.Format.NumChannels != numChannels {
		return fmt.Errorf("write %q: %d channels, want %d", path, buf.Format.NumChannels, numChannels)
	}
	return WriteMonoPCM16(path, buf.Data, buf.Format.SampleRate)
}

// ReadMonoPCM16 decodes the WAVE file at path.
func ReadMonoPCM16(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return nil, fmt.Errorf("read %q: %w", path, ErrInvalidWAV)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", path, err)
	}

	return &Clip{
		SampleRate:  int(d.SampleRate),
		BitDepth:    int(d.BitDepth),
		NumChannels: int(d.NumChans),
		AudioFormat: int(d.WavAudioFormat),
		Samples:     buf.Data,
	}, nil
}
