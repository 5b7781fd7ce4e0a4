package tone

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// DominantFrequency returns the frequency of the strongest non-DC bin in the
// spectrum of samples. The resolution is sampleRate/len(samples) Hz.
func DominantFrequency(samples []float64, sampleRate int) float64 {
	if len(samples) < 2 || sampleRate <= 0 {
		return 0
	}

	spectrum := fft.FFTReal(samples)
	peak, maxPower := 0, 0.0
	for k := 1; k <= len(spectrum)/2; k++ {
		if p := cmplx.Abs(spectrum[k]); p > maxPower {
			maxPower = p
			peak = k
		}
	}
	return float64(peak) * float64(sampleRate) / float64(len(samples))
}
