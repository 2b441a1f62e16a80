package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum computes the one-sided amplitude spectrum of uniformly sampled
// data. It returns the frequencies and the amplitude at each, DC term first.
// The frequency resolution is 1/(n*dx).
func Spectrum(samples []float64, dx float64) (freqs, amps []float64) {
	n := len(samples)
	if n == 0 || dx <= 0 {
		return nil, nil
	}

	coeffs := fft.FFTReal(samples)
	half := n/2 + 1
	freqs = make([]float64, half)
	amps = make([]float64, half)

	for k := 0; k < half; k++ {
		freqs[k] = float64(k) / (float64(n) * dx)
		amp := cmplx.Abs(coeffs[k]) / float64(n)
		if k > 0 && k < n-k {
			// Fold in the conjugate half. DC and Nyquist have none.
			amp *= 2
		}
		amps[k] = amp
	}
	return freqs, amps
}

// DominantFrequency returns the non-DC frequency with the largest amplitude,
// or zero when the input is too short to tell.
func DominantFrequency(samples []float64, dx float64) float64 {
	freqs, amps := Spectrum(samples, dx)
	if len(amps) < 2 {
		return 0
	}
	best := 1
	for k := 2; k < len(amps); k++ {
		if amps[k] > amps[best] {
			best = k
		}
	}
	return freqs[best]
}
