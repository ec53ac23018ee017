package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// data after removing its mean and applying a Hann window. Bin k is k/len(data)
// cycles per frame.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n < 2 {
		return nil
	}

	x := make([]float64, n)
	m := mean(data)
	for i, v := range data {
		x[i] = v - m
	}
	window.Apply(x, window.Hann)

	spec := fft.FFTReal(x)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantPeriod returns the period in frames of the strongest non-DC
// component, or false when the series is flat.
func DominantPeriod(data []float64) (float64, bool) {
	ps := PowerSpectrum(data)
	best, bestPow := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > bestPow {
			best, bestPow = k, ps[k]
		}
	}
	if best == 0 || bestPow < 1e-9 {
		return 0, false
	}
	return float64(len(data)) / float64(best), true
}

func mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}
