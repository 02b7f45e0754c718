package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of bins 0..n/2 of a Hann-windowed,
// mean-removed series.
func PowerSpectrum(series []float64) []float64 {
	n := len(series)
	if n < 2 {
		return nil
	}
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(n)

	buf := make([]complex128, n)
	for i, v := range series {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		buf[i] = complex((v-mean)*window, 0)
	}
	spectrum := fft.FFT(buf)

	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod picks the strongest non-DC bin of the population spectrum
// and converts it to a period in generations. It reports false for a flat or
// too-short series.
func DominantPeriod(series []float64) (float64, bool) {
	ps := PowerSpectrum(series)
	if len(ps) < 2 {
		return 0, false
	}
	best, peak := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > peak {
			best, peak = k, ps[k]
		}
	}
	if best == 0 || peak < 1e-9 {
		return 0, false
	}
	return float64(len(series)) / float64(best), true
}
