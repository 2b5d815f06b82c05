package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitudes of the first half of the FFT of data
// with its mean removed, zero-padded to the next power of two.
func PowerSpectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	n := nextPow2(len(data))
	buf := make([]float64, n)
	for i, v := range data {
		buf[i] = v - mean
	}

	spectrum := fft.FFTReal(buf)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the largest non-DC bin of
// the power spectrum of data sampled at sampleRate. It returns 0 for series
// with no oscillation.
func DominantFrequency(data []float64, sampleRate float64) float64 {
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}

	maxIdx, maxPower := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 {
		return 0
	}
	return float64(maxIdx) * sampleRate / float64(len(ps)*2)
}

// Column extracts index idx from every row. Short rows yield 0.
func Column(rows [][]float64, idx int) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		if idx < len(r) {
			out[i] = r[idx]
		}
	}
	return out
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
