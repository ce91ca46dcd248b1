// Package frequency summarises magnitude spectra with scalar shape
// descriptors.
//
// Spectra are the lower half of an FFT as stored by a spectrogram: bin k sits
// at k*binHz, where binHz = sampleRate/fftSize, and there is no Nyquist bin.
package frequency

import (
	"math"

	"github.com/cwbudde/algo-specprep/dsp/spectrum"
)

// RolloffPercent is the energy fraction used by [Describe] for Rolloff.
const RolloffPercent = 0.85

// Features holds shape descriptors of one magnitude spectrum.
type Features struct {
	Bins      int
	PeakBin   int     // -1 for an empty spectrum
	Peak      float64 // magnitude at PeakBin
	Energy    float64 // sum of squared magnitudes
	Centroid  float64 // Hz
	Spread    float64 // Hz
	Flatness  float64 // Wiener entropy, 0..1, DC excluded
	Rolloff   float64 // Hz below which RolloffPercent of the energy lies
	Bandwidth float64 // 3 dB width around the peak, Hz
}

// Describe computes every descriptor of mag in two passes.
func Describe(mag []float64, binHz float64) Features {
	f := Features{Bins: len(mag), PeakBin: -1}
	if len(mag) == 0 {
		return f
	}

	sum := 0.0
	for _, v := range mag {
		sum += v
		f.Energy += v * v
	}
	f.PeakBin, f.Peak = spectrum.PeakBin(mag)

	f.Centroid = centroid(mag, binHz, sum)
	f.Spread = spread(mag, binHz, f.Centroid, sum)
	f.Flatness = Flatness(mag)
	f.Rolloff = rolloff(mag, binHz, RolloffPercent, f.Energy)
	f.Bandwidth = bandwidth(mag, binHz, f.PeakBin)

	return f
}

// Mean averages rows bin by bin. Rows shorter than the first are treated as
// zero-padded.
func Mean(rows [][]float64) []float64 {
	if len(rows) == 0 {
		return nil
	}

	mean := make([]float64, len(rows[0]))
	for _, r := range rows {
		for k := 0; k < len(mean) && k < len(r); k++ {
			mean[k] += r[k]
		}
	}

	n := float64(len(rows))
	for k := range mean {
		mean[k] /= n
	}
	return mean
}

// Centroid returns the magnitude-weighted mean frequency in Hz.
func Centroid(mag []float64, binHz float64) float64 {
	sum := 0.0
	for _, v := range mag {
		sum += v
	}
	return centroid(mag, binHz, sum)
}

func centroid(mag []float64, binHz, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	weighted := 0.0
	for i, v := range mag {
		weighted += float64(i) * binHz * v
	}
	return weighted / sum
}

func spread(mag []float64, binHz, cent, sum float64) float64 {
	if sum == 0 {
		return 0
	}
	acc := 0.0
	for i, v := range mag {
		d := float64(i)*binHz - cent
		acc += d * d * v
	}
	return math.Sqrt(acc / sum)
}

// Flatness returns the ratio of geometric to arithmetic mean of mag[1:].
// Any zero bin makes the geometric mean, and so the result, zero.
func Flatness(mag []float64) float64 {
	if len(mag) < 2 {
		return 0
	}

	sumLin, sumLog := 0.0, 0.0
	for _, v := range mag[1:] {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	n := float64(len(mag) - 1)
	return math.Exp(sumLog/n) / (sumLin / n)
}

// Rolloff returns the frequency of the first bin at which the cumulative
// energy reaches percent of the total.
func Rolloff(mag []float64, binHz, percent float64) float64 {
	energy := 0.0
	for _, v := range mag {
		energy += v * v
	}
	return rolloff(mag, binHz, percent, energy)
}

func rolloff(mag []float64, binHz, percent, energy float64) float64 {
	if energy == 0 {
		return 0
	}
	threshold := percent * energy
	cum := 0.0
	for i, v := range mag {
		cum += v * v
		if cum >= threshold {
			return float64(i) * binHz
		}
	}
	return float64(len(mag)-1) * binHz
}

// bandwidth locates the peak/sqrt(2) crossings either side of peakBin,
// interpolating linearly between bins. A side with no crossing extends to the
// edge of the spectrum.
func bandwidth(mag []float64, binHz float64, peakBin int) float64 {
	peak := mag[peakBin]
	if peak == 0 || len(mag) < 2 {
		return 0
	}

	threshold := peak / math.Sqrt2

	lower := 0.0
	for i := peakBin; i >= 1; i-- {
		if mag[i-1] <= threshold {
			lower = crossing(i-1, mag[i-1], mag[i], threshold, binHz)
			break
		}
	}

	upper := float64(len(mag)-1) * binHz
	for i := peakBin; i < len(mag)-1; i++ {
		if mag[i+1] <= threshold {
			upper = crossing(i, mag[i], mag[i+1], threshold, binHz)
			break
		}
	}

	return max(upper-lower, 0)
}

// crossing returns the frequency between bins k and k+1 where the linear
// interpolation of a (at k) and b (at k+1) equals threshold.
func crossing(k int, a, b, threshold, binHz float64) float64 {
	lo := float64(k) * binHz
	if a == b {
		return lo + binHz/2
	}
	return lo + (threshold-a)/(b-a)*binHz
}
