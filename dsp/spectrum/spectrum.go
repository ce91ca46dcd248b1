package spectrum

import (
	"math"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// MagnitudeInto writes |X[k]| for the first len(dst) bins of in into dst.
// in must hold at least len(dst) bins.
func MagnitudeInto(dst []float64, in []complex128) {
	n := len(dst)
	if n == 0 {
		return
	}

	re, im, buf := getScratch(n)
	for i, c := range in[:n] {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(dst, re, im)
	putScratch(buf)
}

// PeakBin returns the index and value of the largest element of mag.
// It returns -1 for an empty slice. Ties resolve to the lowest index.
func PeakBin(mag []float64) (int, float64) {
	if len(mag) == 0 {
		return -1, 0
	}

	best := 0
	for i := 1; i < len(mag); i++ {
		if mag[i] > mag[best] {
			best = i
		}
	}
	return best, mag[best]
}

// BinFrequency returns the centre frequency in Hz of bin k for an FFT of
// fftSize points at sampleRate.
func BinFrequency(k, fftSize int, sampleRate float64) float64 {
	if fftSize <= 0 {
		return math.NaN()
	}
	return float64(k) * sampleRate / float64(fftSize)
}

// NearestBin returns the bin index closest to freqHz.
func NearestBin(freqHz float64, fftSize int, sampleRate float64) int {
	if sampleRate <= 0 {
		return 0
	}
	return int(math.Round(freqHz * float64(fftSize) / sampleRate))
}
