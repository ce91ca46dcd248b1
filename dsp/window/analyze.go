package window

import "math"

// Analysis holds spectral properties of a window, measured numerically from
// its DTFT. Frequencies are in FFT bins of the window length.
type Analysis struct {
	// CoherentGain is sum(w)/N, the window's response to a bin-centred tone.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth, N*sum(w^2)/sum(w)^2.
	ENBW float64
	// Bandwidth3dB is the two-sided half-power main lobe width.
	Bandwidth3dB float64
	// FirstMinimum is the position of the first null.
	FirstMinimum float64
	// HighestSidelobedB is the highest sidelobe relative to DC.
	HighestSidelobedB float64
	// ScallopLossdB is the response to a tone half a bin off centre,
	// relative to DC.
	ScallopLossdB float64
}

// Analyze measures coeffs. A window with zero DC response yields the zero
// Analysis.
func Analyze(coeffs []float64) Analysis {
	n := len(coeffs)
	if n == 0 {
		return Analysis{}
	}

	dc := responseSq(coeffs, 0)
	if dc == 0 {
		return Analysis{}
	}

	var sum, sumSq float64
	for _, c := range coeffs {
		sum += c
		sumSq += c * c
	}

	a := Analysis{
		CoherentGain: sum / float64(n),
		ENBW:         float64(n) * sumSq / (sum * sum),
	}

	if half := responseSq(coeffs, 0.5/float64(n)); half > 0 {
		a.ScallopLossdB = 10 * math.Log10(half/dc)
	}

	a.Bandwidth3dB = halfPowerWidth(coeffs, dc)
	a.FirstMinimum = firstNull(coeffs, dc)
	a.HighestSidelobedB = highestSidelobe(coeffs, dc, a.FirstMinimum)

	return a
}

// AnalyzeType generates a window of the given type and size and measures it.
func AnalyzeType(t Type, size int, opts ...Option) Analysis {
	return Analyze(Generate(t, size, opts...))
}

// responseSq returns |W(f)|^2 at normalised frequency f (cycles/sample).
func responseSq(coeffs []float64, f float64) float64 {
	w := 2 * math.Pi * f

	var re, im float64
	for k, c := range coeffs {
		s, co := math.Sincos(w * float64(k))
		re += c * co
		im -= c * s
	}

	return re*re + im*im
}

// halfPowerWidth bisects [0, 0.5] for the point where the response falls to
// half of dc and returns the two-sided width in bins.
func halfPowerWidth(coeffs []float64, dc float64) float64 {
	lo, hi := 0.0, 0.5
	for range 80 {
		mid := (lo + hi) / 2
		if responseSq(coeffs, mid)/dc > 0.5 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return 2 * lo * float64(len(coeffs))
}

// firstNull scans outward from DC in eighth-bin steps for the first local
// minimum below a tenth of dc, then refines it by golden-section search.
func firstNull(coeffs []float64, dc float64) float64 {
	n := float64(len(coeffs))
	step := 1 / (8 * n)
	floor := dc / 10

	coarse := step
	prev := dc
	for f := step; f < 0.5; f += step {
		v := responseSq(coeffs, f)
		if prev < floor && v > prev {
			coarse = f - step
			break
		}
		prev = v
	}

	a := max(coarse-2*step, 0)
	b := min(coarse+2*step, 0.5)

	const invPhi = 0.6180339887498949
	for range 80 {
		c := b - invPhi*(b-a)
		d := a + invPhi*(b-a)
		if responseSq(coeffs, c) < responseSq(coeffs, d) {
			b = d
		} else {
			a = c
		}
	}

	return (a + b) / 2 * n
}

// highestSidelobe returns the peak response beyond firstNull (in bins)
// relative to dc, in dB.
func highestSidelobe(coeffs []float64, dc, nullBins float64) float64 {
	n := float64(len(coeffs))
	start := nullBins / n
	step := 1 / (8 * n)

	peak, at := 0.0, start
	for f := start; f < 0.5; f += step {
		if v := responseSq(coeffs, f); v > peak {
			peak, at = v, f
		}
	}

	fine := step / 32
	for f := max(at-step, 0); f <= at+step; f += fine {
		peak = max(peak, responseSq(coeffs, f))
	}

	if peak <= 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(peak/dc)
}
