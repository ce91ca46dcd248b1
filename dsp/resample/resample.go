package resample

import (
	"errors"
	"math"
)

// ErrInvalidRate indicates an invalid input/output sample rate.
var ErrInvalidRate = errors.New("resample: invalid sample rate")

// Linear converts samples recorded at originalRate to targetRate.
//
// Equal rates return samples itself, untouched. The result holds at most
// PredictLen(len(samples), originalRate, targetRate) values.
func Linear(samples []float64, originalRate, targetRate int) ([]float64, error) {
	if originalRate <= 0 || targetRate <= 0 {
		return nil, ErrInvalidRate
	}

	if originalRate == targetRate {
		return samples, nil
	}

	ratio := float64(targetRate) / float64(originalRate)
	newLen := PredictLen(len(samples), originalRate, targetRate)
	out := make([]float64, 0, newLen)

	for i := 0; i < newLen; i++ {
		pos := float64(i) / ratio
		low := int(math.Floor(pos))
		high := int(math.Ceil(pos))

		if high >= len(samples) {
			break
		}

		frac := pos - float64(low)
		out = append(out, samples[low]*(1-frac)+samples[high]*frac)
	}

	return out, nil
}

// PredictLen returns floor(n * targetRate / originalRate), the requested
// output length before end-of-input truncation.
func PredictLen(n, originalRate, targetRate int) int {
	if n <= 0 || originalRate <= 0 || targetRate <= 0 {
		return 0
	}

	ratio := float64(targetRate) / float64(originalRate)

	return int(math.Floor(float64(n) * ratio))
}
