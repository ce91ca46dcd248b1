package pipeline

import (
	"iter"
	"slices"
)

// RateSeq yields minFreq, 2*minFreq, 4*minFreq, ... while the value does not
// exceed maxFreq. The sequence is empty when minFreq <= 0 or minFreq >
// maxFreq, and may be ranged over any number of times.
func RateSeq(minFreq, maxFreq int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if minFreq <= 0 {
			return
		}

		for r := minFreq; r <= maxFreq; r *= 2 {
			if !yield(r) {
				return
			}
			// Stop before r*2 can overflow.
			if r > maxFreq/2 {
				return
			}
		}
	}
}

// PlanRates returns the doubling sweep from minFreq up to maxFreq.
func PlanRates(minFreq, maxFreq int) []int {
	return slices.Collect(RateSeq(minFreq, maxFreq))
}
