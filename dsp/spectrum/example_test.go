package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-specprep/dsp/spectrum"
)

func ExampleMagnitudeInto() {
	bins := []complex128{1 + 0i, 0 + 1i, -1 + 0i, 3 + 4i}
	mag := make([]float64, 2)
	spectrum.MagnitudeInto(mag, bins)
	fmt.Printf("%.1f %.1f\n", mag[0], mag[1])
	// Output:
	// 1.0 1.0
}

func ExamplePeakBin() {
	k, v := spectrum.PeakBin([]float64{0.1, 0.4, 2.5, 0.3})
	fmt.Printf("bin=%d mag=%.1f\n", k, v)
	// Output:
	// bin=2 mag=2.5
}
