package frequency_test

import (
	"fmt"

	"github.com/cwbudde/algo-specprep/stats/frequency"
)

func ExampleDescribe() {
	f := frequency.Describe([]float64{0, 1, 2, 1, 0}, 1000)
	fmt.Printf("peak=%d centroid=%.0f rolloff=%.0f\n", f.PeakBin, f.Centroid, f.Rolloff)

	// Output:
	// peak=2 centroid=2000 rolloff=3000
}

func ExampleFlatness() {
	fmt.Printf("flatness=%.1f\n", frequency.Flatness([]float64{0, 1, 1, 1, 1}))

	// Output:
	// flatness=1.0
}
