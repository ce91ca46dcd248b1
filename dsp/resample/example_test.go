package resample_test

import (
	"fmt"

	"github.com/cwbudde/algo-specprep/dsp/resample"
)

func ExampleLinear() {
	in := []float64{0, 2, 4, 6}
	out, _ := resample.Linear(in, 1, 2)
	fmt.Println(out)
	// Output:
	// [0 1 2 3 4 5 6]
}

func ExamplePredictLen() {
	fmt.Println(resample.PredictLen(1000, 8000, 2000))
	// Output:
	// 250
}
