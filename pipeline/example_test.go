package pipeline_test

import (
	"fmt"

	"github.com/cwbudde/algo-specprep/pipeline"
)

func ExamplePlanRates() {
	fmt.Println(pipeline.PlanRates(2048, 8192))
	fmt.Println(pipeline.PlanRates(1000, 7999))
	fmt.Println(len(pipeline.PlanRates(4096, 2048)))
	// Output:
	// [2048 4096 8192]
	// [1000 2000 4000]
	// 0
}

func ExampleRateSeq() {
	for r := range pipeline.RateSeq(100, 500) {
		fmt.Println(r)
	}
	// Output:
	// 100
	// 200
	// 400
}
