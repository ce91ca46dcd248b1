package stft_test

import (
	"fmt"

	"github.com/cwbudde/algo-specprep/audio"
	"github.com/cwbudde/algo-specprep/dsp/stft"
	"github.com/cwbudde/algo-specprep/dsp/window"
)

func ExampleGenerate() {
	p := stft.Params{ClipDuration: 1, NumTimeBuckets: 8, FreqBinSize: 64, Window: window.TypeHann}
	clip := &audio.Clip{SampleRate: 44100, Samples: make([]float64, 44100)}

	sg, _ := stft.Generate(clip, p, 2048)
	fmt.Printf("%dx%d fft=%d\n", sg.Buckets(), sg.Bins, sg.FFTSize)
	// Output:
	// 8x64 fft=128
}
