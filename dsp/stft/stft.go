package stft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-specprep/audio"
	"github.com/cwbudde/algo-specprep/dsp/resample"
	"github.com/cwbudde/algo-specprep/dsp/spectrum"
	"github.com/cwbudde/algo-specprep/dsp/window"
)

// Generator computes spectrograms for a fixed [Params].
//
// It owns an FFT plan and frame scratch buffers and is not safe for
// concurrent use. Workers should each hold their own Generator.
type Generator struct {
	params  Params
	fftSize int

	plan   *algofft.Plan[complex128]
	coeffs []float64

	frame []float64
	in    []complex128
	out   []complex128
}

// NewGenerator validates p and prepares the FFT plan and window.
func NewGenerator(p Params) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	fftSize := p.FFTSize()

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("stft: fft plan %d: %w", fftSize, err)
	}

	return &Generator{
		params:  p,
		fftSize: fftSize,
		plan:    plan,
		coeffs:  window.Generate(p.Window, fftSize),
		frame:   make([]float64, fftSize),
		in:      make([]complex128, fftSize),
		out:     make([]complex128, fftSize),
	}, nil
}

// Params returns the analysis parameters.
func (g *Generator) Params() Params { return g.params }

// Generate analyses clip at targetRate.
func (g *Generator) Generate(clip *audio.Clip, targetRate int) (*Spectrogram, error) {
	return g.Compute(clip.Samples, clip.SampleRate, targetRate)
}

// Compute analyses samples recorded at sampleRate after converting them to
// targetRate. samples is not modified.
func (g *Generator) Compute(samples []float64, sampleRate, targetRate int) (*Spectrogram, error) {
	if targetRate <= 0 {
		return nil, fmt.Errorf("%w: target rate must be > 0: %d", ErrInvalidParams, targetRate)
	}

	src, err := resample.Linear(samples, sampleRate, targetRate)
	if err != nil {
		return nil, fmt.Errorf("stft: resample %d->%d: %w", sampleRate, targetRate, err)
	}

	numSamples := g.params.NumSamples(targetRate)
	if len(src) > numSamples {
		src = src[:numSamples]
	}

	hop := g.params.WindowSize(targetRate)
	bins := g.params.FreqBinSize

	sg := &Spectrogram{
		Rows:       make([][]float64, 0, g.params.NumTimeBuckets),
		Bins:       bins,
		SampleRate: targetRate,
		FFTSize:    g.fftSize,
	}

	for b := 0; b < g.params.NumTimeBuckets; b++ {
		start := b * hop
		end := start + g.fftSize

		if end > len(src) {
			break
		}

		row, err := g.frameMagnitude(src[start:end])
		if err != nil {
			return nil, fmt.Errorf("stft: bucket %d: %w", b, err)
		}

		sg.Rows = append(sg.Rows, row)
	}

	return sg, nil
}

func (g *Generator) frameMagnitude(frame []float64) ([]float64, error) {
	if err := window.ApplyCoefficients(g.frame, frame, g.coeffs); err != nil {
		return nil, err
	}

	for i, v := range g.frame {
		g.in[i] = complex(v, 0)
	}

	if err := g.plan.Forward(g.out, g.in); err != nil {
		return nil, err
	}

	row := make([]float64, g.params.FreqBinSize)
	spectrum.MagnitudeInto(row, g.out)

	return row, nil
}

// Generate is a one-shot helper that builds a Generator for p and analyses
// clip at targetRate.
func Generate(clip *audio.Clip, p Params, targetRate int) (*Spectrogram, error) {
	g, err := NewGenerator(p)
	if err != nil {
		return nil, err
	}

	return g.Generate(clip, targetRate)
}
