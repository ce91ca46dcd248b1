package stft

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-specprep/dsp/window"
)

// ErrInvalidParams indicates non-positive or non-finite analysis parameters.
var ErrInvalidParams = errors.New("stft: invalid parameters")

// Params describes the analysis grid.
type Params struct {
	// ClipDuration is the analysed span in seconds.
	ClipDuration float64
	// NumTimeBuckets is the requested number of rows.
	NumTimeBuckets int
	// FreqBinSize is the number of retained bins, half the FFT size.
	FreqBinSize int
	// Window selects the frame taper. The zero value is rectangular;
	// DefaultParams uses Hann.
	Window window.Type
}

// DefaultParams returns 4 s clips, 168 buckets, 128 bins and a Hann window.
func DefaultParams() Params {
	return Params{
		ClipDuration:   4.0,
		NumTimeBuckets: 168,
		FreqBinSize:    128,
		Window:         window.TypeHann,
	}
}

// Validate checks that every field is positive and finite.
func (p Params) Validate() error {
	switch {
	case !(p.ClipDuration > 0) || math.IsInf(p.ClipDuration, 0):
		return fmt.Errorf("%w: clip duration must be > 0: %v", ErrInvalidParams, p.ClipDuration)
	case p.NumTimeBuckets <= 0:
		return fmt.Errorf("%w: time buckets must be > 0: %d", ErrInvalidParams, p.NumTimeBuckets)
	case p.FreqBinSize <= 0:
		return fmt.Errorf("%w: frequency bins must be > 0: %d", ErrInvalidParams, p.FreqBinSize)
	}
	return nil
}

// FFTSize returns the transform length, 2*FreqBinSize.
func (p Params) FFTSize() int { return 2 * p.FreqBinSize }

// NumSamples returns floor(ClipDuration * rate).
func (p Params) NumSamples(rate int) int {
	return int(math.Floor(p.ClipDuration * float64(rate)))
}

// WindowSize returns the hop between bucket starts at rate. Samples past
// NumTimeBuckets*WindowSize are never visited as frame starts.
func (p Params) WindowSize(rate int) int {
	return p.NumSamples(rate) / p.NumTimeBuckets
}

// ExpectedBuckets returns the number of rows a spectrogram at rate will hold
// when available samples are fed to it.
func (p Params) ExpectedBuckets(rate, available int) int {
	n := p.NumSamples(rate)
	if available > n {
		available = n
	}

	hop := p.WindowSize(rate)
	fftSize := p.FFTSize()

	if available < fftSize {
		return 0
	}
	if hop == 0 {
		return p.NumTimeBuckets
	}

	return min(p.NumTimeBuckets, (available-fftSize)/hop+1)
}
