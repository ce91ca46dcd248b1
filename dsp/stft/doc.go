// Package stft computes fixed-grid magnitude spectrograms.
//
// A spectrogram is built from a clip resampled to a target rate and cut to
// floor(ClipDuration*rate) samples. The span is divided into NumTimeBuckets
// hops of NumSamples/NumTimeBuckets samples (integer division). Every bucket
// reads a frame of FFTSize = 2*FreqBinSize samples starting at its hop, so
// frames overlap whenever the hop is shorter than the frame. Each frame is
// windowed, transformed with a forward complex FFT, and reduced to the
// magnitudes of its lower FreqBinSize bins.
//
// Bucket generation stops at the first frame that would read past the end of
// the available samples. Spectrograms may therefore hold fewer rows than
// NumTimeBuckets, and callers must handle variable-height output.
package stft
