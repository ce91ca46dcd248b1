// Package resample provides sample-rate conversion by linear interpolation.
//
// [Linear] maps output index i to the fractional source position i/ratio and
// blends the two neighbouring input samples. No anti-aliasing filter is
// applied, so downsampling folds content above the new Nyquist frequency back
// into the band. This is a known limitation kept for bit-compatibility with
// existing feature sets.
//
// Output is never padded: when the upper neighbour of a position would fall
// past the end of the input, conversion stops and the shorter result is
// returned. Callers must not assume the output length equals [PredictLen].
package resample
