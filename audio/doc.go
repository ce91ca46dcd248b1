// Package audio decodes WAV files into mono [Clip] values for feature
// extraction.
//
// Decoding is delegated to github.com/go-audio/wav. Integer PCM samples are
// carried over as their raw integer amplitude (a 16-bit sample of 1200 becomes
// 1200.0) unless [WithNormalize] is given, in which case they are scaled by
// 1/2^(bitDepth-1) into [-1, 1). Multi-channel files are downmixed by
// averaging the channels of each frame.
package audio
