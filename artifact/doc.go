// Package artifact defines the on-disk format of extracted spectrograms.
//
// Each (source file, sample rate) pair is stored as one little-endian binary
// file with a 24-byte header:
//
//	offset size field
//	0      4    magic "SPGM"
//	4      2    format version (1)
//	6      2    reserved, zero
//	8      4    rows: time buckets actually produced
//	12     4    cols: frequency bins per row
//	16     4    sample rate in Hz
//	20     4    FFT size
//	24     ...  rows*cols float32 magnitudes, row-major
//
// Per-source metadata lives next to the binaries in meta.yaml, and a run-level
// manifest.yaml at the output root lists every source, artifact, and failure.
package artifact
