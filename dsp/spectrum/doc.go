// Package spectrum provides FFT-adjacent spectrum-domain utilities.
//
// The package intentionally does not implement FFT itself. It operates on
// complex spectrum bins produced by an FFT backend and provides magnitude,
// peak, and bin-frequency helpers used to turn them into features.
package spectrum
