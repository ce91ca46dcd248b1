package stft

// Spectrogram is a [time][frequency] magnitude matrix.
type Spectrogram struct {
	// Rows holds one magnitude slice of length Bins per time bucket.
	Rows [][]float64
	// Bins is the number of frequency bins per row.
	Bins int
	// SampleRate is the rate the clip was analysed at.
	SampleRate int
	// FFTSize is the transform length used per frame.
	FFTSize int
}

// Buckets returns the number of rows produced.
func (s *Spectrogram) Buckets() int { return len(s.Rows) }

// Flatten returns the magnitudes in row-major order.
func (s *Spectrogram) Flatten() []float64 {
	out := make([]float64, 0, len(s.Rows)*s.Bins)
	for _, row := range s.Rows {
		out = append(out, row...)
	}
	return out
}

// BinHz returns the frequency spacing between adjacent bins.
func (s *Spectrogram) BinHz() float64 {
	if s.FFTSize <= 0 {
		return 0
	}
	return float64(s.SampleRate) / float64(s.FFTSize)
}
