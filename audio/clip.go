package audio

import (
	"path/filepath"
	"strings"
)

// Clip is a decoded mono recording. It is not modified after decoding.
type Clip struct {
	// Path is the file the clip was decoded from, if any.
	Path string
	// SampleRate is the original sample rate in Hz.
	SampleRate int
	// Channels is the channel count of the source before downmixing.
	Channels int
	// BitDepth is the PCM bit depth of the source.
	BitDepth int
	// Samples holds one value per frame.
	Samples []float64
}

// Len returns the number of samples.
func (c *Clip) Len() int { return len(c.Samples) }

// DurationSeconds returns the clip length in seconds.
func (c *Clip) DurationSeconds() float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.SampleRate)
}

// IsWAV reports whether name carries a ".wav" extension (any case).
func IsWAV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".wav")
}

// Stem returns the file name of path without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
