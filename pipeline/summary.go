package pipeline

import (
	"github.com/cwbudde/algo-specprep/artifact"
)

// FileResult describes a committed source.
type FileResult struct {
	Source     string
	Dir        string
	SampleRate int
	Samples    int
	Artifacts  []artifact.Entry
}

// FileFailure describes a source that produced no output.
type FileFailure struct {
	Source string
	Err    error
}

// Summary is the outcome of [Driver.Run].
type Summary struct {
	RunID     string
	Rates     []int
	Processed []FileResult
	Skipped   []string
	Failed    []FileFailure
}

// Artifacts returns the number of spectrogram files committed.
func (s *Summary) Artifacts() int {
	n := 0
	for _, r := range s.Processed {
		n += len(r.Artifacts)
	}
	return n
}
