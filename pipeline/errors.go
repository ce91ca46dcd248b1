package pipeline

import "errors"

var (
	// ErrInputMissing indicates the input directory does not exist.
	ErrInputMissing = errors.New("pipeline: input path does not exist")
	// ErrInputNotDir indicates the input path is not a directory.
	ErrInputNotDir = errors.New("pipeline: input path is not a directory")
	// ErrOutputExists indicates the output path already exists.
	ErrOutputExists = errors.New("pipeline: output path already exists")
	// ErrAborted indicates a fail-fast run stopped on a file error.
	ErrAborted = errors.New("pipeline: run aborted")
)

// IsConfigError reports whether err is a path validation failure detected
// before any file was processed.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInputMissing) ||
		errors.Is(err, ErrInputNotDir) ||
		errors.Is(err, ErrOutputExists)
}
