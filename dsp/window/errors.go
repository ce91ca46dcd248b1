package window

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned by [Parse] for unsupported window names.
var ErrUnknownType = errors.New("window: unknown type")

var errMismatchedLength = errors.New("window: samples and coefficients must have same length")

func unknownType(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownType, name)
}
