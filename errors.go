package govff

import (
	"errors"
	"fmt"
)

// These errors may occur while decoding a container.
var (
	ErrInvalidData = errors.New("invalid data")
	ErrUnsupported = errors.New("unsupported feature")
	ErrOpen        = errors.New("could not open the container")
	ErrReadChain   = errors.New("could not read the cluster chain")
	ErrReadDir     = errors.New("could not read the directory")
	ErrDump        = errors.New("could not dump the directory")
	ErrReadOnly    = errors.New("the container is read-only")
)

// InvalidDataError describes malformed content of the container.
// It satisfies errors.Is(err, ErrInvalidData).
type InvalidDataError struct {
	Context  string
	Expected string
	Found    string
}

func (e *InvalidDataError) Error() string {
	return fmt.Sprintf("invalid data in %s: (expected %s, found %s)", e.Context, e.Expected, e.Found)
}

func (e *InvalidDataError) Is(target error) bool {
	return target == ErrInvalidData
}

func invalidData(context, expected, found string, args ...interface{}) error {
	return &InvalidDataError{
		Context:  context,
		Expected: expected,
		Found:    fmt.Sprintf(found, args...),
	}
}

// UnsupportedError is returned for layouts this package does not decode.
// It satisfies errors.Is(err, ErrUnsupported).
type UnsupportedError struct {
	Feature string
}

func (e *UnsupportedError) Error() string {
	return e.Feature + " is not supported"
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupported
}
