package celllist

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a radius, dimension or point set is unusable
	// (r <= 0 or non-finite, d < 1, ragged rows, nil inputs).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDimensionMismatch is matched by every *DimensionMismatchError.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrCorrupt is returned when a snapshot fails validation (bad magic, checksum
	// mismatch, truncated or inconsistent payload).
	ErrCorrupt = errors.New("corrupt snapshot")
)

// DimensionMismatchError indicates that two stores of different dimensionality
// were combined.
//
// errors.Is(err, ErrDimensionMismatch) reports true for it.
type DimensionMismatchError struct {
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, args...))
}
