package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Per-sample errors: the offending sample is excluded from aggregates
	// and noted in the report, the rest of the batch keeps running.
	ErrDataFormat        = errors.New("unparseable test data")
	ErrInvalidGeometry   = errors.New("non-positive specimen dimension")
	ErrInsufficientData  = errors.New("insufficient data points")
	ErrRangeNotReached   = errors.New("modulus range not spanned by data")
	ErrInsufficientRange = errors.New("fewer than two points in selected range")

	// Invocation errors: abort the whole run.
	ErrArgumentLengthMismatch = errors.New("argument length mismatch")
	ErrEmptyAggregate         = errors.New("no sample contributed to aggregate")
)

// Error constructors with context

func NewDataFormatError(file string, line int, reason string) error {
	if line > 0 {
		return fmt.Errorf("%w: %s line %d: %s", ErrDataFormat, file, line, reason)
	}
	return fmt.Errorf("%w: %s: %s", ErrDataFormat, file, reason)
}

func NewInvalidGeometryError(file, dimension string, value float64) error {
	return fmt.Errorf("%w: %s: %s = %g", ErrInvalidGeometry, file, dimension, value)
}

func NewInsufficientDataError(file string, points, minimum int) error {
	return fmt.Errorf("%w: %s: %d points, need at least %d", ErrInsufficientData, file, points, minimum)
}

func NewRangeNotReachedError(file string, target, max float64) error {
	return fmt.Errorf("%w: %s: target %g exceeds max recorded %g", ErrRangeNotReached, file, target, max)
}

func NewInsufficientRangeError(selected int) error {
	return fmt.Errorf("%w: %d points selected", ErrInsufficientRange, selected)
}

func NewArgumentLengthMismatchError(name string, got, want int) error {
	return fmt.Errorf("%w: %s has %d entries, expected %d (one per sample file)", ErrArgumentLengthMismatch, name, got, want)
}

// Error checking helpers

// IsSampleError reports whether err is recoverable at the batch level:
// the sample it names is dropped and the remaining samples are processed.
func IsSampleError(err error) bool {
	return errors.Is(err, ErrDataFormat) ||
		errors.Is(err, ErrInvalidGeometry) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrRangeNotReached) ||
		errors.Is(err, ErrInsufficientRange)
}

// IsInvocationError reports whether err invalidates the whole run.
func IsInvocationError(err error) bool {
	return errors.Is(err, ErrArgumentLengthMismatch) ||
		errors.Is(err, ErrEmptyAggregate)
}
