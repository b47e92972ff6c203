package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrNoSamples is returned when an engine is built without samples.
	ErrNoSamples = errors.New("sample count must be positive")

	// ErrInvalidBatchSize is returned when a minibatch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be positive")

	// ErrInvalidIterations is returned when the iteration budget is negative.
	ErrInvalidIterations = errors.New("max iterations must not be negative")

	// ErrUnknownInitStrategy is returned for an InitStrategy outside the known set.
	ErrUnknownInitStrategy = errors.New("unknown init strategy")

	// ErrInvalidRestarts is returned when RunBest is asked for fewer than one run.
	ErrInvalidRestarts = errors.New("restarts must be positive")
)

// ErrDimensionMismatch indicates a buffer whose length does not match its
// declared shape.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d values, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension indicates an invalid sample dimension.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ErrTooManyClusters indicates k larger than the number of samples.
//
// It wraps ErrInvalidK, so errors.Is(err, ErrInvalidK) holds.
type ErrTooManyClusters struct {
	K       int
	Samples int
}

func (e *ErrTooManyClusters) Error() string {
	return fmt.Sprintf("k=%d exceeds sample count %d", e.K, e.Samples)
}

func (e *ErrTooManyClusters) Unwrap() error { return ErrInvalidK }
