package types

import "errors"

// Domain errors shared across packages
var (
	// ErrDimensionMismatch is returned when two vectors of different widths
	// are combined (distance, difference features)
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrEmptyVector is returned when an operation requires a non-empty vector
	ErrEmptyVector = errors.New("vector cannot be empty")
)
