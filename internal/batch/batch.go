package batch

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

// ErrInvalidBatchSize is returned when a batch size below one is requested
var ErrInvalidBatchSize = errors.New("batch size must be at least one")

// Batched splits seq into consecutive batches of exactly size elements; the
// final batch may be shorter. Elements are pulled from seq lazily, size at a
// time, so infinite sources are fine. size < 1 is an error.
func Batched[T any](seq iter.Seq[T], size int) (iter.Seq[[]T], error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, size)
	}

	return func(yield func([]T) bool) {
		current := make([]T, 0, size)
		for v := range seq {
			current = append(current, v)
			if len(current) == size {
				if !yield(current) {
					return
				}
				current = make([]T, 0, size)
			}
		}
		if len(current) > 0 {
			yield(current)
		}
	}, nil
}

// BatchedSlice is a convenience wrapper over Batched for already
// materialized slices.
func BatchedSlice[T any](s []T, size int) (iter.Seq[[]T], error) {
	return Batched(slices.Values(s), size)
}
