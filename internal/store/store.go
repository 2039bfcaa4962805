package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned by Get when no entry exists for the key
	ErrNotFound = errors.New("not found")
	// ErrEmptyKey is returned when an empty string is used as a cache key
	ErrEmptyKey = errors.New("key cannot be empty")
)

// Store defines the durable key-to-vector mapping consumed by the cache-aside
// wrapper. Keys are raw input items; values are embedding vectors.
type Store interface {
	// Contains reports whether an entry exists for key
	Contains(ctx context.Context, key string) (bool, error)

	// Get returns the vector stored for key, or ErrNotFound
	Get(ctx context.Context, key string) ([]float32, error)

	// Set stores vector under key, overwriting any existing entry
	Set(ctx context.Context, key string, vector []float32) error

	// Keys returns all stored keys (inspection/debugging)
	Keys(ctx context.Context) ([]string, error)

	// Len returns the number of stored entries
	Len(ctx context.Context) (int, error)

	// Close releases the underlying database handle
	Close() error
}

// Entry represents one stored (key, vector) pair with bookkeeping metadata.
type Entry struct {
	Key       string
	Vector    []float32
	Dimension int
	CreatedAt time.Time
	UpdatedAt time.Time
}
