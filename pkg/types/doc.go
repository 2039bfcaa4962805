// Package types defines the small set of shared types and domain errors used
// across embedcache: the embedding vector representation and the errors that
// cross package boundaries.
package types
