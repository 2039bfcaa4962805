package embedder

import (
	"context"
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrProviderFailed    = errors.New("embedding provider failed")
	ErrUnsupportedModel  = errors.New("unsupported model")
	ErrEmptyText         = errors.New("text cannot be empty")
	ErrBatchTooLarge     = errors.New("batch size exceeds limit")
	ErrNoProviderEnabled = errors.New("no embedding provider configured")
	ErrShapeMismatch     = errors.New("provider returned wrong number of vectors")
)

// Transformer is an embedding pipeline: Transform maps an ordered list of
// texts to one vector per text, preserving order. It is the operation the
// cache-aside wrapper intercepts; the wrapper itself implements Transformer
// so it is a drop-in substitute for the pipeline it wraps.
type Transformer interface {
	// Transform returns one embedding vector per input text, in input order
	Transform(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the embedding dimension for this provider
	Dimension() int

	// Provider returns the provider name
	Provider() string

	// Model returns the model name
	Model() string

	// Close releases any resources held by the transformer
	Close() error
}

// ValidateTexts validates a transform input batch. An empty batch is legal
// (it produces an empty result); empty individual texts are not, since they
// cannot serve as stable cache keys.
func ValidateTexts(texts []string) error {
	for i, text := range texts {
		if text == "" {
			return fmt.Errorf("%w: text at index %d is empty", ErrInvalidInput, i)
		}
	}
	return nil
}
