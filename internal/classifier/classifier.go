package classifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/embedcache/internal/embedder"
	"github.com/dshills/embedcache/pkg/types"
)

var (
	// ErrLengthMismatch is returned when the two input lists (or inputs and
	// labels) have different lengths
	ErrLengthMismatch = errors.New("input lengths do not match")
	// ErrNotFitted is returned when Predict is called before Fit
	ErrNotFitted = errors.New("classifier has not been fitted")
)

// Head is a binary classifier trained on dense float features. Labels are
// 0 or 1; PredictProba returns the probability of class 1.
type Head interface {
	Fit(features [][]float64, labels []int) error
	Predict(features [][]float64) ([]int, error)
	PredictProba(features [][]float64) ([]float64, error)
}

// DifferenceClassifier predicts pair similarity from |enc(a) - enc(b)|.
type DifferenceClassifier struct {
	enc  embedder.Transformer
	head Head
}

// New creates a DifferenceClassifier over enc. A nil head defaults to
// balanced logistic regression.
func New(enc embedder.Transformer, head Head) *DifferenceClassifier {
	if head == nil {
		head = NewLogisticRegression()
	}
	return &DifferenceClassifier{enc: enc, head: head}
}

// calcFeatures encodes both sides and returns the absolute elementwise
// difference per pair.
func (d *DifferenceClassifier) calcFeatures(ctx context.Context, x1, x2 []string) ([][]float64, error) {
	if len(x1) != len(x2) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x1), len(x2))
	}

	left, err := d.enc.Transform(ctx, x1)
	if err != nil {
		return nil, err
	}
	right, err := d.enc.Transform(ctx, x2)
	if err != nil {
		return nil, err
	}

	features := make([][]float64, len(x1))
	for i := range left {
		diff, err := types.AbsDiff(left[i], right[i])
		if err != nil {
			return nil, fmt.Errorf("pair %d: %w", i, err)
		}
		row := make([]float64, len(diff))
		for j, v := range diff {
			row[j] = float64(v)
		}
		features[i] = row
	}
	return features, nil
}

// Fit trains the head on the encoded pair differences. Labels are 1 for
// similar pairs, 0 otherwise.
func (d *DifferenceClassifier) Fit(ctx context.Context, x1, x2 []string, y []int) error {
	if len(x1) != len(y) {
		return fmt.Errorf("%w: %d inputs vs %d labels", ErrLengthMismatch, len(x1), len(y))
	}
	features, err := d.calcFeatures(ctx, x1, x2)
	if err != nil {
		return err
	}
	return d.head.Fit(features, y)
}

// Predict returns 0/1 similarity labels for each pair.
func (d *DifferenceClassifier) Predict(ctx context.Context, x1, x2 []string) ([]int, error) {
	features, err := d.calcFeatures(ctx, x1, x2)
	if err != nil {
		return nil, err
	}
	return d.head.Predict(features)
}

// PredictProba returns the probability of similarity for each pair.
func (d *DifferenceClassifier) PredictProba(ctx context.Context, x1, x2 []string) ([]float64, error) {
	features, err := d.calcFeatures(ctx, x1, x2)
	if err != nil {
		return nil, err
	}
	return d.head.PredictProba(features)
}
