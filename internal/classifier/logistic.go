package classifier

import (
	"errors"
	"fmt"
	"math"
)

// LogisticRegression is a binary logistic regression head trained with
// full-batch gradient descent. Class weights are balanced: each class
// contributes equally to the loss regardless of its frequency, matching the
// behavior expected from a default similarity head where positives are
// usually rare.
type LogisticRegression struct {
	LearningRate float64
	Epochs       int

	weights []float64
	bias    float64
	fitted  bool
}

// NewLogisticRegression returns a head with default hyperparameters.
func NewLogisticRegression() *LogisticRegression {
	return &LogisticRegression{
		LearningRate: 0.1,
		Epochs:       500,
	}
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}

// Fit trains on features/labels. Labels must be 0 or 1 and both classes must
// be present.
func (l *LogisticRegression) Fit(features [][]float64, labels []int) error {
	if len(features) == 0 {
		return errors.New("no training data")
	}
	if len(features) != len(labels) {
		return fmt.Errorf("%w: %d rows vs %d labels", ErrLengthMismatch, len(features), len(labels))
	}

	width := len(features[0])
	var pos, neg float64
	for i, row := range features {
		if len(row) != width {
			return fmt.Errorf("row %d width %d, want %d", i, len(row), width)
		}
		switch labels[i] {
		case 1:
			pos++
		case 0:
			neg++
		default:
			return fmt.Errorf("label %d at row %d, want 0 or 1", labels[i], i)
		}
	}
	if pos == 0 || neg == 0 {
		return errors.New("training data must contain both classes")
	}

	// Balanced class weights: n / (2 * count(class))
	n := float64(len(labels))
	posWeight := n / (2 * pos)
	negWeight := n / (2 * neg)

	l.weights = make([]float64, width)
	l.bias = 0

	grad := make([]float64, width)
	for epoch := 0; epoch < l.Epochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		var biasGrad float64

		for i, row := range features {
			z := l.bias
			for j, x := range row {
				z += l.weights[j] * x
			}
			p := sigmoid(z)

			weight := negWeight
			if labels[i] == 1 {
				weight = posWeight
			}
			residual := weight * (p - float64(labels[i]))

			for j, x := range row {
				grad[j] += residual * x
			}
			biasGrad += residual
		}

		step := l.LearningRate / n
		for j := range l.weights {
			l.weights[j] -= step * grad[j]
		}
		l.bias -= step * biasGrad
	}

	l.fitted = true
	return nil
}

// PredictProba returns the probability of class 1 for each row.
func (l *LogisticRegression) PredictProba(features [][]float64) ([]float64, error) {
	if !l.fitted {
		return nil, ErrNotFitted
	}

	out := make([]float64, len(features))
	for i, row := range features {
		if len(row) != len(l.weights) {
			return nil, fmt.Errorf("row %d width %d, want %d", i, len(row), len(l.weights))
		}
		z := l.bias
		for j, x := range row {
			z += l.weights[j] * x
		}
		out[i] = sigmoid(z)
	}
	return out, nil
}

// Predict returns the most likely class for each row.
func (l *LogisticRegression) Predict(features [][]float64) ([]int, error) {
	probs, err := l.PredictProba(features)
	if err != nil {
		return nil, err
	}

	out := make([]int, len(probs))
	for i, p := range probs {
		if p >= 0.5 {
			out[i] = 1
		}
	}
	return out, nil
}
