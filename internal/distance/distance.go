package distance

import (
	"errors"
	"fmt"
	"math"

	"github.com/dshills/embedcache/pkg/types"
)

// Metric identifies a distance function between two vectors
type Metric string

// Supported metrics
const (
	Cosine    Metric = "cosine"
	Euclidean Metric = "euclidean"
	Manhattan Metric = "manhattan"
	Chebyshev Metric = "chebyshev"

	// Aliases matching common naming
	L1        Metric = "l1"
	L2        Metric = "l2"
	Cityblock Metric = "cityblock"
)

// ErrUnknownMetric is returned for a metric name with no implementation
var ErrUnknownMetric = errors.New("unknown distance metric")

// metricFunc computes the distance between two equal-width vectors
type metricFunc func(a, b []float32) float64

func resolveMetric(m Metric) (metricFunc, error) {
	switch m {
	case Cosine, "":
		return cosineDistance, nil
	case Euclidean, L2:
		return euclideanDistance, nil
	case Manhattan, L1, Cityblock:
		return manhattanDistance, nil
	case Chebyshev:
		return chebyshevDistance, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, m)
	}
}

// cosineDistance is 1 - cosine similarity. Zero vectors are treated as
// maximally distant from everything (similarity 0).
func cosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}

func euclideanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

func manhattanDistance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(float64(a[i]) - float64(b[i]))
	}
	return sum
}

func chebyshevDistance(a, b []float32) float64 {
	var max float64
	for i := range a {
		d := math.Abs(float64(a[i]) - float64(b[i]))
		if d > max {
			max = d
		}
	}
	return max
}

// Pairwise computes the len(inputs) x len(anchors) distance matrix under
// metric. All vectors must share one dimension.
func Pairwise(inputs, anchors [][]float32, metric Metric) ([][]float64, error) {
	fn, err := resolveMetric(metric)
	if err != nil {
		return nil, err
	}
	if err := checkDimensions(inputs, anchors); err != nil {
		return nil, err
	}

	matrix := make([][]float64, len(inputs))
	for i, input := range inputs {
		row := make([]float64, len(anchors))
		for j, anchor := range anchors {
			row[j] = fn(input, anchor)
		}
		matrix[i] = row
	}
	return matrix, nil
}

func checkDimensions(inputs, anchors [][]float32) error {
	var width = -1
	for _, v := range inputs {
		if width == -1 {
			width = len(v)
		} else if len(v) != width {
			return types.ErrDimensionMismatch
		}
	}
	for _, v := range anchors {
		if width == -1 {
			width = len(v)
		} else if len(v) != width {
			return types.ErrDimensionMismatch
		}
	}
	return nil
}

// Aggregator reduces one matrix row (distances to every anchor) to a scalar
type Aggregator func(row []float64) float64

// Max returns the largest distance in the row
func Max(row []float64) float64 {
	out := math.Inf(-1)
	for _, v := range row {
		if v > out {
			out = v
		}
	}
	return out
}

// Min returns the smallest distance in the row
func Min(row []float64) float64 {
	out := math.Inf(1)
	for _, v := range row {
		if v < out {
			out = v
		}
	}
	return out
}

// Mean returns the average distance in the row
func Mean(row []float64) float64 {
	if len(row) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range row {
		sum += v
	}
	return sum / float64(len(row))
}

// Aggregate reduces each row of matrix along the anchor axis.
func Aggregate(matrix [][]float64, agg Aggregator) []float64 {
	out := make([]float64, len(matrix))
	for i, row := range matrix {
		out[i] = agg(row)
	}
	return out
}
