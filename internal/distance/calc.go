package distance

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/embedcache/internal/embedder"
)

// Options configures Calc
type Options struct {
	// AnchorPipeline embeds the anchors; nil means use the input pipeline
	AnchorPipeline embedder.Transformer
	// Metric for the pairwise matrix; empty means cosine
	Metric Metric
	// Aggregate collapses each input's anchor distances; nil means Max
	Aggregate Aggregator
	// Workers bounds matrix-row parallelism; values below 2 mean sequential
	Workers int
}

// Calc embeds inputs and anchors, computes the pairwise distance matrix, and
// reduces each input's row to one score. The pipelines may parallelize
// internally; Calc itself only parallelizes matrix rows, per Options.Workers.
func Calc(ctx context.Context, inputs, anchors []string, pipeline embedder.Transformer, opts Options) ([]float64, error) {
	inputVecs, err := pipeline.Transform(ctx, inputs)
	if err != nil {
		return nil, err
	}

	anchorPipeline := opts.AnchorPipeline
	if anchorPipeline == nil {
		anchorPipeline = pipeline
	}
	anchorVecs, err := anchorPipeline.Transform(ctx, anchors)
	if err != nil {
		return nil, err
	}

	matrix, err := pairwiseParallel(ctx, inputVecs, anchorVecs, opts.Metric, opts.Workers)
	if err != nil {
		return nil, err
	}

	agg := opts.Aggregate
	if agg == nil {
		agg = Max
	}
	return Aggregate(matrix, agg), nil
}

// pairwiseParallel computes the distance matrix with up to workers
// goroutines, one row per task. Falls back to the sequential path when
// parallelism would not help.
func pairwiseParallel(ctx context.Context, inputs, anchors [][]float32, metric Metric, workers int) ([][]float64, error) {
	if workers < 2 || len(inputs) < 2 {
		return Pairwise(inputs, anchors, metric)
	}

	fn, err := resolveMetric(metric)
	if err != nil {
		return nil, err
	}
	if err := checkDimensions(inputs, anchors); err != nil {
		return nil, err
	}

	matrix := make([][]float64, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := make([]float64, len(anchors))
			for j, anchor := range anchors {
				row[j] = fn(input, anchor)
			}
			matrix[i] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matrix, nil
}
