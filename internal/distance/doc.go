// Package distance computes pairwise distance matrices between sets of
// embedded vectors and reduces them to per-input scores.
//
// Pairwise builds the full inputs-by-anchors matrix under a configurable
// metric; Aggregate collapses each row (the distances from one input to
// every anchor) to a scalar. Calc is the shortcut that embeds raw inputs and
// anchors through a pipeline first, optionally using a distinct pipeline for
// the anchors and a bounded worker pool for the matrix rows.
//
// Everything here is purely functional; no state is kept between calls.
package distance
