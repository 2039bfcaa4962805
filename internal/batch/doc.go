// Package batch partitions ordered sequences into bounded-size batches for
// memory-bounded streaming, typically to feed an embedding pipeline in
// chunks instead of one huge call.
//
// Batched is lazy: it pulls size elements at a time from its source, so
// lazily produced and even infinite sequences are supported without
// buffering. Concatenating the batches in order reconstructs the source
// exactly; every batch has length size except possibly the last. A returned
// sequence is single-use (supply a fresh source iterator to re-run) and is
// not safe for concurrent consumption.
package batch
