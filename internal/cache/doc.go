// Package cache implements the cache-aside transform wrapper, the core of
// embedcache.
//
// Cached wraps an embedding pipeline and a persistent store. Its Transform
// behaves identically to the wrapped pipeline's, except that vectors for
// previously seen items are read from the store instead of recomputed. The
// wrapper implements embedder.Transformer, so it is a drop-in substitute for
// the pipeline it wraps.
//
//	enc, _ := embedder.NewFromEnv()
//	st, _ := store.NewSQLiteStore("sentence-enc.db")
//	defer st.Close()
//
//	cached := cache.New(enc, st)
//	vectors, err := cached.Transform(ctx, texts) // misses computed once, then cached
//
// # Algorithm
//
// One Transform call proceeds in four steps, always in this order:
//
//  1. Probe the store for every item, in input order. Hits fill a per-call
//     slot slice by positional index; misses are collected as ordered
//     (index, item) pairs.
//  2. If any misses exist, call the inner pipeline's Transform exactly once
//     with the ordered miss items. Hit items are never re-sent.
//  3. Zip the computed vectors with the miss positions: fill each slot and
//     write each (item, vector) pair through to the store, overwriting any
//     existing entry (last-writer-wins).
//  4. Assemble the dense result ordered by index 0..N-1.
//
// # Duplicate items
//
// There is no intra-call dedup. All misses are collected before any
// computation and written back only after the single inner call, so a
// duplicate of a missing item within the same call is itself a miss and
// appears again in the inner batch. Transform(["ab","abc","ab"]) against an
// empty store sends ["ab","abc","ab"] to the inner pipeline. The redundant
// recomputation is harmless (the later write overwrites with an equal
// vector); only cross-call dedup via the store is guaranteed.
//
// # Failure semantics
//
// If the inner pipeline fails on the miss batch, the error propagates and no
// store writes occur for that call. A store probe or write failure also
// propagates; there is no silent fallback to recomputation-without-caching.
// A failed call returns no partial results, but entries durably written
// before the failure point remain and are served as hits on retry.
package cache
