// Package store provides the persistent, content-addressed vector store that
// backs the cache-aside transform wrapper.
//
// Entries map a raw input item (the cache key, no normalization applied) to
// the embedding vector computed for it. The store is durable: opening the
// same path from a second handle, or a second process, observes the same
// entries. Individual key writes are atomic; the store makes no guarantee
// across a set of writes.
//
// # Storage backend
//
// The store is a single SQLite database file. WAL mode is enabled so readers
// (including other processes inspecting the cache) do not block the writer.
// Two drivers are supported via build tags:
//
//   - mattn/go-sqlite3 (cgo builds, default)
//   - modernc.org/sqlite (pure Go, build with -tags purego or CGO_ENABLED=0)
//
// # Usage
//
//	st, err := store.NewSQLiteStore("sentence-enc.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer st.Close()
//
//	ok, err := st.Contains(ctx, "some input text")
//	vec, err := st.Get(ctx, "some input text")
//	err = st.Set(ctx, "some input text", vec)
//
// Vectors are serialized as little-endian float32 blobs. Entries are never
// expired or invalidated by this layer; eviction, if any, is the caller's
// concern.
package store
