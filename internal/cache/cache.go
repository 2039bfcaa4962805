package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/embedcache/internal/embedder"
	"github.com/dshills/embedcache/internal/store"
	"github.com/dshills/embedcache/pkg/types"
)

// DefaultMemoryCacheSize is the LRU capacity used by WithMemoryCache(0)
const DefaultMemoryCacheSize = 10000

// Stats counts cache activity across the lifetime of a Cached instance.
type Stats struct {
	Hits       uint64 // items served from cache
	Misses     uint64 // items forwarded to the inner pipeline
	InnerCalls uint64 // Transform invocations on the inner pipeline
}

// Cached is a cache-aside wrapper around an embedding pipeline. It holds a
// reference to the inner pipeline and a passed-in store handle; it never
// mutates the inner pipeline. The store is owned by the caller and may be
// shared by several wrappers; Close releases the inner pipeline only.
type Cached struct {
	inner embedder.Transformer
	store store.Store
	mem   *lru.Cache[string, []float32]

	mu    sync.Mutex
	stats Stats
}

// Option configures a Cached wrapper
type Option func(*Cached)

// WithMemoryCache layers an in-memory LRU in front of the persistent store.
// size <= 0 uses DefaultMemoryCacheSize. The LRU is purely an additive read
// shortcut: it is populated at the same probe and write-back points as the
// store, and never changes hit/miss semantics against a cold process.
func WithMemoryCache(size int) Option {
	return func(c *Cached) {
		if size <= 0 {
			size = DefaultMemoryCacheSize
		}
		mem, err := lru.New[string, []float32](size)
		if err != nil {
			// Only reachable with a non-positive size, which is already
			// normalized above
			mem, _ = lru.New[string, []float32](DefaultMemoryCacheSize)
		}
		c.mem = mem
	}
}

// New wraps pipeline with cache-aside behavior backed by st.
func New(pipeline embedder.Transformer, st store.Store, opts ...Option) *Cached {
	c := &Cached{
		inner: pipeline,
		store: st,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// miss records one cache-miss position within a single Transform call
type miss struct {
	index int
	item  string
}

// Transform returns one vector per item, in input order. Vectors for items
// already present in the store are served from it; the remainder is computed
// by the inner pipeline in one batch and written back. See the package
// documentation for the exact sequencing and failure semantics.
func (c *Cached) Transform(ctx context.Context, items []string) ([][]float32, error) {
	if err := embedder.ValidateTexts(items); err != nil {
		return nil, err
	}

	// Step 1: probe per item, in order. Slots are keyed by index, not by
	// value, so duplicates are probed independently.
	slots := make([][]float32, len(items))
	var misses []miss
	for i, item := range items {
		vec, ok, err := c.lookup(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("cache probe for item %d: %w", i, err)
		}
		if ok {
			slots[i] = vec
			continue
		}
		misses = append(misses, miss{index: i, item: item})
	}
	c.count(uint64(len(items)-len(misses)), uint64(len(misses)), 0)

	if len(misses) == 0 {
		return slots, nil
	}

	// Step 2: one inner call with the ordered miss items only. On failure
	// the error propagates with no store writes for this call.
	missItems := make([]string, len(misses))
	for i, m := range misses {
		missItems[i] = m.item
	}
	computed, err := c.inner.Transform(ctx, missItems)
	c.count(0, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(computed) != len(missItems) {
		return nil, fmt.Errorf("%w: got %d, want %d", embedder.ErrShapeMismatch, len(computed), len(missItems))
	}

	// Step 3: fill slots and write through. A duplicate miss item is written
	// more than once; last writer wins and the vectors are equal, so the
	// redundant writes are harmless.
	for i, m := range misses {
		vec := computed[i]
		slots[m.index] = vec
		if err := c.writeBack(ctx, m.item, vec); err != nil {
			return nil, fmt.Errorf("write-back for item %d: %w", m.index, err)
		}
	}

	// Step 4: every slot is resolved; slots is already the dense,
	// input-ordered result.
	return slots, nil
}

// lookup probes the memory layer then the persistent store.
func (c *Cached) lookup(ctx context.Context, item string) ([]float32, bool, error) {
	if c.mem != nil {
		if vec, ok := c.mem.Get(item); ok {
			// Copy so caller mutations can't pollute the LRU
			return types.CloneVector(vec), true, nil
		}
	}

	vec, err := c.store.Get(ctx, item)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	if c.mem != nil {
		c.mem.Add(item, types.CloneVector(vec))
	}
	return vec, true, nil
}

// writeBack persists a freshly computed vector, then populates the memory
// layer. Store first: if the durable write fails the LRU must not serve the
// vector later.
func (c *Cached) writeBack(ctx context.Context, item string, vec []float32) error {
	if err := c.store.Set(ctx, item, vec); err != nil {
		return err
	}
	if c.mem != nil {
		c.mem.Add(item, types.CloneVector(vec))
	}
	return nil
}

func (c *Cached) count(hits, misses, innerCalls uint64) {
	c.mu.Lock()
	c.stats.Hits += hits
	c.stats.Misses += misses
	c.stats.InnerCalls += innerCalls
	c.mu.Unlock()
}

// Stats returns a snapshot of the wrapper's counters.
func (c *Cached) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Dimension returns the inner pipeline's embedding dimension
func (c *Cached) Dimension() int {
	return c.inner.Dimension()
}

// Provider returns the inner pipeline's provider name
func (c *Cached) Provider() string {
	return c.inner.Provider()
}

// Model returns the inner pipeline's model name
func (c *Cached) Model() string {
	return c.inner.Model()
}

// Close releases the inner pipeline. The store handle is owned by the caller
// and must be closed separately.
func (c *Cached) Close() error {
	return c.inner.Close()
}
