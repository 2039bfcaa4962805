package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dshills/embedcache/internal/batch"
	"github.com/dshills/embedcache/internal/cache"
	"github.com/dshills/embedcache/internal/embedder"
	"github.com/dshills/embedcache/internal/store"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

const usage = `embedcache - persistent embedding cache

Usage:
  embedcache stats <cache.db>          show entry count and keys
  embedcache get <cache.db> <key>      print the cached vector for key
  embedcache warm <cache.db>           embed stdin lines through the cache
  embedcache --version                 print build information

The embedding provider for warm is selected via EMBEDCACHE_PROVIDER
(jina, openai, local) or auto-detected from JINA_API_KEY / OPENAI_API_KEY.
`

func main() {
	log.SetOutput(os.Stderr)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if os.Args[1] == "--version" {
		fmt.Printf("embedcache\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		fmt.Printf("Build Mode: %s\n", store.BuildMode)
		fmt.Printf("SQLite Driver: %s\n", store.DriverName)
		return
	}

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "stats":
		err = runStats(ctx, os.Args[2:])
	case "get":
		err = runGet(ctx, os.Args[2:])
	case "warm":
		err = runWarm(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("embedcache %s: %v", os.Args[1], err)
	}
}

func openStore(args []string) (*store.SQLiteStore, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("cache path required")
	}
	return store.NewSQLiteStore(args[0])
}

func runStats(ctx context.Context, args []string) error {
	st, err := openStore(args)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.Len(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Entries: %d\n", n)

	keys, err := st.Keys(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		fmt.Println(key)
	}
	return nil
}

func runGet(ctx context.Context, args []string) error {
	st, err := openStore(args)
	if err != nil {
		return err
	}
	defer st.Close()

	if len(args) < 2 {
		return fmt.Errorf("key required")
	}

	entry, err := st.GetEntry(ctx, args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Key: %s\nDimension: %d\nCreated: %s\n", entry.Key, entry.Dimension, entry.CreatedAt)
	parts := make([]string, len(entry.Vector))
	for i, v := range entry.Vector {
		parts[i] = fmt.Sprintf("%g", v)
	}
	fmt.Printf("Vector: [%s]\n", strings.Join(parts, " "))
	return nil
}

// warmBatchSize bounds how many stdin lines go to the provider per call
const warmBatchSize = 64

func runWarm(ctx context.Context, args []string) error {
	st, err := openStore(args)
	if err != nil {
		return err
	}
	defer st.Close()

	pipeline, err := embedder.NewFromEnv()
	if err != nil {
		return err
	}
	log.Printf("Using provider %s (%s)", pipeline.Provider(), pipeline.Model())

	cached := cache.New(pipeline, st, cache.WithMemoryCache(0))
	defer cached.Close()

	var lines []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	batches, err := batch.BatchedSlice(lines, warmBatchSize)
	if err != nil {
		return err
	}

	total := 0
	for chunk := range batches {
		if _, err := cached.Transform(ctx, chunk); err != nil {
			return err
		}
		total += len(chunk)
	}

	stats := cached.Stats()
	log.Printf("Warmed %d items: %d hits, %d misses, %d provider calls",
		total, stats.Hits, stats.Misses, stats.InnerCalls)
	return nil
}
