// Package embedder provides the embedding pipelines that the cache-aside
// wrapper intercepts.
//
// A pipeline is anything implementing Transformer: given an ordered list of
// input texts it returns one vector per input, in the same order. Three
// providers ship with the module:
//
//   - OpenAI (api.openai.com, text-embedding-3-small)
//   - Jina AI (api.jina.ai, jina-embeddings-v3)
//   - Local (deterministic hash-based vectors, offline use and tests)
//
// # Provider Selection
//
// NewFromEnv selects a provider based on environment variables:
//
//  1. If EMBEDCACHE_PROVIDER is set → use the specified provider
//  2. Else if JINA_API_KEY is set → use Jina AI
//  3. Else if OPENAI_API_KEY is set → use OpenAI
//  4. Else → fallback to the local provider (offline mode)
//
// HTTP providers retry transient failures with exponential backoff and give
// up after MaxRetries attempts. Cancellation is honored between attempts.
//
// Providers perform no caching themselves; wrap any Transformer with the
// cache package to skip recomputation of previously seen inputs.
package embedder
