package embedder

import (
	"fmt"
	"os"
	"strings"
)

// Config holds embedder configuration
type Config struct {
	Provider string
	APIKey   string
}

// NewFromEnv creates an embedding pipeline based on environment variables.
// Priority:
//  1. EMBEDCACHE_PROVIDER (jina, openai, local)
//  2. Check for API keys: JINA_API_KEY, OPENAI_API_KEY
//  3. Default to local if no API keys found
func NewFromEnv() (Transformer, error) {
	provider := os.Getenv(EnvProvider)
	jinaKey := os.Getenv(EnvJinaAPIKey)
	openaiKey := os.Getenv(EnvOpenAIAPIKey)

	// Explicit provider selection
	if provider != "" {
		provider = strings.ToLower(provider)
		switch provider {
		case ProviderJina:
			return NewJinaProvider(jinaKey)
		case ProviderOpenAI:
			return NewOpenAIProvider(openaiKey)
		case ProviderLocal:
			return NewLocalProvider()
		default:
			return nil, fmt.Errorf("%w: unknown provider %s", ErrUnsupportedModel, provider)
		}
	}

	// Auto-detect based on available API keys
	if jinaKey != "" {
		return NewJinaProvider(jinaKey)
	}
	if openaiKey != "" {
		return NewOpenAIProvider(openaiKey)
	}

	// Fallback to local provider
	return NewLocalProvider()
}

// New creates an embedding pipeline with explicit configuration
func New(cfg Config) (Transformer, error) {
	provider := strings.ToLower(cfg.Provider)
	switch provider {
	case ProviderJina:
		return NewJinaProvider(cfg.APIKey)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey)
	case ProviderLocal:
		return NewLocalProvider()
	default:
		return nil, fmt.Errorf("%w: unknown provider %s", ErrUnsupportedModel, cfg.Provider)
	}
}

// DetectProvider returns the provider that would be used based on the
// current environment
func DetectProvider() string {
	provider := os.Getenv(EnvProvider)
	if provider != "" {
		return strings.ToLower(provider)
	}

	if os.Getenv(EnvJinaAPIKey) != "" {
		return ProviderJina
	}
	if os.Getenv(EnvOpenAIAPIKey) != "" {
		return ProviderOpenAI
	}

	return ProviderLocal
}
