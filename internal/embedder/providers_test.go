package embedder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestProvider points an httpProvider at a mock server
func newTestProvider(serverURL string) *httpProvider {
	return &httpProvider{
		name:      ProviderJina,
		apiKey:    "test-key",
		model:     DefaultJinaModel,
		dimension: 4,
		endpoint:  serverURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func TestHTTPProvider_Transform(t *testing.T) {
	t.Run("successful batch", func(t *testing.T) {
		callCount := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callCount++

			if r.Method != "POST" {
				t.Errorf("Expected POST request, got %s", r.Method)
			}
			if r.Header.Get("Authorization") != "Bearer test-key" {
				t.Errorf("Missing or incorrect Authorization header")
			}

			var req struct {
				Input []string `json:"input"`
				Model string   `json:"model"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("Failed to decode request: %v", err)
			}

			data := make([]map[string]interface{}, len(req.Input))
			for i := range req.Input {
				data[i] = map[string]interface{}{
					"index":     i,
					"embedding": []float32{float32(i), 1, 2, 3},
				}
			}
			resp := map[string]interface{}{
				"model": req.Model,
				"data":  data,
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		provider := newTestProvider(server.URL)
		vectors, err := provider.Transform(context.Background(), []string{"a", "b", "c"})
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}

		if len(vectors) != 3 {
			t.Fatalf("Got %d vectors, want 3", len(vectors))
		}
		if callCount != 1 {
			t.Errorf("API called %d times, want 1", callCount)
		}
		if vectors[2][0] != 2 {
			t.Errorf("Vector order not preserved: vectors[2][0] = %f, want 2", vectors[2][0])
		}
	})

	t.Run("out of order response is reordered by index", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp := map[string]interface{}{
				"model": "test",
				"data": []map[string]interface{}{
					{"index": 1, "embedding": []float32{1}},
					{"index": 0, "embedding": []float32{0}},
				},
			}
			_ = json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		provider := newTestProvider(server.URL)
		vectors, err := provider.Transform(context.Background(), []string{"a", "b"})
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		if vectors[0][0] != 0 || vectors[1][0] != 1 {
			t.Errorf("Vectors not reordered by index: %v", vectors)
		}
	})

	t.Run("retries then fails", func(t *testing.T) {
		callCount := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callCount++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		provider := newTestProvider(server.URL)
		_, err := provider.Transform(context.Background(), []string{"a"})
		if err == nil {
			t.Fatal("Expected error after retries")
		}
		if callCount != MaxRetries {
			t.Errorf("API called %d times, want %d", callCount, MaxRetries)
		}
	})

	t.Run("wrong vector count", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp := map[string]interface{}{
				"model": "test",
				"data": []map[string]interface{}{
					{"index": 0, "embedding": []float32{1}},
				},
			}
			_ = json.NewEncoder(w).Encode(resp)
		}))
		defer server.Close()

		provider := newTestProvider(server.URL)
		_, err := provider.Transform(context.Background(), []string{"a", "b"})
		if err == nil {
			t.Fatal("Expected shape mismatch error")
		}
	})

	t.Run("validation errors", func(t *testing.T) {
		provider := newTestProvider("http://unused")

		_, err := provider.Transform(context.Background(), []string{"ok", ""})
		if err == nil {
			t.Error("Expected error for empty text")
		}

		largeTexts := make([]string, MaxBatchSize+1)
		for i := range largeTexts {
			largeTexts[i] = "text"
		}
		_, err = provider.Transform(context.Background(), largeTexts)
		if err == nil {
			t.Error("Expected error for oversized batch")
		}
	})

	t.Run("empty batch returns empty without calling API", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		provider := newTestProvider(server.URL)
		vectors, err := provider.Transform(context.Background(), nil)
		if err != nil {
			t.Fatalf("Transform() error = %v", err)
		}
		if len(vectors) != 0 {
			t.Errorf("Got %d vectors, want 0", len(vectors))
		}
		if called {
			t.Error("API should not be called for an empty batch")
		}
	})
}

func TestJinaProvider_Metadata(t *testing.T) {
	provider, err := NewJinaProvider("test-key")
	if err != nil {
		t.Fatalf("NewJinaProvider() error = %v", err)
	}
	defer provider.Close()

	if provider.Provider() != ProviderJina {
		t.Errorf("Provider() = %s, want %s", provider.Provider(), ProviderJina)
	}
	if provider.Dimension() != JinaDimension {
		t.Errorf("Dimension() = %d, want %d", provider.Dimension(), JinaDimension)
	}
	if provider.Model() != DefaultJinaModel {
		t.Errorf("Model() = %s, want %s", provider.Model(), DefaultJinaModel)
	}
}

func TestOpenAIProvider_Metadata(t *testing.T) {
	provider, err := NewOpenAIProvider("test-key")
	if err != nil {
		t.Fatalf("NewOpenAIProvider() error = %v", err)
	}
	defer provider.Close()

	if provider.Provider() != ProviderOpenAI {
		t.Errorf("Provider() = %s, want %s", provider.Provider(), ProviderOpenAI)
	}
	if provider.Dimension() != OpenAIDimension {
		t.Errorf("Dimension() = %d, want %d", provider.Dimension(), OpenAIDimension)
	}
}

func TestProviders_MissingAPIKey(t *testing.T) {
	t.Setenv(EnvJinaAPIKey, "")
	t.Setenv(EnvOpenAIAPIKey, "")

	if _, err := NewJinaProvider(""); err == nil {
		t.Error("Expected error for missing Jina API key")
	}
	if _, err := NewOpenAIProvider(""); err == nil {
		t.Error("Expected error for missing OpenAI API key")
	}
}
