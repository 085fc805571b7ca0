package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openjuris/summarizer/internal/config"
)

func geminiConfig(url string) config.ProviderConfig {
	return config.ProviderConfig{
		APIKey:      "gm-key",
		Model:       "gemini-1.5-flash",
		BaseURL:     url,
		Temperature: 0.1,
		MaxTokens:   2000,
	}
}

func TestGeminiComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "gm-key", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "user", req.Contents[0].Role)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{
					"content": map[string]any{
						"parts": []map[string]any{
							{"text": "part one "},
							{"text": "part two"},
						},
					},
					"finishReason": "STOP",
				},
			},
		})
	}))
	defer srv.Close()

	g := NewGemini(geminiConfig(srv.URL), zap.NewNop())
	out, err := g.Complete(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, "part one part two", out)
}

func TestGeminiCompleteAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 400, "message": "bad request"},
		})
	}))
	defer srv.Close()

	g := NewGemini(geminiConfig(srv.URL), zap.NewNop())
	_, err := g.Complete(context.Background(), "question")
	require.Error(t, err)

	var invErr *InvocationError
	require.ErrorAs(t, err, &invErr)
	assert.Equal(t, "gemini", invErr.Provider)
}

func TestGeminiCompleteNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	g := NewGemini(geminiConfig(srv.URL), zap.NewNop())
	_, err := g.Complete(context.Background(), "question")
	require.Error(t, err)
}
