package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"university-assistant-be/pkg/llm"
)

func TestOllamaProvider_Generate(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(chatResponse{Message: chatMessage{Role: "assistant", Content: "Classes start in September."}, Done: true})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "qwen3:8b")
	out, err := p.Generate(context.Background(), "When do classes start?", llm.WithTemperature(0.05), llm.WithMaxTokens(3000))

	require.NoError(t, err)
	assert.Equal(t, "Classes start in September.", out)
	assert.Equal(t, "qwen3:8b", got.Model)
	assert.False(t, got.Stream)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.InDelta(t, 0.05, got.Options.Temperature, 1e-9)
	assert.Equal(t, 3000, got.Options.NumPredict)
}

func TestOllamaProvider_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "missing").Generate(context.Background(), "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
