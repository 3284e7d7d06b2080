package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"university-assistant-be/pkg/llm"
	"university-assistant-be/pkg/llm/ollama"
	"university-assistant-be/pkg/llm/openaicompat"
	"university-assistant-be/pkg/retry"
)

func TestNewLLMProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewLLMProvider(ctx, Config{Provider: "groq", APIKey: "k", Model: "qwen/qwen3-32b"})
	require.NoError(t, err)
	assert.IsType(t, &openaicompat.Provider{}, p)

	p, err = NewLLMProvider(ctx, Config{Provider: "ollama", Model: "qwen3", Retry: retry.RetryConfig{Attempts: 3}})
	require.NoError(t, err)
	assert.IsType(t, &llm.RetryingProvider{}, p)

	p, err = NewLLMProvider(ctx, Config{Provider: "ollama"})
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaProvider{}, p)

	_, err = NewLLMProvider(ctx, Config{Provider: "groq"})
	assert.Error(t, err)

	_, err = NewLLMProvider(ctx, Config{Provider: "gemini"})
	assert.Error(t, err)

	_, err = NewLLMProvider(ctx, Config{Provider: "palm"})
	assert.Error(t, err)
}
