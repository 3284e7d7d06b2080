package factory

import (
	"context"
	"fmt"

	"university-assistant-be/pkg/llm"
	"university-assistant-be/pkg/llm/gemini"
	"university-assistant-be/pkg/llm/ollama"
	"university-assistant-be/pkg/llm/openaicompat"
	"university-assistant-be/pkg/retry"
)

// Config selects and parameterizes a completion backend
type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Retry    retry.RetryConfig
}

// NewLLMProvider builds the configured provider wrapped in the retry decorator
func NewLLMProvider(ctx context.Context, cfg Config) (llm.LLMProvider, error) {
	var (
		p   llm.LLMProvider
		err error
	)

	switch cfg.Provider {
	case "groq", "":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("groq provider requires GROQ_API_KEY")
		}
		p = openaicompat.NewGroqProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case "huggingface":
		p = openaicompat.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case "ollama":
		p = ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model)
	case "gemini":
		p, err = gemini.NewProvider(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}

	if cfg.Retry.Attempts > 1 {
		p = llm.NewRetryingProvider(p, cfg.Retry)
	}
	return p, nil
}
