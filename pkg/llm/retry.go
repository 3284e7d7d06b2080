package llm

import (
	"context"

	"university-assistant-be/pkg/retry"
)

// RetryingProvider retries a wrapped provider on error
type RetryingProvider struct {
	next LLMProvider
	cfg  retry.RetryConfig
}

var _ LLMProvider = (*RetryingProvider)(nil)

func NewRetryingProvider(next LLMProvider, cfg retry.RetryConfig) *RetryingProvider {
	return &RetryingProvider{next: next, cfg: cfg}
}

func (p *RetryingProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	return retry.Do(ctx, p.cfg, func() (string, error) {
		return p.next.Chat(ctx, history, options...)
	})
}

func (p *RetryingProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return retry.Do(ctx, p.cfg, func() (string, error) {
		return p.next.Generate(ctx, prompt, options...)
	})
}
