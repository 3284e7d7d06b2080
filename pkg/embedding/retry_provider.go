package embedding

import (
	"context"

	"university-assistant-be/pkg/retry"
)

// RetryingProvider retries transient embedding failures
type RetryingProvider struct {
	next EmbeddingProvider
	cfg  retry.RetryConfig
}

var _ EmbeddingProvider = (*RetryingProvider)(nil)

func NewRetryingProvider(next EmbeddingProvider, cfg retry.RetryConfig) *RetryingProvider {
	return &RetryingProvider{next: next, cfg: cfg}
}

func (p *RetryingProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	return retry.Do(ctx, p.cfg, func() (*EmbeddingResponse, error) {
		return p.next.Generate(ctx, text, taskType)
	})
}
