package bootstrap

import (
	"context"

	"university-assistant-be/internal/config"
	"university-assistant-be/internal/pkg/logger"
	"university-assistant-be/internal/service"
	"university-assistant-be/pkg/embedding"
	pktNats "university-assistant-be/pkg/nats"
	"university-assistant-be/pkg/retry"
)

// NewIngestion wires only what an offline index build needs: the index
// backend, the document embedder and, when configured, the event publisher.
// No completion provider is created.
func NewIngestion(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Config: cfg, Logger: sysLogger}

	index, err := c.newIndexRepository()
	if err != nil {
		return nil, err
	}
	c.Index = index

	embedder, err := newEmbeddingProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Ai.RetryAttempts > 1 {
		retryCfg := retry.DefaultRetryConfig()
		retryCfg.Attempts = uint(cfg.Ai.RetryAttempts)
		embedder = embedding.NewRetryingProvider(embedder, retryCfg)
	}

	c.Embedder = embedder

	var publisher service.EventPublisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("Bootstrap", "NATS publisher unavailable, running instances will not reload", map[string]interface{}{"error": err.Error()})
		} else {
			publisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	c.Indexer = service.NewIndexerService(index, embedder, publisher, sysLogger, service.IndexerConfig{
		ChunkSize:   cfg.Index.ChunkSize,
		Overlap:     cfg.Index.Overlap,
		Concurrency: cfg.Index.Concurrency,
	})
	return c, nil
}
