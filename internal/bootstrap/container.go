package bootstrap

import (
	"context"
	"fmt"

	"university-assistant-be/internal/config"
	"university-assistant-be/internal/controller"
	"university-assistant-be/internal/pkg/logger"
	"university-assistant-be/internal/repository/contract"
	"university-assistant-be/internal/repository/file"
	"university-assistant-be/internal/repository/pgvector"
	"university-assistant-be/internal/repository/unitofwork"
	"university-assistant-be/internal/service"
	"university-assistant-be/internal/websocket"
	"university-assistant-be/pkg/ai/router"
	"university-assistant-be/pkg/catalog"
	"university-assistant-be/pkg/database"
	"university-assistant-be/pkg/embedding"
	"university-assistant-be/pkg/embedding/jina"
	"university-assistant-be/pkg/llm/factory"
	pktNats "university-assistant-be/pkg/nats"
	"university-assistant-be/pkg/rag"
	"university-assistant-be/pkg/rag/intent"
	"university-assistant-be/pkg/retry"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	Config *config.Config
	Logger logger.ILogger

	// Controllers
	IndexController      controller.IIndexController
	NavigationController controller.INavigationController
	HealthController     controller.IHealthController

	// Core
	Catalog   *catalog.Catalog
	Router    *router.Router
	Responder *rag.Responder
	Index     contract.ChunkIndexRepository
	Indexer   service.IIndexerService
	Embedder  embedding.EmbeddingProvider

	// Background Services (Exposed for main.go to run)
	ConsumerService   service.IConsumerService
	IndexEventService service.IIndexEventService
	WebSocketHub      *websocket.Hub
	WebSocketSession  *websocket.Session

	closers []func()
}

// NewContainer wires every component. Optional infrastructure (Redis, NATS)
// is skipped with a warning when it is not configured or unreachable.
func NewContainer(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Config: cfg, Logger: sysLogger}

	// 1. Static tables
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if cfg.Catalog.DefaultUniversity != "" {
		if cat, err = cat.WithDefault(cfg.Catalog.DefaultUniversity); err != nil {
			return nil, err
		}
	}
	c.Catalog = cat
	c.Router = router.NewRouter(cat)

	// 2. Vector index backend
	c.Index, err = c.newIndexRepository()
	if err != nil {
		return nil, err
	}

	// 3. Providers
	retryCfg := retry.DefaultRetryConfig()
	retryCfg.Attempts = uint(max(cfg.Ai.RetryAttempts, 1))

	docEmbedder, err := newEmbeddingProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if retryCfg.Attempts > 1 {
		docEmbedder = embedding.NewRetryingProvider(docEmbedder, retryCfg)
	}
	c.Embedder = docEmbedder
	sysLogger.Info("Bootstrap", "Embedding provider ready", map[string]interface{}{"provider": cfg.Ai.EmbeddingProvider, "model": cfg.Ai.EmbeddingModel})

	llmProvider, err := factory.NewLLMProvider(ctx, factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  cfg.Ai.LLMBaseURL,
		APIKey:   llmAPIKey(cfg),
		Retry:    retryCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("init LLM provider: %w", err)
	}
	sysLogger.Info("Bootstrap", "LLM provider ready", map[string]interface{}{"provider": cfg.Ai.LLMProvider, "model": cfg.Ai.LLMModel})

	// 4. Optional infrastructure
	rdb := c.newRedis(ctx)
	queryEmbedder := embedding.NewCachedProvider(docEmbedder, cfg.Ai.EmbeddingProvider+":"+cfg.Ai.EmbeddingModel, rdb, cfg.Ai.EmbeddingCacheTTL)

	var eventPublisher service.EventPublisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("Bootstrap", "NATS publisher unavailable, index events disabled", map[string]interface{}{"error": err.Error()})
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}

		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("Bootstrap", "NATS subscriber unavailable", map[string]interface{}{"error": err.Error()})
		} else {
			c.IndexEventService = service.NewIndexEventService(natsSub, c.Index, sysLogger)
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// 5. Services
	c.Indexer = service.NewIndexerService(c.Index, docEmbedder, eventPublisher, sysLogger, service.IndexerConfig{
		ChunkSize:   cfg.Index.ChunkSize,
		Overlap:     cfg.Index.Overlap,
		Concurrency: cfg.Index.Concurrency,
	})

	c.Responder = rag.NewResponder(intent.NewDetector(cat), queryEmbedder, c.Index, llmProvider, sysLogger, rag.Config{
		TopK:              cfg.Index.TopK,
		Temperature:       cfg.Ai.Temperature,
		MaxTokens:         cfg.Ai.MaxTokens,
		CompletionTimeout: cfg.Ai.CompletionTimeout,
	})

	// 6. Rebuild queue
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 8}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, func() { _ = pubSub.Close() })
	publisherService := service.NewPublisherService(cfg.Keys.RebuildTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Keys.RebuildTopic, c.Indexer, cfg.Index.DataDir, sysLogger)

	// 7. WebSocket
	c.WebSocketHub = websocket.NewHub(sysLogger)
	c.WebSocketSession = websocket.NewSession(c.Router, c.Responder, logger.NewIsolatedLogger(cfg.App.SessionLogFilePath))

	// 8. Controllers
	c.IndexController = controller.NewIndexController(c.Indexer, publisherService, cfg.Index.DataDir)
	c.NavigationController = controller.NewNavigationController(c.Router)
	c.HealthController = controller.NewHealthController(c.WebSocketHub)

	return c, nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func (c *Container) newIndexRepository() (contract.ChunkIndexRepository, error) {
	switch c.Config.Index.Backend {
	case file.BackendName, "":
		return file.NewChunkIndexRepository(c.Config.Index.Path), nil
	case pgvector.BackendName:
		db, err := database.NewGormDBFromDSN(c.Config.Database.Connection, !c.Config.IsProduction())
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			c.closers = append(c.closers, func() { _ = sqlDB.Close() })
		}
		return pgvector.NewChunkIndexRepository(unitofwork.NewRepositoryFactory(db)), nil
	default:
		return nil, fmt.Errorf("unsupported index backend: %s", c.Config.Index.Backend)
	}
}

func (c *Container) newRedis(ctx context.Context) *redis.Client {
	if c.Config.App.RedisURL == "" {
		return nil
	}
	opt, err := redis.ParseURL(c.Config.App.RedisURL)
	if err != nil {
		c.Logger.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: c.Config.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		c.Logger.Warn("Bootstrap", "Redis unreachable, embedding cache is process-local", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return rdb
}

func newEmbeddingProvider(ctx context.Context, cfg *config.Config) (embedding.EmbeddingProvider, error) {
	switch cfg.Ai.EmbeddingProvider {
	case "ollama", "":
		return embedding.NewOllamaProvider(cfg.Ai.EmbeddingBaseURL, cfg.Ai.EmbeddingModel), nil
	case "jina":
		if cfg.Keys.Jina == "" {
			return nil, fmt.Errorf("jina embeddings require JINA_API_KEY")
		}
		return jina.NewJinaProvider(cfg.Keys.Jina, cfg.Ai.EmbeddingBaseURL, cfg.Ai.EmbeddingModel), nil
	case "gemini":
		return embedding.NewGeminiProvider(ctx, cfg.Keys.GoogleGemini, cfg.Ai.EmbeddingModel)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Ai.EmbeddingProvider)
	}
}

func llmAPIKey(cfg *config.Config) string {
	switch cfg.Ai.LLMProvider {
	case "huggingface":
		return cfg.Keys.HuggingFace
	case "gemini":
		return cfg.Keys.GoogleGemini
	default:
		return cfg.Keys.Groq
	}
}
