package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"university-assistant-be/internal/pkg/logger"
	"university-assistant-be/internal/repository/contract"
	"university-assistant-be/internal/tracer"
	"university-assistant-be/pkg/embedding"
	"university-assistant-be/pkg/llm"
	"university-assistant-be/pkg/rag/intent"
	"university-assistant-be/pkg/rag/prompt"
	"university-assistant-be/pkg/rag/response"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrRetrievalUnavailable covers a missing index as well as embedding or
	// search failures for the query.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")
	// ErrCompletionUnavailable covers completion transport errors and timeouts.
	ErrCompletionUnavailable = errors.New("completion unavailable")
)

const contextSeparator = "\n\n"

type Config struct {
	TopK              int
	Temperature       float64
	MaxTokens         int
	CompletionTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		TopK:              5,
		Temperature:       0.05,
		MaxTokens:         3000,
		CompletionTimeout: 60 * time.Second,
	}
}

// Responder answers knowledge-base questions from the vector index.
type Responder struct {
	detector *intent.Detector
	embedder embedding.EmbeddingProvider
	index    contract.ChunkIndexRepository
	llm      llm.LLMProvider
	logger   logger.ILogger
	cfg      Config
	tracer   trace.Tracer
}

func NewResponder(
	detector *intent.Detector,
	embedder embedding.EmbeddingProvider,
	index contract.ChunkIndexRepository,
	provider llm.LLMProvider,
	log logger.ILogger,
	cfg Config,
) *Responder {
	def := DefaultConfig()
	if cfg.TopK <= 0 {
		cfg.TopK = def.TopK
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = def.MaxTokens
	}
	if cfg.CompletionTimeout <= 0 {
		cfg.CompletionTimeout = def.CompletionTimeout
	}
	return &Responder{
		detector: detector,
		embedder: embedder,
		index:    index,
		llm:      provider,
		logger:   log,
		cfg:      cfg,
		tracer:   tracer.Tracer("rag"),
	}
}

// Answer runs detect, retrieve, render, complete and clean for one query.
func (r *Responder) Answer(ctx context.Context, query string) (answer string, err error) {
	ctx, span := r.tracer.Start(ctx, "rag.answer")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	university, scoped := r.detector.Detect(query)
	span.SetAttributes(attribute.String("rag.university", university))

	chunks, err := r.retrieve(ctx, query, university)
	if err != nil {
		return "", err
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Chunk.Text
	}
	rendered := prompt.NewStudentBuilder(strings.Join(texts, contextSeparator), query).Build()

	r.logger.Info("Responder", "Context retrieved", map[string]interface{}{
		"query":      truncate(query, 80),
		"university": university,
		"scoped":     scoped,
		"chunks":     len(chunks),
	})

	raw, err := r.complete(ctx, rendered)
	if err != nil {
		return "", err
	}
	return response.CleanModelOutput(raw), nil
}

func (r *Responder) retrieve(ctx context.Context, query, university string) ([]*contract.ScoredChunk, error) {
	ctx, span := r.tracer.Start(ctx, "rag.retrieve")
	defer span.End()

	emb, err := r.embedder.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		span.RecordError(err)
		r.logger.Error("Responder", "Query embedding failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("%w: %w", ErrRetrievalUnavailable, err)
	}

	chunks, err := r.index.SearchSimilar(ctx, emb.Embedding.Values, r.cfg.TopK, university)
	if err != nil {
		span.RecordError(err)
		r.logger.Error("Responder", "Vector search failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("%w: %w", ErrRetrievalUnavailable, err)
	}
	span.SetAttributes(attribute.Int("rag.chunks", len(chunks)))
	return chunks, nil
}

func (r *Responder) complete(ctx context.Context, rendered string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.CompletionTimeout)
	defer cancel()

	ctx, span := r.tracer.Start(ctx, "rag.complete")
	defer span.End()

	raw, err := r.llm.Generate(ctx, rendered,
		llm.WithTemperature(r.cfg.Temperature),
		llm.WithMaxTokens(r.cfg.MaxTokens),
	)
	if err != nil {
		span.RecordError(err)
		r.logger.Error("Responder", "Completion failed", map[string]interface{}{"error": err.Error()})
		return "", fmt.Errorf("%w: %w", ErrCompletionUnavailable, err)
	}
	return raw, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
