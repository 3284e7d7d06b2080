package contract

import (
	"context"
	"errors"

	"university-assistant-be/internal/entity"

	"github.com/google/uuid"
)

// ErrIndexNotFound is returned when no index generation has been published yet.
var ErrIndexNotFound = errors.New("vector index not found")

// ScoredChunk wraps a Chunk with its cosine similarity to the query
type ScoredChunk struct {
	Chunk      *entity.Chunk
	Similarity float64
}

// ChunkIndexRepository is the persisted vector index. Publish replaces the
// whole index at once; readers see either the previous or the new generation,
// never a mix.
type ChunkIndexRepository interface {
	Publish(ctx context.Context, generation *entity.IndexGeneration, chunks []*entity.Chunk) error
	// SearchSimilar returns up to limit chunks ordered by similarity. An empty
	// university searches every chunk.
	SearchSimilar(ctx context.Context, embedding []float32, limit int, university string) ([]*ScoredChunk, error)
	ActiveGeneration(ctx context.Context) (*entity.IndexGeneration, error)
	// Reload re-reads the published index from durable storage.
	Reload(ctx context.Context) error
}

type ChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.Chunk) error
	DeleteByGenerationIdNot(ctx context.Context, generationId uuid.UUID) error
	CountByGenerationId(ctx context.Context, generationId uuid.UUID) (int64, error)
	// SearchActiveWithScore searches the active generation in a single statement.
	SearchActiveWithScore(ctx context.Context, embedding []float32, limit int, university string) ([]*ScoredChunk, error)
}

type IndexGenerationRepository interface {
	Create(ctx context.Context, generation *entity.IndexGeneration) error
	// FindActive returns nil, nil when no generation is active.
	FindActive(ctx context.Context) (*entity.IndexGeneration, error)
	Activate(ctx context.Context, id uuid.UUID) error
	DeleteExcept(ctx context.Context, id uuid.UUID) error
}
