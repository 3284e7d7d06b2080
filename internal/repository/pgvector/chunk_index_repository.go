package pgvector

import (
	"context"
	"fmt"
	"time"

	"university-assistant-be/internal/entity"
	"university-assistant-be/internal/repository/contract"
	"university-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const BackendName = "pgvector"

// ChunkIndexRepository stores the vector index in Postgres. Each build is an
// index generation; publishing inserts the generation and flips it active in a
// single transaction, so concurrent readers keep seeing the previous one until
// commit.
type ChunkIndexRepository struct {
	factory unitofwork.RepositoryFactory
}

var _ contract.ChunkIndexRepository = (*ChunkIndexRepository)(nil)

func NewChunkIndexRepository(factory unitofwork.RepositoryFactory) *ChunkIndexRepository {
	return &ChunkIndexRepository{factory: factory}
}

func (r *ChunkIndexRepository) Publish(ctx context.Context, generation *entity.IndexGeneration, chunks []*entity.Chunk) (err error) {
	uow := r.factory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("begin publish: %w", err)
	}
	defer func() {
		if err != nil {
			_ = uow.Rollback()
		}
	}()

	if generation.Id == uuid.Nil {
		generation.Id = uuid.New()
	}
	generation.Backend = BackendName
	generation.Chunks = len(chunks)
	generation.Active = false
	if generation.BuiltAt.IsZero() {
		generation.BuiltAt = time.Now()
	}
	if err = uow.IndexGenerationRepository().Create(ctx, generation); err != nil {
		return fmt.Errorf("create generation: %w", err)
	}

	for i, c := range chunks {
		if c.Id == uuid.Nil {
			c.Id = uuid.New()
		}
		c.GenerationId = generation.Id
		c.Position = i
	}
	if err = uow.ChunkRepository().CreateBulk(ctx, chunks); err != nil {
		return fmt.Errorf("insert chunks: %w", err)
	}

	if err = uow.IndexGenerationRepository().Activate(ctx, generation.Id); err != nil {
		return fmt.Errorf("activate generation: %w", err)
	}
	if err = uow.ChunkRepository().DeleteByGenerationIdNot(ctx, generation.Id); err != nil {
		return fmt.Errorf("drop old chunks: %w", err)
	}
	if err = uow.IndexGenerationRepository().DeleteExcept(ctx, generation.Id); err != nil {
		return fmt.Errorf("drop old generations: %w", err)
	}

	if err = uow.Commit(); err != nil {
		return fmt.Errorf("commit publish: %w", err)
	}
	generation.Active = true
	return nil
}

// SearchSimilar reads the active generation and its chunks in one statement.
// Only an empty result needs the follow-up lookup that tells "no index" apart
// from "no matching chunks".
func (r *ChunkIndexRepository) SearchSimilar(ctx context.Context, embedding []float32, limit int, university string) ([]*contract.ScoredChunk, error) {
	uow := r.factory.NewUnitOfWork(ctx)

	results, err := uow.ChunkRepository().SearchActiveWithScore(ctx, embedding, limit, university)
	if err != nil {
		return nil, fmt.Errorf("search active generation: %w", err)
	}
	if len(results) > 0 {
		return results, nil
	}

	active, err := uow.IndexGenerationRepository().FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("find active generation: %w", err)
	}
	if active == nil {
		return nil, contract.ErrIndexNotFound
	}
	return results, nil
}

func (r *ChunkIndexRepository) ActiveGeneration(ctx context.Context) (*entity.IndexGeneration, error) {
	active, err := r.factory.NewUnitOfWork(ctx).IndexGenerationRepository().FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, contract.ErrIndexNotFound
	}
	return active, nil
}

// Reload is a no-op: every query reads the active generation from the database.
func (r *ChunkIndexRepository) Reload(ctx context.Context) error {
	return nil
}
