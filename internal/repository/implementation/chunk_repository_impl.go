package implementation

import (
	"context"

	"university-assistant-be/internal/entity"
	"university-assistant-be/internal/mapper"
	"university-assistant-be/internal/model"
	"university-assistant-be/internal/repository/contract"
	"university-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

const chunkInsertBatchSize = 200

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *ChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := r.mapper.ToModels(chunks)
	return r.db.WithContext(ctx).CreateInBatches(models, chunkInsertBatchSize).Error
}

func (r *ChunkRepositoryImpl) DeleteByGenerationIdNot(ctx context.Context, generationId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("generation_id <> ?", generationId).Delete(&model.UniversityChunk{}).Error
}

func (r *ChunkRepositoryImpl) CountByGenerationId(ctx context.Context, generationId uuid.UUID) (int64, error) {
	var count int64
	err := specification.Apply(
		r.db.WithContext(ctx).Model(&model.UniversityChunk{}),
		specification.ByGeneration{ID: generationId},
	).Count(&count).Error
	return count, err
}

// SearchActiveWithScore orders by pgvector cosine distance. Similarity is
// 1 - distance; equal distances fall back to build order. The active
// generation is joined in, so a concurrent publish is seen either entirely
// or not at all.
func (r *ChunkRepositoryImpl) SearchActiveWithScore(ctx context.Context, embedding []float32, limit int, university string) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.UniversityChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	query := r.db.WithContext(ctx).
		Table("university_chunks").
		Select("university_chunks.*, 1 - (university_chunks.embedding <=> ?) as similarity", queryVector)

	err := specification.Apply(query,
		specification.InActiveGeneration{},
		specification.ByUniversity{University: university},
	).
		Order(gorm.Expr("university_chunks.embedding <=> ?", queryVector)).
		Order("university_chunks.position ASC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredChunk, len(results))
	for i := range results {
		scored[i] = &contract.ScoredChunk{
			Chunk:      r.mapper.ToEntity(&results[i].UniversityChunk),
			Similarity: results[i].Similarity,
		}
	}
	return scored, nil
}
