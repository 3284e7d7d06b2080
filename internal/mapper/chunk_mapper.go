package mapper

import (
	"university-assistant-be/internal/entity"
	"university-assistant-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

func (m *ChunkMapper) ToEntity(c *model.UniversityChunk) *entity.Chunk {
	if c == nil {
		return nil
	}
	return &entity.Chunk{
		Id:           c.Id,
		GenerationId: c.GenerationId,
		University:   c.University,
		SourceFile:   c.SourceFile,
		ChunkIndex:   c.ChunkIndex,
		Position:     c.Position,
		Text:         c.Content,
		Embedding:    c.Embedding.Slice(),
	}
}

func (m *ChunkMapper) ToModel(c *entity.Chunk) *model.UniversityChunk {
	if c == nil {
		return nil
	}
	return &model.UniversityChunk{
		Id:           c.Id,
		GenerationId: c.GenerationId,
		University:   c.University,
		SourceFile:   c.SourceFile,
		ChunkIndex:   c.ChunkIndex,
		Position:     c.Position,
		Content:      c.Text,
		Metadata: datatypes.JSONMap{
			"university":  c.University,
			"source_file": c.SourceFile,
		},
		Embedding: pgvector.NewVector(c.Embedding),
	}
}

func (m *ChunkMapper) ToModels(chunks []*entity.Chunk) []*model.UniversityChunk {
	models := make([]*model.UniversityChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}

func (m *ChunkMapper) GenerationToEntity(g *model.IndexGeneration) *entity.IndexGeneration {
	if g == nil {
		return nil
	}
	return &entity.IndexGeneration{
		Id:        g.Id,
		Backend:   g.Backend,
		Documents: g.Documents,
		Chunks:    g.Chunks,
		Active:    g.Active,
		BuiltAt:   g.BuiltAt,
	}
}

func (m *ChunkMapper) GenerationToModel(g *entity.IndexGeneration) *model.IndexGeneration {
	if g == nil {
		return nil
	}
	return &model.IndexGeneration{
		Id:        g.Id,
		Backend:   g.Backend,
		Documents: g.Documents,
		Chunks:    g.Chunks,
		Active:    g.Active,
		BuiltAt:   g.BuiltAt,
	}
}
