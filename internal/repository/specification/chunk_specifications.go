package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByGeneration restricts chunks to one index generation.
type ByGeneration struct {
	ID uuid.UUID
}

func (s ByGeneration) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("generation_id = ?", s.ID)
}

// ByUniversity restricts chunks to one university. An empty University
// matches every chunk.
type ByUniversity struct {
	University string
}

func (s ByUniversity) Apply(db *gorm.DB) *gorm.DB {
	if s.University == "" {
		return db
	}
	return db.Where("university = ?", s.University)
}

// InActiveGeneration restricts chunks to the active generation with a join, so
// the generation lookup and the chunk scan share one statement snapshot.
type InActiveGeneration struct{}

func (InActiveGeneration) Apply(db *gorm.DB) *gorm.DB {
	return db.Joins("JOIN index_generations ON index_generations.id = university_chunks.generation_id AND index_generations.active = ?", true)
}

// ActiveGeneration selects the generation readers should use.
type ActiveGeneration struct{}

func (ActiveGeneration) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}
