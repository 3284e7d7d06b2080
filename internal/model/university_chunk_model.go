package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type UniversityChunk struct {
	Id           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	GenerationId uuid.UUID         `gorm:"type:uuid;not null;index"`
	University   string            `gorm:"type:varchar(64);index"`
	SourceFile   string            `gorm:"type:varchar(255)"`
	ChunkIndex   int               `gorm:"default:0"`
	Position     int               `gorm:"not null;index"`
	Content      string            `gorm:"type:text"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb"`
	Embedding    pgvector.Vector   `gorm:"type:vector(768)"`
	CreatedAt    time.Time         `gorm:"autoCreateTime"`
}

func (UniversityChunk) TableName() string {
	return "university_chunks"
}

type IndexGeneration struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Backend   string    `gorm:"type:varchar(32)"`
	Documents int
	Chunks    int
	Active    bool      `gorm:"default:false;index"`
	BuiltAt   time.Time `gorm:"autoCreateTime"`
}

func (IndexGeneration) TableName() string {
	return "index_generations"
}
