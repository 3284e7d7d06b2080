package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is one corpus file loaded for indexing
type Document struct {
	University string
	SourceFile string
	Path       string
	Text       string
}

// Chunk is a bounded slice of a document together with its embedding.
// Position is the chunk's ordinal within its index generation and breaks
// similarity ties.
type Chunk struct {
	Id           uuid.UUID
	GenerationId uuid.UUID
	University   string
	SourceFile   string
	ChunkIndex   int
	Position     int
	Text         string
	Embedding    []float32
}

// IndexGeneration describes one complete, published build of the vector index
type IndexGeneration struct {
	Id        uuid.UUID
	Backend   string
	Documents int
	Chunks    int
	Active    bool
	BuiltAt   time.Time
}
