package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"university-assistant-be/internal/entity"
	"university-assistant-be/internal/repository/contract"
	"university-assistant-be/pkg/embedding"

	"github.com/google/uuid"
)

const (
	BackendName = "file"
	indexFile   = "index.json"
)

type storedGeneration struct {
	Id        uuid.UUID `json:"id"`
	Documents int       `json:"documents"`
	Chunks    int       `json:"chunks"`
	BuiltAt   time.Time `json:"built_at"`
}

type storedChunk struct {
	Id         uuid.UUID `json:"id"`
	University string    `json:"university"`
	SourceFile string    `json:"source_file"`
	ChunkIndex int       `json:"chunk_index"`
	Text       string    `json:"text"`
	Embedding  []float32 `json:"embedding"`
}

type storedIndex struct {
	Generation storedGeneration `json:"generation"`
	Chunks     []storedChunk    `json:"chunks"`
}

type snapshot struct {
	generation *entity.IndexGeneration
	chunks     []*entity.Chunk
}

// ChunkIndexRepository keeps the vector index as a single JSON document under
// dir and serves searches from an in-memory snapshot. Publishing writes a temp
// file and renames it over the old one, then swaps the snapshot pointer, so a
// search always runs against one complete generation.
type ChunkIndexRepository struct {
	dir     string
	current atomic.Pointer[snapshot]
	publish sync.Mutex
}

var _ contract.ChunkIndexRepository = (*ChunkIndexRepository)(nil)

func NewChunkIndexRepository(dir string) *ChunkIndexRepository {
	return &ChunkIndexRepository{dir: dir}
}

// Path is the location of the published index document.
func (r *ChunkIndexRepository) Path() string {
	return filepath.Join(r.dir, indexFile)
}

// Exists reports whether an index has been published to disk.
func (r *ChunkIndexRepository) Exists() bool {
	_, err := os.Stat(r.Path())
	return err == nil
}

func (r *ChunkIndexRepository) Publish(ctx context.Context, generation *entity.IndexGeneration, chunks []*entity.Chunk) error {
	r.publish.Lock()
	defer r.publish.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	if generation.Id == uuid.Nil {
		generation.Id = uuid.New()
	}
	if generation.BuiltAt.IsZero() {
		generation.BuiltAt = time.Now()
	}
	generation.Backend = BackendName

	doc := storedIndex{
		Generation: storedGeneration{
			Id:        generation.Id,
			Documents: generation.Documents,
			Chunks:    len(chunks),
			BuiltAt:   generation.BuiltAt,
		},
		Chunks: make([]storedChunk, len(chunks)),
	}
	for i, c := range chunks {
		if c.Id == uuid.Nil {
			c.Id = uuid.New()
		}
		c.GenerationId = generation.Id
		c.Position = i
		doc.Chunks[i] = storedChunk{
			Id:         c.Id,
			University: c.University,
			SourceFile: c.SourceFile,
			ChunkIndex: c.ChunkIndex,
			Text:       c.Text,
			Embedding:  c.Embedding,
		}
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	tmp := filepath.Join(r.dir, indexFile+".tmp-"+uuid.NewString())
	if err := writeDurable(tmp, doc); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, r.Path()); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("publish index: %w", err)
	}

	generation.Chunks = len(chunks)
	generation.Active = true
	r.current.Store(&snapshot{generation: generation, chunks: chunks})
	return nil
}

func writeDurable(path string, doc storedIndex) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create temp index: %w", err)
	}
	if err := json.NewEncoder(f).Encode(doc); err != nil {
		f.Close()
		return fmt.Errorf("encode index: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync index: %w", err)
	}
	return f.Close()
}

// Reload reads the published index from disk and swaps it in. A missing file
// yields contract.ErrIndexNotFound and leaves the current snapshot untouched.
func (r *ChunkIndexRepository) Reload(ctx context.Context) error {
	f, err := os.Open(r.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return contract.ErrIndexNotFound
		}
		return fmt.Errorf("open index: %w", err)
	}
	defer f.Close()

	var doc storedIndex
	if err := json.NewDecoder(f).Decode(&doc); err != nil {
		return fmt.Errorf("decode index: %w", err)
	}

	chunks := make([]*entity.Chunk, len(doc.Chunks))
	for i, c := range doc.Chunks {
		chunks[i] = &entity.Chunk{
			Id:           c.Id,
			GenerationId: doc.Generation.Id,
			University:   c.University,
			SourceFile:   c.SourceFile,
			ChunkIndex:   c.ChunkIndex,
			Position:     i,
			Text:         c.Text,
			Embedding:    c.Embedding,
		}
	}

	r.current.Store(&snapshot{
		generation: &entity.IndexGeneration{
			Id:        doc.Generation.Id,
			Backend:   BackendName,
			Documents: doc.Generation.Documents,
			Chunks:    len(chunks),
			Active:    true,
			BuiltAt:   doc.Generation.BuiltAt,
		},
		chunks: chunks,
	})
	return nil
}

func (r *ChunkIndexRepository) load(ctx context.Context) (*snapshot, error) {
	if s := r.current.Load(); s != nil {
		return s, nil
	}
	if err := r.Reload(ctx); err != nil {
		return nil, err
	}
	return r.current.Load(), nil
}

func (r *ChunkIndexRepository) ActiveGeneration(ctx context.Context) (*entity.IndexGeneration, error) {
	s, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	g := *s.generation
	return &g, nil
}

// SearchSimilar scans every chunk of the snapshot. Results are ordered by
// descending cosine similarity; equal scores keep build order.
func (r *ChunkIndexRepository) SearchSimilar(ctx context.Context, query []float32, limit int, university string) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}
	s, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	var scored []*contract.ScoredChunk
	for _, c := range s.chunks {
		if university != "" && c.University != university {
			continue
		}
		scored = append(scored, &contract.ScoredChunk{
			Chunk:      c,
			Similarity: embedding.CosineSimilarity(query, c.Embedding),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}
