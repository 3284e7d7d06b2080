package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"university-assistant-be/internal/entity"
	"university-assistant-be/internal/pkg/logger"
	"university-assistant-be/internal/repository/contract"
	"university-assistant-be/internal/tracer"
	"university-assistant-be/pkg/embedding"
	"university-assistant-be/pkg/events"
	"university-assistant-be/pkg/utils"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

// ErrNoDocumentsFound means the corpus root holds no .txt documents. The
// operator has to populate it before an index can be built.
var ErrNoDocumentsFound = errors.New("no documents found in corpus")

const corpusExt = ".txt"

// EventPublisher is the part of the NATS publisher the indexer needs.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type IIndexerService interface {
	BuildIndex(ctx context.Context, rootDir string) (*entity.IndexGeneration, error)
	Status(ctx context.Context) (*entity.IndexGeneration, error)
}

type IndexerConfig struct {
	ChunkSize   int
	Overlap     int
	Concurrency int
}

type indexerService struct {
	repo     contract.ChunkIndexRepository
	embedder embedding.EmbeddingProvider
	events   EventPublisher
	logger   logger.ILogger
	cfg      IndexerConfig

	// one build at a time per process
	mu sync.Mutex
}

// NewIndexerService builds the corpus indexer. publisher may be nil when no
// event bus is configured.
func NewIndexerService(
	repo contract.ChunkIndexRepository,
	embedder embedding.EmbeddingProvider,
	publisher EventPublisher,
	log logger.ILogger,
	cfg IndexerConfig,
) IIndexerService {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1200
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = 350
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	return &indexerService{
		repo:     repo,
		embedder: embedder,
		events:   publisher,
		logger:   log,
		cfg:      cfg,
	}
}

func (s *indexerService) BuildIndex(ctx context.Context, rootDir string) (gen *entity.IndexGeneration, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, span := tracer.Tracer("indexer").Start(ctx, "index.build")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	started := time.Now()

	docs, err := LoadDocuments(rootDir)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Indexer", "Documents loaded", map[string]interface{}{"root": rootDir, "documents": len(docs)})

	chunks := s.split(docs)
	s.logger.Info("Indexer", "Chunks created", map[string]interface{}{"chunks": len(chunks)})
	span.SetAttributes(
		attribute.Int("index.documents", len(docs)),
		attribute.Int("index.chunks", len(chunks)),
	)

	if err := s.embed(ctx, chunks); err != nil {
		return nil, err
	}

	gen = &entity.IndexGeneration{
		Id:        uuid.New(),
		Documents: len(docs),
		BuiltAt:   time.Now(),
	}
	if err := s.repo.Publish(ctx, gen, chunks); err != nil {
		return nil, fmt.Errorf("publish index: %w", err)
	}

	s.logger.Info("Indexer", "Index published", map[string]interface{}{
		"generation": gen.Id.String(),
		"backend":    gen.Backend,
		"documents":  gen.Documents,
		"chunks":     gen.Chunks,
		"elapsed_ms": time.Since(started).Milliseconds(),
	})

	s.announce(ctx, gen)
	return gen, nil
}

func (s *indexerService) Status(ctx context.Context) (*entity.IndexGeneration, error) {
	return s.repo.ActiveGeneration(ctx)
}

// LoadDocuments walks rootDir and reads every .txt file. The university of a
// document is its lowercased parent directory name. A missing root is created
// and reported as ErrNoDocumentsFound.
func LoadDocuments(rootDir string) ([]*entity.Document, error) {
	if _, err := os.Stat(rootDir); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(rootDir, 0o755); err != nil {
			return nil, fmt.Errorf("create corpus root: %w", err)
		}
		return nil, ErrNoDocumentsFound
	}

	var docs []*entity.Document
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(d.Name()) != corpusExt {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, &entity.Document{
			University: strings.ToLower(filepath.Base(filepath.Dir(path))),
			SourceFile: d.Name(),
			Path:       path,
			Text:       string(raw),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk corpus: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrNoDocumentsFound
	}
	return docs, nil
}

func (s *indexerService) split(docs []*entity.Document) []*entity.Chunk {
	var chunks []*entity.Chunk
	for _, doc := range docs {
		for i, text := range utils.SplitText(doc.Text, s.cfg.ChunkSize, s.cfg.Overlap) {
			chunks = append(chunks, &entity.Chunk{
				University: doc.University,
				SourceFile: doc.SourceFile,
				ChunkIndex: i,
				Position:   len(chunks),
				Text:       text,
			})
		}
	}
	return chunks
}

// embed fills in every chunk's vector. Any failure aborts the whole build
// before anything is published.
func (s *indexerService) embed(ctx context.Context, chunks []*entity.Chunk) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)

	for _, c := range chunks {
		g.Go(func() error {
			res, err := s.embedder.Generate(gctx, c.Text, embedding.TaskRetrievalDocument)
			if err != nil {
				return fmt.Errorf("embed %s#%d: %w", c.SourceFile, c.ChunkIndex, err)
			}
			c.Embedding = res.Embedding.Values
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("Indexer", "Embedding failed, index not published", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("Indexer", "Chunks embedded", map[string]interface{}{"chunks": len(chunks)})
	return nil
}

func (s *indexerService) announce(ctx context.Context, gen *entity.IndexGeneration) {
	if s.events == nil {
		return
	}
	err := s.events.Publish(ctx, events.IndexRebuilt{
		Generation: gen.Id.String(),
		Backend:    gen.Backend,
		Documents:  gen.Documents,
		Chunks:     gen.Chunks,
		BuiltAt:    gen.BuiltAt,
	})
	if err != nil {
		s.logger.Warn("Indexer", "Failed to publish index event", map[string]interface{}{"error": err.Error()})
	}
}
