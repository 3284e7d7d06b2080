package service

import (
	"context"
	"errors"
	"hash/fnv"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"university-assistant-be/internal/pkg/logger"
	"university-assistant-be/internal/repository/contract"
	"university-assistant-be/internal/repository/file"
	"university-assistant-be/pkg/embedding"
	"university-assistant-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bagOfWordsEmbedder hashes words into a fixed vector so identical texts get
// identical embeddings.
type bagOfWordsEmbedder struct {
	calls  atomic.Int32
	failAt int32
}

func (e *bagOfWordsEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	n := e.calls.Add(1)
	if e.failAt > 0 && n == e.failAt {
		return nil, errors.New("embedding quota exceeded")
	}
	vec := make([]float32, 64)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(w))
		vec[h.Sum32()%64]++
	}
	return &embedding.EmbeddingResponse{Embedding: embedding.EmbeddingResponseEmbedding{Values: embedding.Normalize(vec)}}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func writeCorpusFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func longText(topic string, sentences int) string {
	var b strings.Builder
	for i := 0; i < sentences; i++ {
		b.WriteString("The ")
		b.WriteString(topic)
		b.WriteString(" office publishes notice number ")
		b.WriteString(strings.Repeat("x", i%7+1))
		b.WriteString(" for students in batch ")
		b.WriteString(string(rune('a' + i%26)))
		b.WriteString(". ")
		if i%9 == 8 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

func newTestIndexer(t *testing.T, emb embedding.EmbeddingProvider, pub EventPublisher) (IIndexerService, *file.ChunkIndexRepository) {
	repo := file.NewChunkIndexRepository(filepath.Join(t.TempDir(), "faiss_index"))
	svc := NewIndexerService(repo, emb, pub, logger.NewNopLogger(), IndexerConfig{ChunkSize: 1200, Overlap: 350, Concurrency: 3})
	return svc, repo
}

func TestLoadDocuments(t *testing.T) {
	t.Run("missing root is created and reported empty", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "UNIVERSITY")
		_, err := LoadDocuments(root)
		assert.ErrorIs(t, err, ErrNoDocumentsFound)
		info, statErr := os.Stat(root)
		require.NoError(t, statErr)
		assert.True(t, info.IsDir())
	})

	t.Run("only txt files count", func(t *testing.T) {
		root := t.TempDir()
		writeCorpusFile(t, root, "SMIU/readme.md", "not a document")
		writeCorpusFile(t, root, "NED/scan.pdf", "binary")
		_, err := LoadDocuments(root)
		assert.ErrorIs(t, err, ErrNoDocumentsFound)
	})

	t.Run("university is the lowercased parent directory", func(t *testing.T) {
		root := t.TempDir()
		writeCorpusFile(t, root, "SMIU/admissions.txt", "Admissions open in July.")
		writeCorpusFile(t, root, "NED/archive/2023/fees.txt", "Fee is due.")
		writeCorpusFile(t, root, "IBA/empty.txt", "")

		docs, err := LoadDocuments(root)
		require.NoError(t, err)
		require.Len(t, docs, 3)

		got := map[string]string{}
		for _, d := range docs {
			got[d.SourceFile] = d.University
		}
		assert.Equal(t, map[string]string{
			"admissions.txt": "smiu",
			"fees.txt":       "2023",
			"empty.txt":      "iba",
		}, got)
	})
}

func TestIndexerService_BuildIndex(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	smiuText := longText("admissions", 60)
	writeCorpusFile(t, root, "SMIU/admissions.txt", smiuText)
	writeCorpusFile(t, root, "NED/fees.txt", longText("accounts", 20))
	writeCorpusFile(t, root, "DUET/hostel.txt", "Hostel rooms are allotted on merit.")

	pub := &recordingPublisher{}
	emb := &bagOfWordsEmbedder{}
	svc, repo := newTestIndexer(t, emb, pub)

	gen, err := svc.BuildIndex(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, 3, gen.Documents)
	assert.Greater(t, gen.Chunks, 3)
	assert.Equal(t, int32(gen.Chunks), emb.calls.Load())
	assert.True(t, repo.Exists())

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeIndexRebuilt, pub.events[0].EventType())
	assert.Equal(t, gen.Chunks, pub.events[0].Payload()["chunks"])

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, gen.Id, status.Id)

	t.Run("every chunk carries its document's university", func(t *testing.T) {
		res, err := repo.SearchSimilar(ctx, make([]float32, 64), gen.Chunks, "")
		require.NoError(t, err)
		require.Len(t, res, gen.Chunks)
		for _, r := range res {
			switch r.Chunk.SourceFile {
			case "admissions.txt":
				assert.Equal(t, "smiu", r.Chunk.University)
			case "fees.txt":
				assert.Equal(t, "ned", r.Chunk.University)
			case "hostel.txt":
				assert.Equal(t, "duet", r.Chunk.University)
			}
			assert.LessOrEqual(t, len([]rune(r.Chunk.Text)), 1200)
		}
	})

	t.Run("verbatim chunk text finds its chunk within the university", func(t *testing.T) {
		all, err := repo.SearchSimilar(ctx, make([]float32, 64), gen.Chunks, "smiu")
		require.NoError(t, err)
		require.Greater(t, len(all), 2)
		target := all[2].Chunk

		q, err := emb.Generate(ctx, target.Text, embedding.TaskRetrievalQuery)
		require.NoError(t, err)
		res, err := repo.SearchSimilar(ctx, q.Embedding.Values, 5, "smiu")
		require.NoError(t, err)

		var ids []string
		for _, r := range res {
			assert.Equal(t, "smiu", r.Chunk.University)
			ids = append(ids, r.Chunk.Id.String())
		}
		assert.Contains(t, ids, target.Id.String())
	})
}

func TestIndexerService_EmbeddingFailureKeepsPreviousIndex(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	writeCorpusFile(t, root, "SMIU/admissions.txt", longText("admissions", 40))

	pub := &recordingPublisher{}
	svc, repo := newTestIndexer(t, &bagOfWordsEmbedder{}, pub)
	first, err := svc.BuildIndex(ctx, root)
	require.NoError(t, err)

	failing := NewIndexerService(repo, &bagOfWordsEmbedder{failAt: 2}, pub, logger.NewNopLogger(), IndexerConfig{ChunkSize: 1200, Overlap: 350, Concurrency: 1})
	writeCorpusFile(t, root, "NED/fees.txt", longText("accounts", 40))
	_, err = failing.BuildIndex(ctx, root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding quota exceeded")

	active, err := repo.ActiveGeneration(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Id, active.Id)
	assert.Len(t, pub.events, 1)
}

func TestIndexerService_NoDocuments(t *testing.T) {
	svc, repo := newTestIndexer(t, &bagOfWordsEmbedder{}, nil)

	_, err := svc.BuildIndex(context.Background(), filepath.Join(t.TempDir(), "UNIVERSITY"))
	assert.ErrorIs(t, err, ErrNoDocumentsFound)
	assert.False(t, repo.Exists())

	_, err = svc.Status(context.Background())
	assert.ErrorIs(t, err, contract.ErrIndexNotFound)
}
