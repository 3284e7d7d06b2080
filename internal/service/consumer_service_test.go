package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"university-assistant-be/internal/dto"
	"university-assistant-be/internal/entity"
	"university-assistant-be/internal/pkg/logger"
	"university-assistant-be/internal/repository/contract"
	"university-assistant-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIndexer struct {
	mu    sync.Mutex
	roots []string
	err   error
	calls chan struct{}
}

func (s *stubIndexer) BuildIndex(ctx context.Context, rootDir string) (*entity.IndexGeneration, error) {
	s.mu.Lock()
	s.roots = append(s.roots, rootDir)
	err := s.err
	s.mu.Unlock()
	defer func() { s.calls <- struct{}{} }()
	if err != nil {
		return nil, err
	}
	return &entity.IndexGeneration{Id: uuid.New(), Chunks: 4}, nil
}

func (s *stubIndexer) Status(ctx context.Context) (*entity.IndexGeneration, error) {
	return nil, contract.ErrIndexNotFound
}

func waitCall(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("rebuild was not consumed")
	}
}

func TestRebuildQueue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	indexer := &stubIndexer{calls: make(chan struct{}, 2)}
	consumer := NewConsumerService(pubSub, events.TypeRebuildIndex, indexer, "./UNIVERSITY", logger.NewNopLogger())
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService(events.TypeRebuildIndex, pubSub)
	require.NoError(t, publisher.Publish(ctx, dto.RebuildIndexMessage{JobId: uuid.New()}))
	waitCall(t, indexer.calls)

	indexer.mu.Lock()
	indexer.err = ErrNoDocumentsFound
	indexer.mu.Unlock()
	// a stray root_dir in the payload never redirects the build
	require.NoError(t, publisher.Publish(ctx, map[string]string{"job_id": uuid.NewString(), "root_dir": "/etc"}))
	waitCall(t, indexer.calls)

	indexer.mu.Lock()
	defer indexer.mu.Unlock()
	assert.Equal(t, []string{"./UNIVERSITY", "./UNIVERSITY"}, indexer.roots)
}

type captureSubscriber struct {
	eventType string
	handler   func(ctx context.Context, event events.Event) error
}

func (c *captureSubscriber) Subscribe(ctx context.Context, eventType, durableName string, handler func(ctx context.Context, event events.Event) error) error {
	c.eventType = eventType
	c.handler = handler
	return nil
}

type reloadCounter struct {
	contract.ChunkIndexRepository
	reloads int
	err     error
}

func (r *reloadCounter) Reload(ctx context.Context) error {
	r.reloads++
	return r.err
}

func TestIndexEventService_ReloadsOnRebuild(t *testing.T) {
	sub := &captureSubscriber{}
	repo := &reloadCounter{}
	svc := NewIndexEventService(sub, repo, logger.NewNopLogger())

	require.NoError(t, svc.Start(context.Background()))
	assert.Equal(t, events.TypeIndexRebuilt, sub.eventType)

	ev := events.BaseEvent{Type: events.TypeIndexRebuilt, Data: map[string]interface{}{"generation": "g-2", "chunks": 10}}
	require.NoError(t, sub.handler(context.Background(), ev))
	assert.Equal(t, 1, repo.reloads)

	repo.err = errors.New("disk gone")
	assert.Error(t, sub.handler(context.Background(), ev))
}
