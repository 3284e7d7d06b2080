package service

import (
	"context"
	"fmt"

	"university-assistant-be/internal/pkg/logger"
	"university-assistant-be/internal/repository/contract"
	"university-assistant-be/pkg/events"
)

// EventSubscriber is the part of the NATS subscriber used for index events.
type EventSubscriber interface {
	Subscribe(ctx context.Context, eventType, durableName string, handler func(ctx context.Context, event events.Event) error) error
}

type IIndexEventService interface {
	Start(ctx context.Context) error
}

// indexEventService reloads the local index snapshot whenever any instance
// publishes a new generation.
type indexEventService struct {
	subscriber EventSubscriber
	repo       contract.ChunkIndexRepository
	logger     logger.ILogger
}

func NewIndexEventService(subscriber EventSubscriber, repo contract.ChunkIndexRepository, log logger.ILogger) IIndexEventService {
	return &indexEventService{subscriber: subscriber, repo: repo, logger: log}
}

func (s *indexEventService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, events.TypeIndexRebuilt, "", s.handle); err != nil {
		return fmt.Errorf("subscribe %s: %w", events.TypeIndexRebuilt, err)
	}
	return nil
}

func (s *indexEventService) handle(ctx context.Context, event events.Event) error {
	payload := event.Payload()
	if err := s.repo.Reload(ctx); err != nil {
		s.logger.Error("IndexEvents", "Reload after rebuild failed", map[string]interface{}{"generation": payload["generation"], "error": err.Error()})
		return err
	}
	s.logger.Info("IndexEvents", "Index reloaded", map[string]interface{}{"generation": payload["generation"], "chunks": payload["chunks"]})
	return nil
}
