package service

import (
	"context"
	"encoding/json"
	"errors"

	"university-assistant-be/internal/dto"
	"university-assistant-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the rebuild queue with a single goroutine, so
// rebuild requests never run concurrently. Every job builds rootDir.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	indexer    IIndexerService
	rootDir    string
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	indexer IIndexerService,
	rootDir string,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		indexer:    indexer,
		rootDir:    rootDir,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage always acks. A failed build is reported, not retried: the
// corpus or provider has to be fixed by the operator first.
func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	defer msg.Ack()

	var payload dto.RebuildIndexMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("IndexConsumer", "Failed to unmarshal rebuild request", map[string]interface{}{"error": err.Error()})
		return
	}

	rootDir := cs.rootDir
	cs.logger.Info("IndexConsumer", "Rebuilding index", map[string]interface{}{"job_id": payload.JobId, "root": rootDir})

	gen, err := cs.indexer.BuildIndex(ctx, rootDir)
	if err != nil {
		if errors.Is(err, ErrNoDocumentsFound) {
			cs.logger.Warn("IndexConsumer", "Corpus is empty, nothing to index", map[string]interface{}{"job_id": payload.JobId, "root": rootDir})
			return
		}
		cs.logger.Error("IndexConsumer", "Rebuild failed", map[string]interface{}{"job_id": payload.JobId, "error": err.Error()})
		return
	}

	cs.logger.Info("IndexConsumer", "Rebuild finished", map[string]interface{}{
		"job_id":     payload.JobId,
		"generation": gen.Id,
		"chunks":     gen.Chunks,
	})
}
