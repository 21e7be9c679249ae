package worker

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/semsolhan1/todo-api202306/internal/cache"
	"github.com/semsolhan1/todo-api202306/internal/models"
	"github.com/semsolhan1/todo-api202306/internal/queue"
	"github.com/semsolhan1/todo-api202306/pkg/logger"
)

// Run starts the Kafka consumer: reads todo mutation events and drops the
// owner's cached list. Mutations are persisted synchronously on the request
// path; the consumer only keeps caches coherent across replicas.
func Run(ctx context.Context) {
	brokers := queue.Brokers()
	if len(brokers) == 0 {
		logger.Info(ctx, "Worker disabled (no Kafka brokers)")
		return
	}
	topic := queue.Topic()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  "todo-cache-invalidators",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	logger.Info(ctx, "Kafka consumer started", "topic", topic)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error(ctx, "Worker fetch failed", "error", err)
			continue
		}
		if err := handleMessage(ctx, msg.Value); err != nil {
			logger.Error(ctx, "Worker handle failed", "error", err, "payload", string(msg.Value))
		}
		// Commit even on handle failure; a stale cache entry expires via TTL,
		// while an uncommitted poison message would block the partition.
		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error(ctx, "Worker commit failed", "error", err)
		}
	}
}

func handleMessage(ctx context.Context, payload []byte) error {
	var ev models.TodoEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return err
	}
	if ev.OwnerID == "" {
		return nil
	}
	cache.NewListCache().Invalidate(ctx, ev.OwnerID)
	logger.Debug(ctx, "Cache invalidated", "action", ev.Action, "owner", ev.OwnerID)
	return nil
}
