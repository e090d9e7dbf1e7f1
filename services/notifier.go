package services

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ThreadEvent is the fan-out payload for live subscribers. Delivery is
// best-effort and unordered across subscribers.
type ThreadEvent struct {
	Type     string `json:"type"`
	ThreadID uint   `json:"thread_id"`
	ActorID  uint   `json:"actor_id"`
}

const (
	EventThreadCreated = "thread_created"
	EventThreadDeleted = "thread_deleted"
	EventThreadLiked   = "thread_liked"
)

// ThreadNotifier is the fire-and-forget event sink the core publishes to.
// A failed publish must never roll back the mutation that triggered it.
type ThreadNotifier interface {
	NotifyThreadUpdated(ctx context.Context, event ThreadEvent)
}

const threadUpdatesChannel = "threads:updates"

// RedisNotifier broadcasts thread events over a pub/sub channel.
type RedisNotifier struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisNotifier(client *redis.Client, logger *zap.Logger) *RedisNotifier {
	return &RedisNotifier{client: client, logger: logger}
}

func (n *RedisNotifier) NotifyThreadUpdated(ctx context.Context, event ThreadEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("failed to encode thread event", zap.Error(err))
		return
	}
	if err := n.client.Publish(ctx, threadUpdatesChannel, payload).Err(); err != nil {
		n.logger.Warn("failed to publish thread event",
			zap.String("type", event.Type),
			zap.Uint("thread_id", event.ThreadID),
			zap.Error(err))
	}
}

// NopNotifier discards events.
type NopNotifier struct{}

func (NopNotifier) NotifyThreadUpdated(ctx context.Context, event ThreadEvent) {}
