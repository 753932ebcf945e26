// Package pubsub distributes number lifecycle events to other platform
// services over Redis Pub/Sub.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"numbers/internal/application/number/usecases"
	"numbers/internal/shared/logger"
)

const defaultLifecycleChannel = "numbers.lifecycle"

// LifecycleEventHandler is a callback for consuming lifecycle events.
type LifecycleEventHandler func(ctx context.Context, event usecases.LifecycleEvent)

// RedisLifecycleEventBus publishes and subscribes to lifecycle events on a
// single Redis channel. Billing and provisioning consume these events.
type RedisLifecycleEventBus struct {
	client  *redis.Client
	channel string
	logger  logger.Interface
}

var _ usecases.EventPublisher = (*RedisLifecycleEventBus)(nil)

func NewRedisLifecycleEventBus(client *redis.Client, channel string, log logger.Interface) *RedisLifecycleEventBus {
	if channel == "" {
		channel = defaultLifecycleChannel
	}

	return &RedisLifecycleEventBus{
		client:  client,
		channel: channel,
		logger:  log.Named("lifecycle-events"),
	}
}

func (b *RedisLifecycleEventBus) Publish(ctx context.Context, event usecases.LifecycleEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal lifecycle event: %w", err)
	}

	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish lifecycle event: %w", err)
	}

	b.logger.Debugw("published lifecycle event",
		"type", event.Type, "number_id", event.NumberID, "channel", b.channel)
	return nil
}

// Subscribe consumes lifecycle events until the context is canceled.
// Malformed payloads are logged and skipped.
func (b *RedisLifecycleEventBus) Subscribe(ctx context.Context, handler LifecycleEventHandler) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var event usecases.LifecycleEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("skipping malformed lifecycle event", "error", err)
				continue
			}
			handler(ctx, event)
		}
	}
}
