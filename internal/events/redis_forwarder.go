package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher is the subset of *redis.Client used for forwarding.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisForwarder republishes domain events as JSON on a Redis channel.
type RedisForwarder struct {
	client  Publisher
	channel string
}

// NewRedisForwarder builds a forwarder for the channel.
func NewRedisForwarder(client Publisher, channel string) *RedisForwarder {
	return &RedisForwarder{client: client, channel: channel}
}

// Handle is an EventHandler.
func (f *RedisForwarder) Handle(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.Type, err)
	}
	if err := f.client.Publish(ctx, f.channel, body).Err(); err != nil {
		return fmt.Errorf("publish event %s: %w", event.Type, err)
	}
	return nil
}

// Register subscribes the forwarder to every event type.
func (f *RedisForwarder) Register(dispatcher Dispatcher) {
	for _, eventType := range AllEventTypes() {
		dispatcher.Subscribe(eventType, f.Handle)
	}
}
