package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"loyalty-token-ledger/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// EventPublisher implements ports.EventSink over Redis pub/sub. Each event is
// published as one JSON message on a single channel; subscribers filter by
// the event's type field.
type EventPublisher struct {
	client  *goredis.Client
	channel string
}

// NewEventPublisher creates a Redis-backed event publisher.
func NewEventPublisher(client *goredis.Client, channel string) *EventPublisher {
	return &EventPublisher{
		client:  client,
		channel: channel,
	}
}

// Publish sends each event to the configured channel in order. Events within
// one call are pipelined so a batch travels in a single round trip.
func (p *EventPublisher) Publish(ctx context.Context, events ...domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	pipe := p.client.Pipeline()
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", e.Type, err)
		}
		pipe.Publish(ctx, p.channel, payload)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish events: %w", err)
	}
	return nil
}
