// Package notifications delivers comment lifecycle events to live subscribers.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"commentary/internal/middleware"
	"commentary/internal/observability"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CommentEventsChannel is the Redis channel carrying comment events.
const CommentEventsChannel = "comments:events"

// Event is the envelope published for every comment lifecycle change.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Payload    interface{} `json:"payload"`
	OccurredAt time.Time   `json:"occurred_at"`
}

// Broadcaster receives events directly when no Redis client is configured.
type Broadcaster interface {
	BroadcastAll(message string)
}

// Notifier publishes comment events into Redis.
type Notifier struct {
	rdb   *redis.Client
	local Broadcaster
}

// NewNotifier creates a Notifier. With a nil rdb, events go straight to local
// (which may also be nil, making publication a no-op).
func NewNotifier(rdb *redis.Client, local Broadcaster) *Notifier {
	return &Notifier{rdb: rdb, local: local}
}

// PublishCommentEvent wraps payload in an Event and publishes it.
func (n *Notifier) PublishCommentEvent(ctx context.Context, eventType string, payload interface{}) error {
	data, err := json.Marshal(Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		observability.EventPublications.WithLabelValues(eventType, "failed").Inc()
		return fmt.Errorf("marshal event: %w", err)
	}

	if n.rdb == nil {
		if n.local != nil {
			n.local.BroadcastAll(string(data))
			observability.EventPublications.WithLabelValues(eventType, "local").Inc()
		}
		return nil
	}

	if err := n.rdb.Publish(ctx, CommentEventsChannel, string(data)).Err(); err != nil {
		observability.EventPublications.WithLabelValues(eventType, "failed").Inc()
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	observability.EventPublications.WithLabelValues(eventType, "published").Inc()
	return nil
}

// StartCommentSubscriber subscribes to CommentEventsChannel and calls onMessage
// for each payload until ctx is cancelled. The subscription is confirmed before
// it returns.
func (n *Notifier) StartCommentSubscriber(ctx context.Context, onMessage func(payload string)) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, CommentEventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", CommentEventsChannel, err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							middleware.Logger.Error("panic in comment subscriber",
								slog.Any("panic", r),
								slog.String("stack", string(debug.Stack())),
							)
						}
					}()
					onMessage(msg.Payload)
				}()
			}
		}
	}()

	return nil
}
