// Package notifications provides realtime event delivery over Redis pub/sub
// and WebSocket connections.
package notifications

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"runtime/debug"
	"strconv"

	"academy/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Notifier publishes forum events into Redis channels. With a nil Redis
// client every publish is a silent no-op, so single-node deployments without
// Redis still run.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishUser sends an event payload to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, UserChannel(userID), payload).Err()
}

// PublishBroadcast sends an event payload to every connected user.
func (n *Notifier) PublishBroadcast(ctx context.Context, payload string) error {
	if n.rdb == nil {
		return nil
	}
	return n.rdb.Publish(ctx, broadcastChannel, payload).Err()
}

// StartPatternSubscriber subscribes to the forum channels and calls onMessage
// for each incoming message. onMessage receives channel and payload.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "forum:user:*", broadcastChannel)
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
							log.Printf("PANIC in PatternSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

const broadcastChannel = "forum:broadcast"

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID uint) string {
	return "forum:user:" + strconv.FormatUint(uint64(userID), 10)
}

// Publisher adapts the Notifier to the service layer's EventPublisher.
// Marshal or publish failures are logged and swallowed; realtime delivery is
// best effort by contract.
type Publisher struct {
	notifier *Notifier
}

// NewPublisher wraps a Notifier for use by services.
func NewPublisher(notifier *Notifier) *Publisher {
	return &Publisher{notifier: notifier}
}

// PublishToUser marshals the event and publishes it to the user's channel.
func (p *Publisher) PublishToUser(ctx context.Context, userID uint, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to marshal realtime event", slog.String("error", err.Error()))
		return
	}
	if err := p.notifier.PublishUser(ctx, userID, string(payload)); err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to publish realtime event",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", err.Error()),
		)
	}
}

// PublishBroadcast marshals the event and publishes it to every user.
func (p *Publisher) PublishBroadcast(ctx context.Context, event interface{}) {
	payload, err := json.Marshal(event)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to marshal realtime event", slog.String("error", err.Error()))
		return
	}
	if err := p.notifier.PublishBroadcast(ctx, string(payload)); err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to publish broadcast event", slog.String("error", err.Error()))
	}
}
