// Package service contains the application's business logic layer.
package service

import "context"

// EventPublisher pushes realtime events to connected clients. Publishing is
// best effort; services never fail an operation because a push was dropped.
type EventPublisher interface {
	PublishToUser(ctx context.Context, userID uint, event interface{})
	PublishBroadcast(ctx context.Context, event interface{})
}

// RealtimeEvent is the envelope pushed over WebSocket and pub/sub.
type RealtimeEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
