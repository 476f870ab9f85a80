package server

import (
	"context"
	"encoding/json"
	"log"

	"academy/internal/featureflags"
	"academy/internal/notifications"
	"academy/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WebsocketHandler handles WebSocket connections for notification and stats
// push. Clients receive events published to their Redis channel; they can
// also request an on-demand stats refresh.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		ctx := context.Background()

		// Get userID from context locals (set by AuthRequired middleware)
		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			log.Printf("WebSocket: Unauthenticated connection attempt")
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}
		userID := userIDVal.(uint)

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(userID, conn)
		if err != nil {
			log.Printf("WebSocket: Failed to register user %d: %v", userID, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		client.IncomingHandler = func(c *notifications.Client, message []byte) {
			var incoming struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(message, &incoming); err != nil {
				log.Printf("WebSocket: Invalid message format from user %d", userID)
				return
			}

			switch incoming.Type {
			case "stats":
				if !s.featureFlags.Enabled(featureflags.FlagRealtimeStats, userID) {
					return
				}
				stats, err := s.activityService.Stats(ctx, userID)
				if err != nil {
					log.Printf("WebSocket: Failed to load stats for user %d: %v", userID, err)
					return
				}
				if payload, err := json.Marshal(service.RealtimeEvent{
					Type:    "stats",
					Payload: stats,
				}); err == nil {
					c.TrySend(payload)
				}

			case "unread":
				count, err := s.notificationService.UnreadCount(ctx, userID)
				if err != nil {
					return
				}
				if payload, err := json.Marshal(service.RealtimeEvent{
					Type:    "unread_count",
					Payload: count,
				}); err == nil {
					c.TrySend(payload)
				}
			}
		}

		// Send welcome message with the unread notification count so clients
		// can badge immediately without a second round trip.
		var unread int64
		if count, err := s.notificationService.UnreadCount(ctx, userID); err == nil {
			unread = count
		}
		if welcome, err := json.Marshal(service.RealtimeEvent{
			Type: "connected",
			Payload: map[string]interface{}{
				"user_id":      userID,
				"unread_count": unread,
			},
		}); err == nil {
			client.TrySend(welcome)
		}

		// Start write pump in a goroutine
		go client.WritePump()

		// Read pump runs in the main handler goroutine (blocking)
		client.ReadPump()
	})
}
