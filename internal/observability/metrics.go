// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "academy_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ActivityEvents counts tracked activity events by type and feature area.
	ActivityEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "academy_activity_events_total",
		Help: "Total number of tracked activity events",
	}, []string{"activity_type", "feature_area"})

	// NotificationsCreated counts notifications fanned out by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "academy_notifications_created_total",
		Help: "Total number of forum notifications created",
	}, []string{"type"})

	// SearchQueries counts search requests by requested result type.
	SearchQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "academy_search_queries_total",
		Help: "Total number of forum search queries",
	}, []string{"type"})

	// ReactionConflicts counts duplicate-reaction inserts rejected by the
	// storage uniqueness constraint.
	ReactionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "academy_reaction_conflicts_total",
		Help: "Total number of duplicate reaction inserts rejected",
	})

	// WebSocketConnections is the gauge of active WebSocket connections.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "academy_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "academy_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)
