package service

import (
	"context"
	"fmt"
	"log/slog"

	"academy/internal/middleware"
	"academy/internal/models"
	"academy/internal/observability"
	"academy/internal/repository"
)

// NotificationService owns the per-user notification inbox and its realtime
// fan-out.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	publisher        EventPublisher
}

// ListNotificationsInput filters the feed.
type ListNotificationsInput struct {
	UserID     uint
	UnreadOnly bool
	Limit      int
}

// MarkReadInput identifies what to mark. Exactly one of NotificationID or All
// must be set.
type MarkReadInput struct {
	UserID         uint
	NotificationID *uint
	All            bool
}

// NewNotificationService wires the notification business logic.
func NewNotificationService(notificationRepo repository.NotificationRepository, publisher EventPublisher) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		publisher:        publisher,
	}
}

// List returns the newest notifications enriched with actor and topic data.
func (s *NotificationService) List(ctx context.Context, in ListNotificationsInput) ([]models.NotificationView, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, in.UserID, in.UnreadOnly, in.Limit)
	if err != nil {
		return nil, err
	}

	views := make([]models.NotificationView, 0, len(notifications))
	for i := range notifications {
		views = append(views, notifications[i].View())
	}
	return views, nil
}

// UnreadCount returns the number of unread notifications.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

// MarkRead marks one notification or the whole inbox. At least one of
// NotificationID or All must be set; when both are, All wins since it
// subsumes the single id anyway.
func (s *NotificationService) MarkRead(ctx context.Context, in MarkReadInput) (int64, error) {
	if in.NotificationID == nil && !in.All {
		return 0, models.NewValidationError("One of notification_id or mark_all_read is required")
	}

	if in.All {
		return s.notificationRepo.MarkAllRead(ctx, in.UserID)
	}

	matched, err := s.notificationRepo.MarkRead(ctx, in.UserID, *in.NotificationID)
	if err != nil {
		return 0, err
	}
	if !matched {
		return 0, models.NewNotFoundError("Notification", *in.NotificationID)
	}
	return 1, nil
}

// NotifyReaction records a reaction notification and pushes it to the
// recipient. Failures are logged, never propagated; a lost notification must
// not fail the reaction.
func (s *NotificationService) NotifyReaction(ctx context.Context, recipientID uint, actor *models.User, topicID uint, postID *uint, reactionType string) {
	target := "your topic"
	if postID != nil {
		target = "your post"
	}
	s.deliver(ctx, &models.ForumNotification{
		UserID:  recipientID,
		ActorID: &actor.ID,
		TopicID: &topicID,
		PostID:  postID,
		Type:    models.NotificationReaction,
		Title:   fmt.Sprintf("%s reacted to %s", actor.Username, target),
		Message: fmt.Sprintf("%s left a %q reaction", actor.Username, reactionType),
	})
}

// NotifyReply records a reply notification for the topic or parent-post author.
func (s *NotificationService) NotifyReply(ctx context.Context, recipientID uint, actor *models.User, topic *models.ForumTopic, postID uint) {
	s.deliver(ctx, &models.ForumNotification{
		UserID:  recipientID,
		ActorID: &actor.ID,
		TopicID: &topic.ID,
		PostID:  &postID,
		Type:    models.NotificationReply,
		Title:   fmt.Sprintf("%s replied in %s", actor.Username, topic.Title),
	})
}

// NotifySolution tells a post author their answer was accepted.
func (s *NotificationService) NotifySolution(ctx context.Context, recipientID uint, actor *models.User, topic *models.ForumTopic, postID uint) {
	s.deliver(ctx, &models.ForumNotification{
		UserID:  recipientID,
		ActorID: &actor.ID,
		TopicID: &topic.ID,
		PostID:  &postID,
		Type:    models.NotificationSolution,
		Title:   fmt.Sprintf("Your answer in %s was accepted", topic.Title),
	})
}

func (s *NotificationService) deliver(ctx context.Context, n *models.ForumNotification) {
	if err := s.notificationRepo.Create(ctx, n); err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to store notification",
			slog.Uint64("user_id", uint64(n.UserID)),
			slog.String("type", n.Type),
			slog.String("error", err.Error()),
		)
		return
	}

	observability.NotificationsCreated.WithLabelValues(n.Type).Inc()

	if s.publisher != nil {
		s.publisher.PublishToUser(ctx, n.UserID, RealtimeEvent{
			Type:    "notification",
			Payload: n,
		})
	}
}
