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

// ActivityService records usage events across the platform's content
// verticals and keeps the per-user aggregates they feed.
type ActivityService struct {
	activityRepo repository.ActivityRepository
	publisher    EventPublisher
}

// TrackInput is one activity event.
type TrackInput struct {
	UserID       uint
	ActivityType string
	FeatureArea  string
	ItemID       string
	Metadata     models.JSONMap
}

// NewActivityService wires the activity tracker.
func NewActivityService(activityRepo repository.ActivityRepository, publisher EventPublisher) *ActivityService {
	return &ActivityService{activityRepo: activityRepo, publisher: publisher}
}

// Track appends an event and bumps the matching aggregate. Anonymous calls
// are dropped with a warning instead of failing, since tracking is always
// fire-and-forget from the caller's point of view. The event insert and the
// stat bump are independent; losing one does not roll back the other.
func (s *ActivityService) Track(ctx context.Context, in TrackInput) error {
	if in.UserID == 0 {
		middleware.Logger.WarnContext(ctx, "Dropping anonymous activity event",
			slog.String("activity_type", in.ActivityType),
			slog.String("feature_area", in.FeatureArea),
		)
		return nil
	}
	if in.ActivityType == "" {
		return models.NewValidationError("activity_type is required")
	}
	if !models.IsValidFeatureArea(in.FeatureArea) {
		return models.NewValidationError(fmt.Sprintf("Unknown feature area %q", in.FeatureArea))
	}

	event := &models.UserActivity{
		UserID:       in.UserID,
		ActivityType: in.ActivityType,
		FeatureArea:  in.FeatureArea,
		ItemID:       in.ItemID,
		Metadata:     in.Metadata,
	}

	var firstErr error
	if err := s.activityRepo.InsertEvent(ctx, event); err != nil {
		firstErr = err
		middleware.Logger.ErrorContext(ctx, "Failed to insert activity event",
			slog.Uint64("user_id", uint64(in.UserID)),
			slog.String("error", err.Error()),
		)
	}
	if err := s.activityRepo.IncrementStat(ctx, in.UserID, in.ActivityType, in.FeatureArea); err != nil {
		if firstErr == nil {
			firstErr = err
		}
		middleware.Logger.ErrorContext(ctx, "Failed to increment activity stat",
			slog.Uint64("user_id", uint64(in.UserID)),
			slog.String("error", err.Error()),
		)
	}
	if firstErr != nil {
		return firstErr
	}

	observability.ActivityEvents.WithLabelValues(in.ActivityType, in.FeatureArea).Inc()

	// Push fresh stats to the user's open sessions, best effort.
	if s.publisher != nil {
		if stats, err := s.activityRepo.StatsByUser(ctx, in.UserID); err == nil {
			s.publisher.PublishToUser(ctx, in.UserID, RealtimeEvent{
				Type:    "stats",
				Payload: stats,
			})
		}
	}

	return nil
}

// Stats returns the per-user aggregate counters.
func (s *ActivityService) Stats(ctx context.Context, userID uint) ([]models.UserStat, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.activityRepo.StatsByUser(ctx, userID)
}

// Recent returns the newest raw events for the user.
func (s *ActivityService) Recent(ctx context.Context, userID uint, limit int) ([]models.UserActivity, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.activityRepo.RecentByUser(ctx, userID, limit)
}

// LastActivity returns the user's most recent event, nil when there is none.
func (s *ActivityService) LastActivity(ctx context.Context, userID uint) (*models.UserActivity, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	return s.activityRepo.LastByUser(ctx, userID)
}

// FeatureActivity returns the newest events within one feature area.
func (s *ActivityService) FeatureActivity(ctx context.Context, userID uint, featureArea string, limit int) ([]models.UserActivity, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if !models.IsValidFeatureArea(featureArea) {
		return nil, models.NewValidationError(fmt.Sprintf("Unknown feature area %q", featureArea))
	}
	return s.activityRepo.RecentByArea(ctx, userID, featureArea, limit)
}
