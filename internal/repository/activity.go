package repository

import (
	"context"
	"errors"
	"time"

	"academy/internal/cache"
	"academy/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ActivityRepository defines persistence for the append-only activity log and
// its aggregate counters.
type ActivityRepository interface {
	InsertEvent(ctx context.Context, event *models.UserActivity) error
	// IncrementStat upserts the (user, activity type, feature area) counter.
	IncrementStat(ctx context.Context, userID uint, activityType, featureArea string) error
	StatsByUser(ctx context.Context, userID uint) ([]models.UserStat, error)
	RecentByUser(ctx context.Context, userID uint, limit int) ([]models.UserActivity, error)
	// LastByUser returns the newest event, or nil when the user has none.
	LastByUser(ctx context.Context, userID uint) (*models.UserActivity, error)
	RecentByArea(ctx context.Context, userID uint, featureArea string, limit int) ([]models.UserActivity, error)
}

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository returns a new ActivityRepository implementation.
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) InsertEvent(ctx context.Context, event *models.UserActivity) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// IncrementStat bumps the aggregate with a single upsert so concurrent events
// for the same key never race.
func (r *activityRepository) IncrementStat(ctx context.Context, userID uint, activityType, featureArea string) error {
	now := time.Now()
	stat := models.UserStat{
		UserID:         userID,
		ActivityType:   activityType,
		FeatureArea:    featureArea,
		Count:          1,
		LastActivityAt: now,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "activity_type"}, {Name: "feature_area"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count":            gorm.Expr("user_stats.count + 1"),
			"last_activity_at": now,
		}),
	}).Create(&stat).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.UserStatsKey(userID))
	return nil
}

func (r *activityRepository) StatsByUser(ctx context.Context, userID uint) ([]models.UserStat, error) {
	var stats []models.UserStat

	err := cache.Aside(ctx, cache.UserStatsKey(userID), &stats, cache.StatsTTL, func() error {
		if err := r.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("feature_area ASC, activity_type ASC").
			Find(&stats).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *activityRepository) RecentByUser(ctx context.Context, userID uint, limit int) ([]models.UserActivity, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	var events []models.UserActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

func (r *activityRepository) LastByUser(ctx context.Context, userID uint) (*models.UserActivity, error) {
	var event models.UserActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &event, nil
}

func (r *activityRepository) RecentByArea(ctx context.Context, userID uint, featureArea string, limit int) ([]models.UserActivity, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	var events []models.UserActivity
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND feature_area = ?", userID, featureArea).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}
