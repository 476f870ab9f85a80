package repository

import (
	"context"

	"academy/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines persistence operations for the notification inbox.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.ForumNotification) error
	// ListByUser returns the newest notifications with actor and topic
	// preloaded for enrichment.
	ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]models.ForumNotification, error)
	// MarkRead flips one notification owned by the user. Reports whether a
	// row matched.
	MarkRead(ctx context.Context, userID, notificationID uint) (bool, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository returns a new NotificationRepository implementation.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.ForumNotification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID uint, unreadOnly bool, limit int) ([]models.ForumNotification, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}

	q := r.db.WithContext(ctx).
		Preload("Actor").
		Preload("Topic").
		Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = false")
	}

	var notifications []models.ForumNotification
	err := q.Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID, notificationID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.ForumNotification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		UpdateColumn("is_read", true)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.ForumNotification{}).
		Where("user_id = ? AND is_read = false", userID).
		UpdateColumn("is_read", true)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ForumNotification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
