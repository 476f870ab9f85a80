// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"academy/internal/cache"
	"academy/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	TopContributors(ctx context.Context, limit int) ([]models.Contributor, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("User", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateError(err) {
			return models.NewValidationError("User already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

// TopContributors ranks users by forum output (topics plus posts), most
// recent activity breaking ties.
func (r *userRepository) TopContributors(ctx context.Context, limit int) ([]models.Contributor, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}

	var contributors []models.Contributor
	key := cache.ContributorsKey(limit)

	err := cache.Aside(ctx, key, &contributors, cache.ContributorsTTL, func() error {
		query := `
			SELECT u.id AS user_id, u.username, u.avatar, u.level,
				COUNT(DISTINCT t.id) AS topics_count,
				COUNT(DISTINCT p.id) AS posts_count,
				COUNT(DISTINCT t.id) + COUNT(DISTINCT p.id) AS total_count
			FROM users u
			LEFT JOIN forum_topics t ON t.author_id = u.id AND t.deleted_at IS NULL AND t.is_hidden = false
			LEFT JOIN forum_posts p ON p.author_id = u.id AND p.deleted_at IS NULL AND p.is_hidden = false
			WHERE u.deleted_at IS NULL
			GROUP BY u.id, u.username, u.avatar, u.level
			HAVING COUNT(DISTINCT t.id) + COUNT(DISTINCT p.id) > 0
			ORDER BY total_count DESC, u.id ASC
			LIMIT ?`
		if err := r.db.WithContext(ctx).Raw(query, limit).Scan(&contributors).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return contributors, nil
}
