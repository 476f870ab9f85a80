package repository

import (
	"context"
	"errors"

	"academy/internal/cache"
	"academy/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines persistence operations for forum categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.ForumCategory, error)
	GetByID(ctx context.Context, id uint) (*models.ForumCategory, error)
	GetBySlug(ctx context.Context, slug string) (*models.ForumCategory, error)
	Create(ctx context.Context, category *models.ForumCategory) error
	IncrementTopics(ctx context.Context, id uint, delta int) error
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository returns a new CategoryRepository implementation.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]models.ForumCategory, error) {
	var categories []models.ForumCategory

	err := cache.Aside(ctx, cache.CategoryListKey, &categories, cache.CategoryTTL, func() error {
		if err := r.db.WithContext(ctx).Order("sort_order ASC, name ASC").Find(&categories).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.ForumCategory, error) {
	var category models.ForumCategory
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*models.ForumCategory, error) {
	var category models.ForumCategory
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.ForumCategory) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		if isDuplicateError(err) {
			return models.NewValidationError("Category slug already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateCategories(ctx)
	return nil
}

// IncrementTopics bumps the denormalized topic counter by delta.
func (r *categoryRepository) IncrementTopics(ctx context.Context, id uint, delta int) error {
	err := r.db.WithContext(ctx).Model(&models.ForumCategory{}).
		Where("id = ?", id).
		UpdateColumn("topics_count", gorm.Expr("topics_count + ?", delta)).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateCategories(ctx)
	return nil
}
