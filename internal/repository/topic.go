package repository

import (
	"context"
	"errors"
	"time"

	"academy/internal/cache"
	"academy/internal/models"

	"gorm.io/gorm"
)

// TopicListFilter narrows topic listings.
type TopicListFilter struct {
	CategoryID *uint
	AuthorID   *uint
	// Solved filters question topics by resolution state when set.
	Solved *bool
	// IncludeHidden is only honored for moderators.
	IncludeHidden bool
	Limit         int
	Offset        int
}

// TopicRepository defines persistence operations for forum topics.
type TopicRepository interface {
	GetByID(ctx context.Context, id uint) (*models.ForumTopic, error)
	GetBySlug(ctx context.Context, slug string) (*models.ForumTopic, error)
	List(ctx context.Context, filter TopicListFilter) ([]models.ForumTopic, error)
	Create(ctx context.Context, topic *models.ForumTopic) error
	Update(ctx context.Context, topic *models.ForumTopic) error
	Delete(ctx context.Context, id uint) error
	SetFlag(ctx context.Context, id uint, column string, value bool) error
	IncrementCounter(ctx context.Context, id uint, column string, delta int) error
	TouchActivity(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, limit int) ([]models.ForumTopic, error)
}

// Columns the repository will bump or toggle. Guarding against arbitrary
// column names keeps the Exprs safe.
var (
	topicCounterColumns = map[string]bool{
		"posts_count":     true,
		"views_count":     true,
		"reactions_count": true,
	}
	topicFlagColumns = map[string]bool{
		"is_pinned": true,
		"is_locked": true,
		"is_hidden": true,
		"is_solved": true,
	}
)

type topicRepository struct {
	db *gorm.DB
}

// NewTopicRepository returns a new TopicRepository implementation.
func NewTopicRepository(db *gorm.DB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) GetByID(ctx context.Context, id uint) (*models.ForumTopic, error) {
	var topic models.ForumTopic
	key := cache.TopicKey(id)

	err := cache.Aside(ctx, key, &topic, cache.TopicTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("Author").
			Preload("Category").
			First(&topic, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Topic", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepository) GetBySlug(ctx context.Context, slug string) (*models.ForumTopic, error) {
	var topic models.ForumTopic
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("slug = ?", slug).
		First(&topic).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Topic", slug)
		}
		return nil, models.NewInternalError(err)
	}
	return &topic, nil
}

func (r *topicRepository) List(ctx context.Context, filter TopicListFilter) ([]models.ForumTopic, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	q := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category")

	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.Solved != nil {
		q = q.Where("is_question = true AND is_solved = ?", *filter.Solved)
	}
	if !filter.IncludeHidden {
		q = q.Where("is_hidden = false")
	}

	var topics []models.ForumTopic
	err := q.Order("is_pinned DESC, last_activity_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&topics).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return topics, nil
}

func (r *topicRepository) Create(ctx context.Context, topic *models.ForumTopic) error {
	if topic.LastActivityAt.IsZero() {
		topic.LastActivityAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(topic).Error; err != nil {
		if isDuplicateError(err) {
			return models.NewValidationError("Topic slug already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *topicRepository) Update(ctx context.Context, topic *models.ForumTopic) error {
	if err := r.db.WithContext(ctx).Save(topic).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTopic(ctx, topic.ID)
	return nil
}

func (r *topicRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.ForumTopic{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTopic(ctx, id)
	return nil
}

// SetFlag toggles one of the moderation flags.
func (r *topicRepository) SetFlag(ctx context.Context, id uint, column string, value bool) error {
	if !topicFlagColumns[column] {
		return models.NewInternalError(errors.New("unknown topic flag column: " + column))
	}
	err := r.db.WithContext(ctx).Model(&models.ForumTopic{}).
		Where("id = ?", id).
		UpdateColumn(column, value).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTopic(ctx, id)
	return nil
}

// IncrementCounter bumps a denormalized counter by delta without rewriting
// the row, so concurrent bumps never lose updates.
func (r *topicRepository) IncrementCounter(ctx context.Context, id uint, column string, delta int) error {
	if !topicCounterColumns[column] {
		return models.NewInternalError(errors.New("unknown topic counter column: " + column))
	}
	err := r.db.WithContext(ctx).Model(&models.ForumTopic{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTopic(ctx, id)
	return nil
}

func (r *topicRepository) TouchActivity(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Model(&models.ForumTopic{}).
		Where("id = ?", id).
		UpdateColumn("last_activity_at", time.Now()).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTopic(ctx, id)
	return nil
}

// Search matches the query as a case-insensitive substring of title or
// content. Hidden topics never appear in results.
func (r *topicRepository) Search(ctx context.Context, query string, limit int) ([]models.ForumTopic, error) {
	var topics []models.ForumTopic
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Where("is_hidden = false").
		Where("title ILIKE ? OR content ILIKE ?", pattern, pattern).
		Order("last_activity_at DESC").
		Limit(limit).
		Find(&topics).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return topics, nil
}
