package repository

import (
	"context"
	"errors"

	"academy/internal/cache"
	"academy/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for forum posts.
type PostRepository interface {
	GetByID(ctx context.Context, id uint) (*models.ForumPost, error)
	ListByTopic(ctx context.Context, topicID uint, includeHidden bool, limit, offset int) ([]models.ForumPost, error)
	Create(ctx context.Context, post *models.ForumPost) error
	Update(ctx context.Context, post *models.ForumPost) error
	Delete(ctx context.Context, id uint) error
	SetHidden(ctx context.Context, id uint, hidden bool) error
	SetSolution(ctx context.Context, topicID, postID uint) error
	IncrementReactions(ctx context.Context, id uint, delta int) error
	Search(ctx context.Context, query string, limit int) ([]models.ForumPost, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.ForumPost, error) {
	var post models.ForumPost
	if err := r.db.WithContext(ctx).
		Preload("Author").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) ListByTopic(ctx context.Context, topicID uint, includeHidden bool, limit, offset int) ([]models.ForumPost, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}

	q := r.db.WithContext(ctx).
		Preload("Author").
		Where("topic_id = ?", topicID)
	if !includeHidden {
		q = q.Where("is_hidden = false")
	}

	var posts []models.ForumPost
	err := q.Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.ForumPost) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTopic(ctx, post.TopicID)
	return nil
}

func (r *postRepository) Update(ctx context.Context, post *models.ForumPost) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTopic(ctx, post.TopicID)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.ForumPost{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) SetHidden(ctx context.Context, id uint, hidden bool) error {
	err := r.db.WithContext(ctx).Model(&models.ForumPost{}).
		Where("id = ?", id).
		UpdateColumn("is_hidden", hidden).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// SetSolution marks one post as the accepted answer and clears any previous
// one in the same transaction, so a topic never carries two solutions.
func (r *postRepository) SetSolution(ctx context.Context, topicID, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ForumPost{}).
			Where("topic_id = ? AND is_solution = true", topicID).
			UpdateColumn("is_solution", false).Error; err != nil {
			return err
		}
		res := tx.Model(&models.ForumPost{}).
			Where("id = ? AND topic_id = ?", postID, topicID).
			UpdateColumn("is_solution", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.ForumTopic{}).
			Where("id = ?", topicID).
			UpdateColumn("is_solved", true).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", postID)
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateTopic(ctx, topicID)
	return nil
}

func (r *postRepository) IncrementReactions(ctx context.Context, id uint, delta int) error {
	err := r.db.WithContext(ctx).Model(&models.ForumPost{}).
		Where("id = ?", id).
		UpdateColumn("reactions_count", gorm.Expr("reactions_count + ?", delta)).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Search matches the query as a case-insensitive substring of the post body.
// Hidden posts and posts of hidden topics never appear.
func (r *postRepository) Search(ctx context.Context, query string, limit int) ([]models.ForumPost, error) {
	var posts []models.ForumPost
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Topic").
		Joins("JOIN forum_topics ON forum_topics.id = forum_posts.topic_id AND forum_topics.is_hidden = false AND forum_topics.deleted_at IS NULL").
		Where("forum_posts.is_hidden = false").
		Where("forum_posts.content ILIKE ?", pattern).
		Order("forum_posts.created_at DESC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
