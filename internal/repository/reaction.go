package repository

import (
	"context"

	"academy/internal/models"

	"gorm.io/gorm"
)

// ReactionCount is the per-type aggregate for one target.
type ReactionCount struct {
	ReactionType string `json:"reaction_type"`
	Count        int    `json:"count"`
}

// ReactionRepository defines persistence operations for forum reactions.
type ReactionRepository interface {
	Create(ctx context.Context, reaction *models.ForumReaction) error
	// DeleteForPost removes the user's reaction of the given type and reports
	// whether a row actually existed.
	DeleteForPost(ctx context.Context, userID, postID uint, reactionType string) (bool, error)
	DeleteForTopic(ctx context.Context, userID, topicID uint, reactionType string) (bool, error)
	CountsForPost(ctx context.Context, postID uint) ([]ReactionCount, error)
	CountsForTopic(ctx context.Context, topicID uint) ([]ReactionCount, error)
	ListByUserForPost(ctx context.Context, userID, postID uint) ([]models.ForumReaction, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository returns a new ReactionRepository implementation.
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Create inserts the reaction. The partial unique indexes reject duplicates;
// that case surfaces as a conflict error so the handler can answer 409.
func (r *reactionRepository) Create(ctx context.Context, reaction *models.ForumReaction) error {
	if err := r.db.WithContext(ctx).Create(reaction).Error; err != nil {
		if isDuplicateError(err) {
			return models.NewConflictError("Reaction already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reactionRepository) DeleteForPost(ctx context.Context, userID, postID uint, reactionType string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ? AND reaction_type = ?", userID, postID, reactionType).
		Delete(&models.ForumReaction{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *reactionRepository) DeleteForTopic(ctx context.Context, userID, topicID uint, reactionType string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND topic_id = ? AND reaction_type = ?", userID, topicID, reactionType).
		Delete(&models.ForumReaction{})
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *reactionRepository) CountsForPost(ctx context.Context, postID uint) ([]ReactionCount, error) {
	var counts []ReactionCount
	err := r.db.WithContext(ctx).Model(&models.ForumReaction{}).
		Select("reaction_type, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Group("reaction_type").
		Scan(&counts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return counts, nil
}

func (r *reactionRepository) CountsForTopic(ctx context.Context, topicID uint) ([]ReactionCount, error) {
	var counts []ReactionCount
	err := r.db.WithContext(ctx).Model(&models.ForumReaction{}).
		Select("reaction_type, COUNT(*) AS count").
		Where("topic_id = ?", topicID).
		Group("reaction_type").
		Scan(&counts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return counts, nil
}

func (r *reactionRepository) ListByUserForPost(ctx context.Context, userID, postID uint) ([]models.ForumReaction, error) {
	var reactions []models.ForumReaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Find(&reactions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reactions, nil
}
