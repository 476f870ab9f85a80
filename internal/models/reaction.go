package models

import "time"

// Reaction kinds a user can attach to a post or topic.
const (
	ReactionLike       = "like"
	ReactionLove       = "love"
	ReactionHelpful    = "helpful"
	ReactionInsightful = "insightful"
	ReactionCreative   = "creative"
)

// ReactionTypes lists every valid reaction kind.
var ReactionTypes = []string{
	ReactionLike,
	ReactionLove,
	ReactionHelpful,
	ReactionInsightful,
	ReactionCreative,
}

// IsValidReactionType reports whether t is one of the known reaction kinds.
func IsValidReactionType(t string) bool {
	for _, known := range ReactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ForumReaction is a typed endorsement on exactly one of a post or a topic.
// Uniqueness per (user, target, type) is enforced by partial unique indexes;
// a duplicate insert surfaces as gorm.ErrDuplicatedKey.
type ForumReaction struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	PostID       *uint     `gorm:"index" json:"post_id,omitempty"`
	TopicID      *uint     `gorm:"index" json:"topic_id,omitempty"`
	ReactionType string    `gorm:"size:20;not null" json:"reaction_type"`
	CreatedAt    time.Time `json:"created_at"`
}
