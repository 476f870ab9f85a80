package models

import "time"

// Notification type constants prevent typos in event names.
const (
	NotificationReaction = "reaction"
	NotificationReply    = "reply"
	NotificationSolution = "solution"
	NotificationMention  = "mention"
)

// ForumNotification is a per-user inbox row. Actor and Topic are denormalized
// into the list response; either may be nil when the joined row is gone.
type ForumNotification struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	UserID  uint  `gorm:"not null;index" json:"user_id"`
	ActorID *uint `gorm:"index" json:"actor_id,omitempty"`
	TopicID *uint `gorm:"index" json:"topic_id,omitempty"`
	PostID  *uint `gorm:"index" json:"post_id,omitempty"`

	Type    string `gorm:"size:30;not null" json:"type"`
	Title   string `gorm:"not null" json:"title"`
	Message string `json:"message"`
	IsRead  bool   `gorm:"default:false;index" json:"is_read"`

	Actor *User       `gorm:"foreignKey:ActorID" json:"-"`
	Topic *ForumTopic `gorm:"foreignKey:TopicID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// NotificationView is the enriched row returned by the feed: the raw
// notification plus actor name/avatar and topic title/slug, null when the
// joined entity no longer exists.
type NotificationView struct {
	ForumNotification
	ActorName   *string `json:"actor_name"`
	ActorAvatar *string `json:"actor_avatar"`
	TopicTitle  *string `json:"topic_title"`
	TopicSlug   *string `json:"topic_slug"`
}

// View builds the enriched representation from preloaded associations.
func (n *ForumNotification) View() NotificationView {
	v := NotificationView{ForumNotification: *n}
	if n.Actor != nil {
		v.ActorName = &n.Actor.Username
		v.ActorAvatar = &n.Actor.Avatar
	}
	if n.Topic != nil {
		v.TopicTitle = &n.Topic.Title
		v.TopicSlug = &n.Topic.Slug
	}
	return v
}
