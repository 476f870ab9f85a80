package models

import (
	"time"

	"gorm.io/gorm"
)

// ForumPost is a reply within a topic. ParentID threads replies to other
// posts of the same topic.
type ForumPost struct {
	ID       uint        `gorm:"primaryKey" json:"id"`
	TopicID  uint        `gorm:"not null;index" json:"topic_id"`
	Topic    *ForumTopic `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
	AuthorID uint        `gorm:"not null;index" json:"author_id"`
	Author   *User       `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content  string      `gorm:"type:text;not null" json:"content"`
	ParentID *uint       `gorm:"index" json:"parent_id,omitempty"`

	IsSolution     bool `gorm:"default:false" json:"is_solution"`
	IsHidden       bool `gorm:"default:false;index" json:"is_hidden"`
	ReactionsCount int  `gorm:"default:0" json:"reactions_count"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
