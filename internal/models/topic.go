package models

import (
	"time"

	"gorm.io/gorm"
)

// ForumTopic is a discussion thread.
//
// PostsCount, ViewsCount and ReactionsCount are denormalized aggregates.
// They are bumped with single-column SQL increments by the repositories and
// never recomputed by application code.
type ForumTopic struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Slug       string         `gorm:"unique;not null" json:"slug"`
	Title      string         `gorm:"not null" json:"title"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	AuthorID   uint           `gorm:"not null;index" json:"author_id"`
	Author     *User          `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CategoryID uint           `gorm:"not null;index" json:"category_id"`
	Category   *ForumCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	IsPinned   bool `gorm:"default:false" json:"is_pinned"`
	IsLocked   bool `gorm:"default:false" json:"is_locked"`
	IsHidden   bool `gorm:"default:false;index" json:"is_hidden"`
	IsSolved   bool `gorm:"default:false" json:"is_solved"`
	IsQuestion bool `gorm:"default:false" json:"is_question"`
	// IsWiki allows trusted users to edit the topic content collaboratively.
	IsWiki bool `gorm:"default:false" json:"is_wiki"`

	PostsCount     int `gorm:"default:0" json:"posts_count"`
	ViewsCount     int `gorm:"default:0" json:"views_count"`
	ReactionsCount int `gorm:"default:0" json:"reactions_count"`

	LastActivityAt time.Time      `gorm:"index" json:"last_activity_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
