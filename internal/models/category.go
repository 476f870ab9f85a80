package models

import "time"

// ForumCategory groups topics. TopicsCount is denormalized and maintained by
// the topic repository.
type ForumCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Slug        string    `gorm:"unique;not null" json:"slug"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	SortOrder   int       `gorm:"default:0" json:"sort_order"`
	TopicsCount int       `gorm:"default:0" json:"topics_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
