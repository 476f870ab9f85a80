package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Feature areas are the four tracked content verticals.
const (
	FeatureCourses   = "courses"
	FeaturePrompts   = "prompts"
	FeatureGuides    = "guides"
	FeatureResources = "resources"
)

// FeatureAreas lists every valid feature area.
var FeatureAreas = []string{
	FeatureCourses,
	FeaturePrompts,
	FeatureGuides,
	FeatureResources,
}

// IsValidFeatureArea reports whether area is one of the tracked verticals.
func IsValidFeatureArea(area string) bool {
	for _, known := range FeatureAreas {
		if area == known {
			return true
		}
	}
	return false
}

// JSONMap stores arbitrary event metadata as a jsonb column.
type JSONMap map[string]interface{}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for JSONMap")
	}
	return json.Unmarshal(data, m)
}

// UserActivity is one immutable event in the append-only activity log.
type UserActivity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_user_activity_feed" json:"user_id"`
	ActivityType string    `gorm:"size:50;not null" json:"activity_type"`
	FeatureArea  string    `gorm:"size:20;not null;index" json:"feature_area"`
	ItemID       string    `gorm:"size:64" json:"item_id,omitempty"`
	Metadata     JSONMap   `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt    time.Time `gorm:"index:idx_user_activity_feed" json:"created_at"`
}

// UserStat is the aggregate counter keyed by (user, activity type, feature
// area), incremented with INSERT ... ON CONFLICT DO UPDATE.
type UserStat struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"not null;uniqueIndex:idx_user_stat_key" json:"user_id"`
	ActivityType   string    `gorm:"size:50;not null;uniqueIndex:idx_user_stat_key" json:"activity_type"`
	FeatureArea    string    `gorm:"size:20;not null;uniqueIndex:idx_user_stat_key" json:"feature_area"`
	Count          int       `gorm:"default:0" json:"count"`
	LastActivityAt time.Time `json:"last_activity_at"`
}
