package seed

import (
	_ "embed"
	"fmt"

	"academy/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed categories.yml
var categoriesYAML []byte

type categoryFile struct {
	Categories []categoryEntry `yaml:"categories"`
}

type categoryEntry struct {
	Name        string `yaml:"name"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Color       string `yaml:"color"`
	SortOrder   int    `yaml:"sort_order"`
}

// BuiltInCategories parses the embedded category manifest.
func BuiltInCategories() ([]models.ForumCategory, error) {
	var file categoryFile
	if err := yaml.Unmarshal(categoriesYAML, &file); err != nil {
		return nil, fmt.Errorf("parse categories manifest: %w", err)
	}

	categories := make([]models.ForumCategory, 0, len(file.Categories))
	for _, entry := range file.Categories {
		if entry.Name == "" || entry.Slug == "" {
			return nil, fmt.Errorf("category manifest entry missing name or slug: %+v", entry)
		}
		categories = append(categories, models.ForumCategory{
			Name:        entry.Name,
			Slug:        entry.Slug,
			Description: entry.Description,
			Icon:        entry.Icon,
			Color:       entry.Color,
			SortOrder:   entry.SortOrder,
		})
	}
	return categories, nil
}

// Categories upserts the built-in forum categories. Re-running keeps slugs
// stable and refreshes names and descriptions.
func Categories(db *gorm.DB) error {
	categories, err := BuiltInCategories()
	if err != nil {
		return err
	}

	for i := range categories {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "icon", "color", "sort_order", "updated_at"}),
		}).Create(&categories[i]).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", categories[i].Slug, err)
		}
	}
	return nil
}
