// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"academy/internal/models"
	"academy/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // weak randomness is fine for demo data
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample user. All seed users share the
// password "password123" so local logins are easy.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	level := f.r.Intn(12)
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		Password: string(hashed),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Level:    &level,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateTopic constructs and persists a topic authored by the given user.
func (f *Factory) CreateTopic(author *models.User, categoryID uint, overrides ...func(*models.ForumTopic)) (*models.ForumTopic, error) {
	title := gofakeit.Sentence(f.r.Intn(6) + 4)
	createdAt := f.pastTimestamp(60)
	topic := &models.ForumTopic{
		Slug:           service.Slugify(title),
		Title:          title,
		Content:        gofakeit.Paragraph(2, 4, 8, "\n\n"),
		AuthorID:       author.ID,
		CategoryID:     categoryID,
		IsQuestion:     f.r.Intn(3) == 0,
		CreatedAt:      createdAt,
		LastActivityAt: createdAt,
	}

	for _, override := range overrides {
		override(topic)
	}

	if err := f.db.Create(topic).Error; err != nil {
		return nil, err
	}
	return topic, nil
}

// CreatePost persists a reply in the given topic.
func (f *Factory) CreatePost(author *models.User, topic *models.ForumTopic, parentID *uint) (*models.ForumPost, error) {
	post := &models.ForumPost{
		TopicID:   topic.ID,
		AuthorID:  author.ID,
		Content:   gofakeit.Paragraph(1, 3, 10, "\n"),
		ParentID:  parentID,
		CreatedAt: f.pastTimestamp(30),
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateReaction persists a reaction on the post. Duplicate (user, post, type)
// combinations fail on the partial unique index, which callers may ignore.
func (f *Factory) CreateReaction(user *models.User, post *models.ForumPost) error {
	reactionType := models.ReactionTypes[f.r.Intn(len(models.ReactionTypes))]
	reaction := &models.ForumReaction{
		UserID:       user.ID,
		PostID:       &post.ID,
		ReactionType: reactionType,
	}
	return f.db.Create(reaction).Error
}

// CreateActivity persists an activity event in a random feature area.
func (f *Factory) CreateActivity(user *models.User) error {
	event := &models.UserActivity{
		UserID:       user.ID,
		ActivityType: []string{"view", "complete", "bookmark"}[f.r.Intn(3)],
		FeatureArea:  models.FeatureAreas[f.r.Intn(len(models.FeatureAreas))],
		ItemID:       gofakeit.UUID(),
		CreatedAt:    f.pastTimestamp(14),
	}
	return f.db.Create(event).Error
}

// pastTimestamp returns a random time within the last maxDays days.
func (f *Factory) pastTimestamp(maxDays int) time.Time {
	daysBack := f.r.Intn(maxDays)
	hoursBack := f.r.Intn(24)
	minsBack := f.r.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour -
		time.Duration(minsBack)*time.Minute)
}
