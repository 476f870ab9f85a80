package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"academy/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumTopics   int
	ShouldClean bool
}

// Seeder populates the database with demo forum content.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	r       *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	//nolint:gosec // weak randomness is fine for seeding
	return &Seeder{
		db:      db,
		factory: NewFactory(db),
		r:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll truncates the seeded tables so re-seeding starts clean.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE forum_reactions, forum_notifications, forum_posts,
		forum_topics, forum_categories, user_activities, user_stats, users
		RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// Seed populates the database: categories from the manifest, then users,
// topics, replies, reactions and activity events.
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Seeding %d users and %d topics...", opts.NumUsers, opts.NumTopics)

	if err := Categories(s.db); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	var categories []models.ForumCategory
	if err := s.db.Order("sort_order ASC").Find(&categories).Error; err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	if len(categories) == 0 {
		return fmt.Errorf("no categories available to seed topics into")
	}
	log.Printf("%d categories available", len(categories))

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		overrides := []func(*models.User){}
		if i == 0 {
			// First user is a known admin for local testing.
			overrides = append(overrides, func(u *models.User) {
				u.Username = "admin"
				u.Email = "admin@academy.local"
				u.IsAdmin = true
			})
		}
		user, err := s.factory.CreateUser(overrides...)
		if err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("%d users created", len(users))

	topicCount := 0
	postCount := 0
	for i := 0; i < opts.NumTopics; i++ {
		author := users[s.r.Intn(len(users))]
		category := categories[s.r.Intn(len(categories))]

		topic, err := s.factory.CreateTopic(author, category.ID)
		if err != nil {
			return fmt.Errorf("create topic: %w", err)
		}
		topicCount++

		replies := s.r.Intn(8)
		var posts []*models.ForumPost
		for j := 0; j < replies; j++ {
			replier := users[s.r.Intn(len(users))]
			var parentID *uint
			// Occasionally thread under an earlier reply.
			if len(posts) > 0 && s.r.Intn(3) == 0 {
				parentID = &posts[s.r.Intn(len(posts))].ID
			}
			post, err := s.factory.CreatePost(replier, topic, parentID)
			if err != nil {
				return fmt.Errorf("create post: %w", err)
			}
			posts = append(posts, post)
			postCount++

			// Sprinkle reactions; duplicates trip the unique index and
			// are simply skipped.
			if s.r.Intn(2) == 0 {
				reactor := users[s.r.Intn(len(users))]
				_ = s.factory.CreateReaction(reactor, post)
			}
		}

		if err := s.db.Model(topic).Updates(map[string]interface{}{
			"posts_count": replies,
			"views_count": s.r.Intn(500),
		}).Error; err != nil {
			return fmt.Errorf("update topic counters: %w", err)
		}
	}
	log.Printf("%d topics and %d posts created", topicCount, postCount)

	activityCount := 0
	for _, user := range users {
		events := s.r.Intn(10)
		for j := 0; j < events; j++ {
			if err := s.factory.CreateActivity(user); err != nil {
				return fmt.Errorf("create activity: %w", err)
			}
			activityCount++
		}
	}
	log.Printf("%d activity events created", activityCount)

	log.Println("Database seeding completed")
	return nil
}
