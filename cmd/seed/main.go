// Command main runs the database seeder for the Academy forum.
package main

import (
	"flag"
	"log"

	"academy/internal/config"
	"academy/internal/database"
	"academy/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 40, "Number of users to create")
	numTopics := flag.Int("topics", 120, "Number of topics to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d topics, clean=%v\n", *numUsers, *numTopics, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	_, err = database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run seeder
	s := seed.NewSeeder(database.DB)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("❌ Cleanup failed: %v", err)
		}
	}

	if err := s.Seed(seed.Options{
		NumUsers:    *numUsers,
		NumTopics:   *numTopics,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
