// Command main runs the database seeder for myboard.
package main

import (
	"flag"
	"log"

	"myboard/internal/config"
	"myboard/internal/database"
	"myboard/internal/seed"
)

func main() {
	// Parse command line flags
	numAccounts := flag.Int("accounts", 20, "Number of accounts to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	fixtures := flag.String("fixtures", "", "YAML fixture file to apply instead of random data")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if *fixtures != "" {
		fx, err := seed.LoadFixtures(*fixtures)
		if err != nil {
			log.Fatalf("Loading fixtures failed: %v", err)
		}
		if err := fx.Apply(db); err != nil {
			log.Fatalf("Applying fixtures failed: %v", err)
		}
		log.Printf("Applied fixtures: %d accounts, %d posts, %d friend edges",
			len(fx.Accounts), len(fx.Posts), len(fx.Friends))
		return
	}

	accounts, err := s.SeedBoard(seed.SeedOptions{
		NumAccounts: *numAccounts,
		NumPosts:    *numPosts,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Printf("Seeded %d accounts (password %q) and %d posts",
		len(accounts), seed.DefaultPassword, *numPosts)
}
