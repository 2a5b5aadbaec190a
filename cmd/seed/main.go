// Command main runs the demo data seeder for face2geek.
package main

import (
	"context"
	"flag"
	"log"

	"face2geek/internal/config"
	"face2geek/internal/database"
	"face2geek/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 20, "Number of users to create")
	numSnippets := flag.Int("snippets", 100, "Number of snippets to create")
	shouldClean := flag.Bool("clean", false, "Delete existing users and engagement before seeding")
	dryRun := flag.Bool("dry-run", false, "Generate data without writing it")
	randSeed := flag.Int64("seed", 0, "Random seed for reproducible runs (0 = time based)")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d snippets, clean=%v\n", *numUsers, *numSnippets, *shouldClean)

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

	sum, err := seed.Seed(context.Background(), db, seed.Options{
		NumUsers:    *numUsers,
		NumSnippets: *numSnippets,
		ShouldClean: *shouldClean,
		DryRun:      *dryRun,
		RandSeed:    *randSeed,
	})
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Printf("✨ All done! %d users, %d snippets, %d badges awarded.", sum.Users, sum.Snippets, sum.BadgesAwarded)
}
