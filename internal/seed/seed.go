package seed

import (
	"context"
	"fmt"
	"log"

	"face2geek/internal/featureflags"
	"face2geek/internal/models"
	"face2geek/internal/repository"
	"face2geek/internal/service"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumSnippets int
	ShouldClean bool
	DryRun      bool
	// MaxDays bounds how far back snippet timestamps are spread.
	MaxDays int
	// RandSeed makes runs reproducible when non-zero.
	RandSeed int64
}

// Summary reports what a seeding run created.
type Summary struct {
	Users         int
	Snippets      int
	Follows       int
	Likes         int
	Ratings       int
	Comments      int
	BadgesAwarded int
}

// Seed populates the database with a demo social graph: users, snippets and
// the follows, likes, ratings and comments between them. Badges are
// evaluated for every seeded user at the end.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (*Summary, error) {
	if opts.NumUsers < 2 {
		return nil, fmt.Errorf("seeding needs at least 2 users, got %d", opts.NumUsers)
	}
	log.Printf("🌱 Starting database seeding with %d users and %d snippets...", opts.NumUsers, opts.NumSnippets)

	if opts.ShouldClean && !opts.DryRun {
		if err := ClearAll(ctx, db); err != nil {
			return nil, fmt.Errorf("clear data: %w", err)
		}
	}

	if !opts.DryRun {
		if _, err := Badges(ctx, db); err != nil {
			return nil, fmt.Errorf("seed badges: %w", err)
		}
	}

	if db != nil {
		db = db.WithContext(ctx)
	}
	f := NewFactory(db, opts)
	sum := &Summary{}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		u, err := f.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, u)
	}
	sum.Users = len(users)
	log.Printf("✓ %d users created", sum.Users)

	// Each user follows the next few users in a ring.
	for i, u := range users {
		for k := 1; k <= 3 && k < len(users); k++ {
			if err := f.CreateFollow(u, users[(i+k)%len(users)]); err != nil {
				return nil, fmt.Errorf("create follow: %w", err)
			}
			sum.Follows++
		}
	}
	log.Printf("✓ %d follows created", sum.Follows)

	snippets := make([]*models.Snippet, 0, opts.NumSnippets)
	for i := 0; i < opts.NumSnippets; i++ {
		snippets = append(snippets, f.BuildSnippet(users[f.rng.Intn(len(users))]))
	}
	if err := f.CreateSnippetsBatch(snippets); err != nil {
		return nil, fmt.Errorf("create snippets: %w", err)
	}
	sum.Snippets = len(snippets)
	log.Printf("✓ %d snippets created", sum.Snippets)

	for _, s := range snippets {
		for _, u := range users {
			if u.ID == s.UserID {
				continue
			}
			roll := f.rng.Intn(10)
			if roll < 4 {
				if err := f.CreateLike(u, s); err != nil {
					return nil, fmt.Errorf("create like: %w", err)
				}
				sum.Likes++
			}
			if roll < 3 {
				if err := f.CreateRating(u, s, 3+f.rng.Intn(3)); err != nil {
					return nil, fmt.Errorf("create rating: %w", err)
				}
				sum.Ratings++
			}
			if roll == 0 {
				if _, err := f.CreateComment(u, s); err != nil {
					return nil, fmt.Errorf("create comment: %w", err)
				}
				sum.Comments++
			}
		}
	}
	log.Printf("✓ %d likes, %d ratings, %d comments created", sum.Likes, sum.Ratings, sum.Comments)

	if opts.DryRun {
		return sum, nil
	}

	badges := service.NewBadgeService(repository.NewBadgeRepository(db), featureflags.NewManager(""))
	for _, u := range users {
		awarded, err := badges.Evaluate(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("evaluate badges for user %d: %w", u.ID, err)
		}
		sum.BadgesAwarded += len(awarded)
	}
	log.Printf("✓ %d badges awarded", sum.BadgesAwarded)

	log.Println("🎉 Database seeding completed successfully!")
	return sum, nil
}

// ClearAll removes every row of the engagement schema, children first. The
// badge catalog is kept.
func ClearAll(ctx context.Context, db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	tables := []interface{}{
		&models.Message{},
		&models.ConversationParticipant{},
		&models.Conversation{},
		&models.UserBadge{},
		&models.Notification{},
		&models.Comment{},
		&models.Rating{},
		&models.Like{},
		&models.Snippet{},
		&models.Collection{},
		&models.Follow{},
		&models.Profile{},
		&models.User{},
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range tables {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("clear %T: %w", model, err)
			}
		}
		return nil
	})
}
