// Package seed provides the built-in badge catalog and helpers to create demo
// data. The demo helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"face2geek/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var languages = []string{"go", "python", "typescript", "rust", "sql", "bash", "java", "kotlin"}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the demo seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	seed := opts.RandSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gofakeit.Seed(seed)
	// #nosec G404: acceptable for seeding
	return &Factory{db: db, opts: opts, rng: rand.New(rand.NewSource(seed)), nextID: 1000}
}

// CreateUser constructs and persists a user with a profile. The username is
// made unique with a numeric suffix.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	f.nextID++
	username := sanitizeUsername(gofakeit.Username(), f.nextID)
	user := &models.User{
		Email: fmt.Sprintf("%s@example.com", username),
		Name:  gofakeit.Name(),
		Image: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Profile: &models.Profile{
			Username:  username,
			Bio:       gofakeit.HackerPhrase(),
			GithubURL: "https://github.com/" + username,
		},
	}
	user.Profile.FullName = user.Name

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		user.ID = f.nextID
		user.Profile.UserID = user.ID
		log.Printf("[dry-run] CreateUser: %s", user.Profile.Username)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildSnippet constructs a snippet owned by user without persisting it.
// CreatedAt is spread over the last MaxDays days.
func (f *Factory) BuildSnippet(user *models.User, overrides ...func(*models.Snippet)) *models.Snippet {
	language := gofakeit.RandomString(languages)
	snippet := &models.Snippet{
		Title:       strings.TrimSuffix(gofakeit.Sentence(4), "."),
		Description: gofakeit.Sentence(12),
		Code:        fmt.Sprintf("// %s\n%s", gofakeit.HackerPhrase(), gofakeit.Paragraph(1, 3, 6, "\n")),
		Language:    language,
		Tags:        []string{language, strings.ToLower(gofakeit.HackerNoun())},
		Views:       int64(f.rng.Intn(500)),
		UserID:      user.ID,
	}

	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	snippet.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)

	for _, override := range overrides {
		override(snippet)
	}
	return snippet
}

// CreateSnippetsBatch persists multiple snippets in a single DB call.
func (f *Factory) CreateSnippetsBatch(snippets []*models.Snippet) error {
	if len(snippets) == 0 {
		return nil
	}
	if f.opts.DryRun {
		for _, s := range snippets {
			f.nextID++
			s.ID = f.nextID
		}
		log.Printf("[dry-run] CreateSnippetsBatch: %d snippets (no DB write)", len(snippets))
		return nil
	}
	return f.db.CreateInBatches(&snippets, 100).Error
}

// CreateComment constructs and persists a comment by user on snippet.
func (f *Factory) CreateComment(user *models.User, snippet *models.Snippet, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content:   gofakeit.Sentence(8),
		UserID:    user.ID,
		SnippetID: snippet.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		return comment, nil
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from user on snippet. Existing likes are kept.
func (f *Factory) CreateLike(user *models.User, snippet *models.Snippet) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Like{UserID: user.ID, SnippetID: snippet.ID}).Error
}

// CreateRating persists a score from user on snippet. Existing ratings are kept.
func (f *Factory) CreateRating(user *models.User, snippet *models.Snippet, score int) error {
	if f.opts.DryRun {
		return nil
	}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Rating{UserID: user.ID, SnippetID: snippet.ID, Score: score}).Error
}

// CreateFollow persists follower following followed. Self follows are ignored.
func (f *Factory) CreateFollow(follower, followed *models.User) error {
	if f.opts.DryRun || follower.ID == followed.ID {
		return nil
	}
	return f.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Follow{FollowerID: follower.ID, FollowedID: followed.ID}).Error
}

// sanitizeUsername keeps the characters usernames allow and appends n.
func sanitizeUsername(raw string, n uint) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			sb.WriteRune(r)
		}
	}
	base := sb.String()
	if len(base) > 20 {
		base = base[:20]
	}
	base = strings.Trim(base, "_")
	if base == "" {
		base = "geek"
	}
	return fmt.Sprintf("%s_%d", base, n)
}
