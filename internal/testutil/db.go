// Package testutil provides shared test databases and fixtures for backend tests.
package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"face2geek/internal/database"
	"face2geek/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var seq atomic.Uint64

// NewTestDB opens a migrated sqlite database in a temp dir. The database is
// closed when the test ends.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "face2geek_test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.ApplySchema(context.Background(), db); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return db
}

// CreateUser inserts a user with a profile named username.
func CreateUser(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()

	n := seq.Add(1)
	user := &models.User{
		Email: fmt.Sprintf("%s-%d@example.com", username, n),
		Name:  username,
		Profile: &models.Profile{
			Username: username,
			FullName: username + " Test",
		},
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// CreateSnippet inserts a snippet owned by userID.
func CreateSnippet(t testing.TB, db *gorm.DB, userID uint, title string) *models.Snippet {
	t.Helper()

	snippet := &models.Snippet{
		Title:    title,
		Code:     "fmt.Println(\"" + title + "\")",
		Language: "go",
		Tags:     []string{"go"},
		UserID:   userID,
	}
	if err := db.Create(snippet).Error; err != nil {
		t.Fatalf("create snippet %s: %v", title, err)
	}
	return snippet
}

// CreateBadge inserts a catalog badge.
func CreateBadge(t testing.TB, db *gorm.DB, name string, criteria models.BadgeCriteria, threshold int64) *models.Badge {
	t.Helper()

	badge := &models.Badge{Name: name, Description: name, Icon: "star", Criteria: criteria, Threshold: threshold}
	if err := db.Create(badge).Error; err != nil {
		t.Fatalf("create badge %s: %v", name, err)
	}
	return badge
}
