package repository

import (
	"context"

	"face2geek/internal/models"

	"gorm.io/gorm"
)

// SnippetRepository defines the interface for snippet data operations
type SnippetRepository interface {
	Create(ctx context.Context, snippet *models.Snippet) error
	GetByID(ctx context.Context, id uint, viewerID uint) (*models.Snippet, error)
	List(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Snippet, error)
	ListByOwners(ctx context.Context, ownerIDs []uint, limit int, viewerID uint) ([]*models.Snippet, error)
	IncrementViews(ctx context.Context, id uint) (int64, error)
}

type snippetRepository struct {
	db *gorm.DB
}

// NewSnippetRepository creates a new snippet repository
func NewSnippetRepository(db *gorm.DB) SnippetRepository {
	return &snippetRepository{db: db}
}

func (r *snippetRepository) Create(ctx context.Context, snippet *models.Snippet) error {
	if err := r.db.WithContext(ctx).Create(snippet).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *snippetRepository) GetByID(ctx context.Context, id uint, viewerID uint) (*models.Snippet, error) {
	var snippet models.Snippet
	if err := applySnippetDetails(r.db.WithContext(ctx), viewerID).
		Preload("User.Profile").
		First(&snippet, id).Error; err != nil {
		return nil, lookupError(err, "Snippet", id)
	}
	return &snippet, nil
}

func (r *snippetRepository) List(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Snippet, error) {
	var snippets []*models.Snippet
	if err := applySnippetDetails(r.db.WithContext(ctx), viewerID).
		Preload("User.Profile").
		Order("snippets.created_at DESC, snippets.id DESC").
		Limit(clampLimit(limit, 20, 100)).
		Offset(offset).
		Find(&snippets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return snippets, nil
}

// ListByOwners returns the newest snippets authored by any of ownerIDs.
func (r *snippetRepository) ListByOwners(ctx context.Context, ownerIDs []uint, limit int, viewerID uint) ([]*models.Snippet, error) {
	if len(ownerIDs) == 0 {
		return []*models.Snippet{}, nil
	}
	var snippets []*models.Snippet
	if err := applySnippetDetails(r.db.WithContext(ctx), viewerID).
		Preload("User.Profile").
		Where("snippets.user_id IN ?", ownerIDs).
		Order("snippets.created_at DESC, snippets.id DESC").
		Limit(clampLimit(limit, 20, 100)).
		Find(&snippets).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return snippets, nil
}

// IncrementViews bumps the view counter atomically and returns the new value.
func (r *snippetRepository) IncrementViews(ctx context.Context, id uint) (int64, error) {
	var views int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Snippet{}).
			Where("id = ?", id).
			UpdateColumn("views", gorm.Expr("views + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.Snippet{}).Where("id = ?", id).Pluck("views", &views).Error
	})
	if err != nil {
		return 0, lookupError(err, "Snippet", id)
	}
	return views, nil
}

// applySnippetDetails adds subqueries to fetch counts, average rating and
// liked status in a single query.
func applySnippetDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "snippets.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.snippet_id = snippets.id) AS likes_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.snippet_id = snippets.id) AS comments_count, " +
		"(SELECT COUNT(*) FROM ratings WHERE ratings.snippet_id = snippets.id) AS ratings_count, " +
		"CAST((SELECT COALESCE(AVG(ratings.score), 0) FROM ratings WHERE ratings.snippet_id = snippets.id) AS FLOAT) AS avg_rating"

	if viewerID != 0 {
		return db.Select(selectQuery+", EXISTS(SELECT 1 FROM likes WHERE likes.snippet_id = snippets.id AND likes.user_id = ?) AS liked", viewerID)
	}
	return db.Select(selectQuery + ", false AS liked")
}
