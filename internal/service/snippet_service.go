package service

import (
	"context"
	"strings"

	"face2geek/internal/events"
	"face2geek/internal/models"
	"face2geek/internal/repository"
	"face2geek/internal/validation"
)

// CreateSnippetInput is the body of POST /snippets.
type CreateSnippetInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Code         string   `json:"code"`
	Language     string   `json:"language"`
	Tags         []string `json:"tags"`
	CollectionID *uint    `json:"collection_id"`
}

// SnippetService publishes and reads snippets.
type SnippetService struct {
	snippets    repository.SnippetRepository
	collections repository.CollectionRepository
	bus         *events.Bus
}

// NewSnippetService returns a new SnippetService.
func NewSnippetService(snippets repository.SnippetRepository, collections repository.CollectionRepository, bus *events.Bus) *SnippetService {
	return &SnippetService{snippets: snippets, collections: collections, bus: bus}
}

// Publish stores a new snippet owned by userID.
func (s *SnippetService) Publish(ctx context.Context, userID uint, in CreateSnippetInput) (*models.Snippet, error) {
	title := strings.TrimSpace(in.Title)
	language := strings.ToLower(strings.TrimSpace(in.Language))
	tags := validation.NormalizeTags(in.Tags)
	if err := validation.ValidateSnippet(title, in.Code, language, tags); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if in.CollectionID != nil {
		collection, err := s.collections.GetByID(ctx, *in.CollectionID)
		if err != nil {
			return nil, err
		}
		if collection.UserID != userID {
			return nil, models.NewForbiddenError("You can only add snippets to your own collections")
		}
	}

	snippet := &models.Snippet{
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		Code:         in.Code,
		Language:     language,
		Tags:         tags,
		UserID:       userID,
		CollectionID: in.CollectionID,
	}
	if err := s.snippets.Create(ctx, snippet); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.SnippetPublished{SnippetID: snippet.ID, UserID: userID})
	return s.snippets.GetByID(ctx, snippet.ID, userID)
}

// Get returns one snippet with its engagement counters.
func (s *SnippetService) Get(ctx context.Context, id, viewerID uint) (*models.Snippet, error) {
	return s.snippets.GetByID(ctx, id, viewerID)
}

// List returns the most recent snippets.
func (s *SnippetService) List(ctx context.Context, limit, offset int, viewerID uint) ([]*models.Snippet, error) {
	return s.snippets.List(ctx, limit, offset, viewerID)
}

// RecordView increments a snippet's view counter and returns the new total.
func (s *SnippetService) RecordView(ctx context.Context, id uint) (int64, error) {
	return s.snippets.IncrementViews(ctx, id)
}
