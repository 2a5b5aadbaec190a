package service

import (
	"context"
	"strings"

	"face2geek/internal/models"
	"face2geek/internal/repository"
	"face2geek/internal/validation"
)

// CreateCollectionInput is the body of POST /collections.
type CreateCollectionInput struct {
	Name     string `json:"name"`
	IsPublic *bool  `json:"is_public"`
}

// CollectionService manages a user's snippet collections.
type CollectionService struct {
	repo repository.CollectionRepository
}

// NewCollectionService returns a new CollectionService.
func NewCollectionService(repo repository.CollectionRepository) *CollectionService {
	return &CollectionService{repo: repo}
}

// Create adds a collection owned by userID. Collections are public unless
// IsPublic is explicitly false.
func (s *CollectionService) Create(ctx context.Context, userID uint, in CreateCollectionInput) (*models.Collection, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Collection name is required")
	}
	if len([]rune(name)) > validation.MaxCollectionName {
		return nil, models.NewValidationError("Collection name must not exceed 100 characters")
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}
	collection := &models.Collection{Name: name, UserID: userID, IsPublic: isPublic}
	if err := s.repo.Create(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// List returns the user's collections.
func (s *CollectionService) List(ctx context.Context, userID uint) ([]*models.Collection, error) {
	return s.repo.ListByUser(ctx, userID)
}
