package service

import (
	"context"
	"strings"

	"face2geek/internal/events"
	"face2geek/internal/models"
	"face2geek/internal/repository"
	"face2geek/internal/validation"
)

// CommentService provides comment business logic.
type CommentService struct {
	comments repository.CommentRepository
	snippets repository.SnippetRepository
	bus      *events.Bus
}

// NewCommentService returns a new CommentService.
func NewCommentService(comments repository.CommentRepository, snippets repository.SnippetRepository, bus *events.Bus) *CommentService {
	return &CommentService{comments: comments, snippets: snippets, bus: bus}
}

// AddComment appends a comment to a snippet.
func (s *CommentService) AddComment(ctx context.Context, userID, snippetID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if err := validation.ValidateText("comment", content, validation.MaxCommentLength); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	snippet, err := s.snippets.GetByID(ctx, snippetID, 0)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{Content: content, UserID: userID, SnippetID: snippetID}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.CommentCreated{
		CommentID: comment.ID,
		UserID:    userID,
		SnippetID: snippetID,
		OwnerID:   snippet.UserID,
	})
	return comment, nil
}

// ListComments returns a snippet's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, snippetID uint, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.snippets.GetByID(ctx, snippetID, 0); err != nil {
		return nil, err
	}
	return s.comments.ListBySnippet(ctx, snippetID, limit, offset)
}
