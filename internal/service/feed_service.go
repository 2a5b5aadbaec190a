package service

import (
	"context"

	"face2geek/internal/models"
	"face2geek/internal/repository"
)

// FeedSize caps the personalized feed.
const FeedSize = 20

// FeedService assembles a user's feed from the people they follow.
type FeedService struct {
	engagement repository.EngagementRepository
	snippets   repository.SnippetRepository
}

// NewFeedService returns a new FeedService.
func NewFeedService(engagement repository.EngagementRepository, snippets repository.SnippetRepository) *FeedService {
	return &FeedService{engagement: engagement, snippets: snippets}
}

// FeedFor returns the newest snippets of the users userID follows. Following
// nobody yields an empty feed, never the global timeline.
func (s *FeedService) FeedFor(ctx context.Context, userID uint) ([]*models.Snippet, error) {
	ids, err := s.engagement.FolloweeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*models.Snippet{}, nil
	}
	return s.snippets.ListByOwners(ctx, ids, FeedSize, userID)
}
