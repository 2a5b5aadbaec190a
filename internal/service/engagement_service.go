package service

import (
	"context"

	"face2geek/internal/events"
	"face2geek/internal/models"
	"face2geek/internal/observability"
	"face2geek/internal/repository"

	"go.opentelemetry.io/otel/attribute"
)

// EngagementService is the toggle engine for follows, likes and ratings.
// Notification and badge events are published only when a toggle creates a
// relationship; removals publish events that only refresh cached counters.
type EngagementService struct {
	engagement repository.EngagementRepository
	users      repository.UserRepository
	snippets   repository.SnippetRepository
	bus        *events.Bus
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(
	engagement repository.EngagementRepository,
	users repository.UserRepository,
	snippets repository.SnippetRepository,
	bus *events.Bus,
) *EngagementService {
	return &EngagementService{
		engagement: engagement,
		users:      users,
		snippets:   snippets,
		bus:        bus,
	}
}

// ToggleFollow follows or unfollows the user behind username and returns the
// resulting state.
func (s *EngagementService) ToggleFollow(ctx context.Context, followerID uint, username string) (following bool, err error) {
	span, ctx := observability.StartSpan(ctx, "engagement.toggle_follow", attribute.String("target.username", username))
	defer span.EndWith(&err)

	if followerID == 0 {
		return false, models.NewUnauthorizedError("Authentication required")
	}
	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if target.ID == followerID {
		return false, models.NewValidationError("You cannot follow yourself")
	}

	following, err = s.engagement.ToggleFollow(ctx, followerID, target.ID)
	if err != nil {
		return false, err
	}
	observability.RecordToggle("follow", toggleResult(following))
	span.AddAttributes(attribute.Bool("follow.following", following))

	if following {
		s.bus.Publish(ctx, events.FollowCreated{FollowerID: followerID, FollowedID: target.ID})
	} else {
		s.bus.Publish(ctx, events.FollowRemoved{FollowerID: followerID, FollowedID: target.ID})
	}
	return following, nil
}

// FollowStatus reports follower counts for username and whether viewerID follows them.
func (s *EngagementService) FollowStatus(ctx context.Context, viewerID uint, username string) (*models.FollowStatus, error) {
	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.engagement.FollowStatus(ctx, viewerID, target.ID)
}

// ToggleLike likes or unlikes a snippet.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, snippetID uint) (result *models.LikeResult, err error) {
	span, ctx := observability.StartSpan(ctx, "engagement.toggle_like", attribute.Int64("snippet.id", int64(snippetID)))
	defer span.EndWith(&err)

	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	snippet, err := s.snippets.GetByID(ctx, snippetID, 0)
	if err != nil {
		return nil, err
	}

	result, err = s.engagement.ToggleLike(ctx, userID, snippetID)
	if err != nil {
		return nil, err
	}
	observability.RecordToggle("like", toggleResult(result.Liked))

	if result.Liked {
		s.bus.Publish(ctx, events.LikeCreated{UserID: userID, SnippetID: snippetID, OwnerID: snippet.UserID})
	} else {
		s.bus.Publish(ctx, events.LikeRemoved{UserID: userID, SnippetID: snippetID, OwnerID: snippet.UserID})
	}
	return result, nil
}

// LikeStatus returns the like count of a snippet and whether viewerID liked it.
func (s *EngagementService) LikeStatus(ctx context.Context, viewerID, snippetID uint) (*models.LikeStatus, error) {
	if _, err := s.snippets.GetByID(ctx, snippetID, 0); err != nil {
		return nil, err
	}
	return s.engagement.LikeStatus(ctx, viewerID, snippetID)
}

// RateSnippet records the user's score for a snippet. Re-rating replaces the
// score and emits no event.
func (s *EngagementService) RateSnippet(ctx context.Context, userID, snippetID uint, score int) (rating *models.Rating, err error) {
	span, ctx := observability.StartSpan(ctx, "engagement.rate", attribute.Int64("snippet.id", int64(snippetID)))
	defer span.EndWith(&err)

	if userID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if score < models.MinRatingScore || score > models.MaxRatingScore {
		return nil, models.NewValidationError("Score must be between 1 and 5")
	}
	snippet, err := s.snippets.GetByID(ctx, snippetID, 0)
	if err != nil {
		return nil, err
	}

	rating, created, err := s.engagement.UpsertRating(ctx, userID, snippetID, score)
	if err != nil {
		return nil, err
	}

	if created {
		observability.RecordToggle("rating", "created")
		s.bus.Publish(ctx, events.RatingCreated{UserID: userID, SnippetID: snippetID, OwnerID: snippet.UserID, Score: score})
	} else {
		observability.RecordToggle("rating", "updated")
	}
	return rating, nil
}

// RatingSummary returns the average score and rating count of a snippet.
func (s *EngagementService) RatingSummary(ctx context.Context, snippetID uint) (*models.RatingSummary, error) {
	if _, err := s.snippets.GetByID(ctx, snippetID, 0); err != nil {
		return nil, err
	}
	return s.engagement.RatingSummary(ctx, snippetID)
}

func toggleResult(on bool) string {
	if on {
		return "created"
	}
	return "removed"
}
