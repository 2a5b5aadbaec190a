package service

import (
	"context"
	"errors"
	"fmt"

	"face2geek/internal/events"
	"face2geek/internal/models"
)

// Hooks collects the services that react to domain events. Nil members are
// skipped.
type Hooks struct {
	Notifications *NotificationService
	Badges        *BadgeService
	Leaderboard   *LeaderboardService
	Profiles      *ProfileService
}

// RegisterHooks subscribes the post-commit reactions of every domain event.
// Each hook runs independently so a failing notification never blocks badge
// evaluation.
func RegisterHooks(bus *events.Bus, h Hooks) {
	if bus == nil {
		return
	}

	if h.Notifications != nil {
		bus.Subscribe(events.NameFollowCreated, "notify", func(ctx context.Context, ev events.Event) error {
			e := ev.(events.FollowCreated)
			return h.Notifications.Notify(ctx, e.FollowedID, models.NotificationFollow, e.FollowerID, nil)
		})
		bus.Subscribe(events.NameLikeCreated, "notify", func(ctx context.Context, ev events.Event) error {
			e := ev.(events.LikeCreated)
			return h.Notifications.Notify(ctx, e.OwnerID, models.NotificationLike, e.UserID, &e.SnippetID)
		})
		bus.Subscribe(events.NameRatingCreated, "notify", func(ctx context.Context, ev events.Event) error {
			e := ev.(events.RatingCreated)
			return h.Notifications.Notify(ctx, e.OwnerID, models.NotificationRate, e.UserID, &e.SnippetID)
		})
		bus.Subscribe(events.NameCommentCreated, "notify", func(ctx context.Context, ev events.Event) error {
			e := ev.(events.CommentCreated)
			return h.Notifications.Notify(ctx, e.OwnerID, models.NotificationComment, e.UserID, &e.SnippetID)
		})
		bus.Subscribe(events.NameMessageSent, "notify", func(ctx context.Context, ev events.Event) error {
			e := ev.(events.MessageSent)
			return h.Notifications.Notify(ctx, e.RecipientID, models.NotificationMessage, e.SenderID, nil)
		})
	}

	if h.Badges != nil {
		bus.Subscribe(events.NameLikeCreated, "badges", func(ctx context.Context, ev events.Event) error {
			e := ev.(events.LikeCreated)
			return evaluateBadges(ctx, h.Badges, e.OwnerID, e.UserID)
		})
		bus.Subscribe(events.NameRatingCreated, "badges", func(ctx context.Context, ev events.Event) error {
			e := ev.(events.RatingCreated)
			return evaluateBadges(ctx, h.Badges, e.OwnerID, e.UserID)
		})
		bus.Subscribe(events.NameCommentCreated, "badges", func(ctx context.Context, ev events.Event) error {
			e := ev.(events.CommentCreated)
			return evaluateBadges(ctx, h.Badges, e.OwnerID, e.UserID)
		})
		bus.Subscribe(events.NameSnippetPublished, "badges", func(ctx context.Context, ev events.Event) error {
			e := ev.(events.SnippetPublished)
			return evaluateBadges(ctx, h.Badges, e.UserID)
		})
	}

	if h.Leaderboard != nil {
		invalidate := func(ctx context.Context, _ events.Event) error {
			return h.Leaderboard.Invalidate(ctx)
		}
		bus.Subscribe(events.NameLikeCreated, "leaderboard", invalidate)
		bus.Subscribe(events.NameLikeRemoved, "leaderboard", invalidate)
		bus.Subscribe(events.NameRatingCreated, "leaderboard", invalidate)
		bus.Subscribe(events.NameSnippetPublished, "leaderboard", invalidate)
	}

	if h.Profiles != nil {
		bus.Subscribe(events.NameFollowCreated, "profile_stats", func(ctx context.Context, ev events.Event) error {
			e := ev.(events.FollowCreated)
			return h.Profiles.InvalidateStats(ctx, e.FollowerID, e.FollowedID)
		})
		bus.Subscribe(events.NameFollowRemoved, "profile_stats", func(ctx context.Context, ev events.Event) error {
			e := ev.(events.FollowRemoved)
			return h.Profiles.InvalidateStats(ctx, e.FollowerID, e.FollowedID)
		})
		bus.Subscribe(events.NameLikeCreated, "profile_stats", func(ctx context.Context, ev events.Event) error {
			e := ev.(events.LikeCreated)
			return h.Profiles.InvalidateStats(ctx, e.OwnerID)
		})
		bus.Subscribe(events.NameLikeRemoved, "profile_stats", func(ctx context.Context, ev events.Event) error {
			e := ev.(events.LikeRemoved)
			return h.Profiles.InvalidateStats(ctx, e.OwnerID)
		})
		bus.Subscribe(events.NameSnippetPublished, "profile_stats", func(ctx context.Context, ev events.Event) error {
			e := ev.(events.SnippetPublished)
			return h.Profiles.InvalidateStats(ctx, e.UserID)
		})
	}
}

// evaluateBadges runs the evaluator for each distinct user and joins failures.
func evaluateBadges(ctx context.Context, badges *BadgeService, userIDs ...uint) error {
	var errs []error
	seen := make(map[uint]struct{}, len(userIDs))
	for _, id := range userIDs {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if _, err := badges.Evaluate(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("user %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}
