package service

import (
	"context"
	"log/slog"

	"face2geek/internal/featureflags"
	"face2geek/internal/models"
	"face2geek/internal/observability"
	"face2geek/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// BadgeService awards catalog badges once a user's metrics reach their thresholds.
type BadgeService struct {
	repo  repository.BadgeRepository
	flags *featureflags.Manager
}

// NewBadgeService returns a new BadgeService.
func NewBadgeService(repo repository.BadgeRepository, flags *featureflags.Manager) *BadgeService {
	return &BadgeService{repo: repo, flags: flags}
}

// Catalog returns every badge that can be earned.
func (s *BadgeService) Catalog(ctx context.Context) ([]*models.Badge, error) {
	return s.repo.Catalog(ctx)
}

// UserBadges returns the badges a user has earned.
func (s *BadgeService) UserBadges(ctx context.Context, userID uint) ([]*models.UserBadge, error) {
	return s.repo.ListForUser(ctx, userID)
}

// Evaluate awards every badge the user newly qualifies for and returns them.
// Awarding is idempotent, so concurrent evaluations never double-award.
func (s *BadgeService) Evaluate(ctx context.Context, userID uint) (awarded []*models.Badge, err error) {
	span, ctx := observability.StartSpan(ctx, "badges.evaluate", attribute.Int64("user.id", int64(userID)))
	defer span.EndWith(&err)

	catalog, err := s.repo.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	ownedIDs, err := s.repo.OwnedBadgeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	owned := make(map[uint]struct{}, len(ownedIDs))
	for _, id := range ownedIDs {
		owned[id] = struct{}{}
	}

	topRated := s.flags.Enabled(featureflags.TopRatedBadge, userID)
	pending := make([]*models.Badge, 0, len(catalog))
	needTopRated := false
	for _, b := range catalog {
		if _, ok := owned[b.ID]; ok {
			continue
		}
		if b.Criteria == models.CriteriaTopRated {
			if !topRated {
				continue
			}
			needTopRated = true
		}
		pending = append(pending, b)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	metrics, err := s.metrics(ctx, userID, needTopRated)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, b := range pending {
		value, known := metrics.Value(b.Criteria)
		if !known {
			observability.Log().WarnContext(ctx, "badge has unknown criteria",
				slog.String("badge", b.Name),
				slog.String("criteria", string(b.Criteria)),
			)
			continue
		}
		if value < b.Threshold {
			continue
		}
		granted, err := s.repo.Award(ctx, userID, b.ID)
		if err != nil {
			return awarded, err
		}
		if granted {
			observability.BadgesAwarded.WithLabelValues(b.Name).Inc()
			awarded = append(awarded, b)
		}
	}
	span.AddAttributes(attribute.Int("badges.awarded", len(awarded)))
	return awarded, nil
}

func (s *BadgeService) metrics(ctx context.Context, userID uint, withTopRated bool) (models.BadgeMetrics, error) {
	var m models.BadgeMetrics
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		m.Snippets, err = s.repo.CountSnippets(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		m.LikesReceived, err = s.repo.CountLikesReceived(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		m.CommentsWritten, err = s.repo.CountCommentsWritten(gctx, userID)
		return err
	})
	if withTopRated {
		g.Go(func() (err error) {
			m.TopRated, err = s.repo.CountTopRated(gctx, userID, models.TopRatedAverage)
			return err
		})
	}

	return m, g.Wait()
}
