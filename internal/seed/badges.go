package seed

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"face2geek/internal/models"
	"face2geek/internal/repository"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed badges.yaml
var defaultBadges []byte

// DefaultBadges returns the built-in badge catalog.
func DefaultBadges() ([]*models.Badge, error) {
	return ParseBadges(defaultBadges)
}

// ParseBadges decodes a YAML badge list and rejects unknown criteria,
// non-positive thresholds and duplicate names.
func ParseBadges(raw []byte) ([]*models.Badge, error) {
	var badges []*models.Badge
	if err := yaml.Unmarshal(raw, &badges); err != nil {
		return nil, fmt.Errorf("decode badge catalog: %w", err)
	}

	seen := make(map[string]bool, len(badges))
	for i, b := range badges {
		b.Name = strings.TrimSpace(b.Name)
		if b.Name == "" {
			return nil, fmt.Errorf("badge %d: name is required", i)
		}
		if seen[b.Name] {
			return nil, fmt.Errorf("badge %q: duplicate name", b.Name)
		}
		seen[b.Name] = true
		if _, ok := (models.BadgeMetrics{}).Value(b.Criteria); !ok {
			return nil, fmt.Errorf("badge %q: unknown criteria %q", b.Name, b.Criteria)
		}
		if b.Threshold <= 0 {
			return nil, fmt.Errorf("badge %q: threshold must be positive", b.Name)
		}
	}
	return badges, nil
}

// Badges inserts the default catalog entries that are missing and returns
// how many were added. Safe to run on every start.
func Badges(ctx context.Context, db *gorm.DB) (int64, error) {
	badges, err := DefaultBadges()
	if err != nil {
		return 0, err
	}
	return repository.NewBadgeRepository(db).EnsureCatalog(ctx, badges)
}
