package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Toggles counts relationship toggles by kind (follow, like, rating) and
	// resulting state (created, removed, updated).
	Toggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "face2geek_toggles_total",
		Help: "Relationship toggles by kind and result",
	}, []string{"kind", "result"})

	// NotificationsCreated counts persisted notifications by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "face2geek_notifications_created_total",
		Help: "Notifications persisted by type",
	}, []string{"type"})

	// BadgesAwarded counts badge awards by badge name.
	BadgesAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "face2geek_badges_awarded_total",
		Help: "Badges awarded by badge name",
	}, []string{"badge"})

	// HookFailures counts failed or panicking post-commit hooks.
	HookFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "face2geek_hook_failures_total",
		Help: "Post-commit hook failures by hook and event",
	}, []string{"hook", "event"})

	// HookLatency records how long each post-commit hook takes.
	HookLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "face2geek_hook_duration_seconds",
		Help:    "Post-commit hook latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"hook"})

	// CacheLookups counts cache-aside lookups by cache name and outcome (hit, miss, error).
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "face2geek_cache_lookups_total",
		Help: "Cache lookups by cache and outcome",
	}, []string{"cache", "outcome"})
)

// RecordToggle increments the toggle counter.
func RecordToggle(kind, result string) {
	Toggles.WithLabelValues(kind, result).Inc()
}
