// Package featureflags evaluates FEATURE_FLAGS rollouts.
package featureflags

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// Known flags.
const (
	// TopRatedBadge enables the TOP_RATED badge criterion.
	TopRatedBadge = "top_rated_badge"
	// LeaderboardCache serves the leaderboard through Redis cache-aside.
	LeaderboardCache = "leaderboard_cache"
)

// Defaults apply unless FEATURE_FLAGS overrides them.
var Defaults = map[string]string{
	TopRatedBadge:    "on",
	LeaderboardCache: "on",
}

// rollout is a parsed flag value: the share of users, 0..100, that see it.
// Unparseable values roll out to nobody.
type rollout struct {
	raw     string
	percent int
}

func parseRollout(value string) rollout {
	r := rollout{raw: value}
	switch value {
	case "on", "true", "1":
		r.percent = 100
	case "off", "false", "0":
	default:
		if pct, ok := strings.CutSuffix(value, "%"); ok {
			if n, err := strconv.Atoi(pct); err == nil {
				r.percent = min(max(n, 0), 100)
			}
		}
	}
	return r
}

// Manager holds flags parsed from a "name=value,..." list. Values are
// on/off (also true/false, 1/0) or a percentage such as "25%", which enables
// the flag for a stable subset of signed-in users.
type Manager struct {
	flags map[string]rollout
}

// NewManager parses raw on top of Defaults.
func NewManager(raw string) *Manager {
	return NewManagerWithDefaults(raw, Defaults)
}

// NewManagerWithDefaults parses raw on top of a copy of defaults. Malformed
// entries are skipped.
func NewManagerWithDefaults(raw string, defaults map[string]string) *Manager {
	m := &Manager{flags: make(map[string]rollout, len(defaults))}
	for name, value := range defaults {
		m.set(name, value)
	}
	for _, entry := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		m.set(name, value)
	}
	return m
}

func (m *Manager) set(name, value string) {
	name, value = normalize(name), normalize(value)
	if name == "" || value == "" {
		return
	}
	m.flags[name] = parseRollout(value)
}

// Enabled reports whether name is on for userID. Partial rollouts never
// include anonymous callers.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}
	name = normalize(name)
	r, ok := m.flags[name]
	if !ok {
		return false
	}
	switch {
	case r.percent >= 100:
		return true
	case r.percent <= 0, userID == 0:
		return false
	}
	return bucket(name, userID) < r.percent
}

// Raw returns the configured value of every flag.
func (m *Manager) Raw() map[string]string {
	out := map[string]string{}
	if m == nil {
		return out
	}
	for name, r := range m.flags {
		out[name] = r.raw
	}
	return out
}

// Snapshot evaluates every flag for userID.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := map[string]bool{}
	if m == nil {
		return out
	}
	for name := range m.flags {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// bucket places userID in one of 100 buckets, stable per flag.
func bucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	_, _ = h.Write([]byte{':'})
	_, _ = h.Write([]byte(strconv.FormatUint(uint64(userID), 10)))
	return int(h.Sum32() % 100)
}
