package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled_Values(t *testing.T) {
	m := NewManagerWithDefaults("a=on,b=off,c=TRUE,d=false,e=1,f=0,g=maybe,h=x%", nil)

	for _, name := range []string{"a", "c", "e"} {
		assert.True(t, m.Enabled(name, 1), name)
	}
	for _, name := range []string{"b", "d", "f", "g", "h", "missing"} {
		assert.False(t, m.Enabled(name, 1), name)
	}
}

func TestEnabled_Rollout(t *testing.T) {
	m := NewManagerWithDefaults("always=100%,never=0%,over=150%,canary=25%", nil)

	assert.True(t, m.Enabled("always", 1))
	assert.True(t, m.Enabled("over", 1))
	assert.False(t, m.Enabled("never", 1))
	assert.False(t, m.Enabled("canary", 0), "anonymous callers stay out of partial rollouts")

	first := m.Enabled("canary", 42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Enabled("canary", 42))
	}

	on := 0
	for id := uint(1); id <= 1000; id++ {
		if m.Enabled("canary", id) {
			on++
		}
	}
	assert.InDelta(t, 250, on, 80)
}

func TestParseAndSnapshot(t *testing.T) {
	m := NewManagerWithDefaults(" bad ,x=on, y = 20% ,z=off,=on,w= ", nil)

	assert.Equal(t, map[string]string{"x": "on", "y": "20%", "z": "off"}, m.Raw())

	snap := m.Snapshot(123)
	assert.Len(t, snap, 3)
	assert.True(t, snap["x"])
	assert.False(t, snap["z"])
}

func TestDefaults(t *testing.T) {
	m := NewManager("")
	assert.True(t, m.Enabled(TopRatedBadge, 0))
	assert.True(t, m.Enabled(LeaderboardCache, 0))

	m = NewManager("TOP_RATED_BADGE=off")
	assert.False(t, m.Enabled(TopRatedBadge, 7))
	assert.Len(t, m.Raw(), len(Defaults))
}

func TestNilManager(t *testing.T) {
	var m *Manager
	assert.False(t, m.Enabled(TopRatedBadge, 1))
	assert.Empty(t, m.Raw())
	assert.Empty(t, m.Snapshot(1))
}
