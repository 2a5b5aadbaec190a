package database

import (
	"fmt"
	"testing"

	modelspkg "face2geek/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesEngagementTables(t *testing.T) {
	seen := map[string]bool{}
	for _, model := range PersistentModels() {
		name := fmt.Sprintf("%T", model)
		require.False(t, seen[name], "%s registered twice", name)
		seen[name] = true
	}

	for _, want := range []interface{}{
		&modelspkg.Follow{},
		&modelspkg.Like{},
		&modelspkg.Rating{},
		&modelspkg.UserBadge{},
		&modelspkg.ConversationParticipant{},
	} {
		assert.True(t, seen[fmt.Sprintf("%T", want)], "%T missing", want)
	}
}
