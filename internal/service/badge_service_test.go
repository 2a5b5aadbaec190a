package service

import (
	"context"
	"sync"
	"testing"

	"face2geek/internal/models"
	"face2geek/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeService_FirstSnippetAwardsOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	badge := testutil.CreateBadge(t, env.db, "First Snippet", models.CriteriaSnippetCount, 1)
	author := testutil.CreateUser(t, env.db, "author")

	publish := func(title string) {
		_, err := env.snippets.Publish(ctx, author.ID, CreateSnippetInput{Title: title, Code: "x := 1", Language: "Go"})
		require.NoError(t, err)
	}

	publish("one")
	assert.EqualValues(t, 1, env.count(t, &models.UserBadge{}, "user_id = ? AND badge_id = ?", author.ID, badge.ID))

	publish("two")
	assert.EqualValues(t, 1, env.count(t, &models.UserBadge{}, "user_id = ? AND badge_id = ?", author.ID, badge.ID))
}

func TestBadgeService_Evaluate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	liked := testutil.CreateBadge(t, env.db, "Liked", models.CriteriaLikeCount, 2)
	chatty := testutil.CreateBadge(t, env.db, "Chatty", models.CriteriaCommentCount, 2)
	prolific := testutil.CreateBadge(t, env.db, "Prolific", models.CriteriaSnippetCount, 5)

	owner := testutil.CreateUser(t, env.db, "owner")
	fan1 := testutil.CreateUser(t, env.db, "fan1")
	fan2 := testutil.CreateUser(t, env.db, "fan2")
	snippet := testutil.CreateSnippet(t, env.db, owner.ID, "popular")

	require.NoError(t, env.db.Create(&models.Like{UserID: fan1.ID, SnippetID: snippet.ID}).Error)
	require.NoError(t, env.db.Create(&models.Like{UserID: fan2.ID, SnippetID: snippet.ID}).Error)
	require.NoError(t, env.db.Create(&models.Comment{UserID: owner.ID, SnippetID: snippet.ID, Content: "a"}).Error)
	require.NoError(t, env.db.Create(&models.Comment{UserID: owner.ID, SnippetID: snippet.ID, Content: "b"}).Error)

	awarded, err := env.badges.Evaluate(ctx, owner.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(awarded))
	for _, b := range awarded {
		names = append(names, b.Name)
	}
	assert.ElementsMatch(t, []string{liked.Name, chatty.Name}, names)
	assert.EqualValues(t, 0, env.count(t, &models.UserBadge{}, "user_id = ? AND badge_id = ?", owner.ID, prolific.ID))

	t.Run("re-evaluation awards nothing new", func(t *testing.T) {
		again, err := env.badges.Evaluate(ctx, owner.ID)
		require.NoError(t, err)
		assert.Empty(t, again)
	})

	t.Run("concurrent evaluations never double award", func(t *testing.T) {
		require.NoError(t, env.db.Create(&models.Comment{UserID: fan1.ID, SnippetID: snippet.ID, Content: "c"}).Error)
		require.NoError(t, env.db.Create(&models.Comment{UserID: fan1.ID, SnippetID: snippet.ID, Content: "d"}).Error)

		var wg sync.WaitGroup
		for i := 0; i < 3; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := env.badges.Evaluate(ctx, fan1.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		assert.EqualValues(t, 1, env.count(t, &models.UserBadge{}, "user_id = ? AND badge_id = ?", fan1.ID, chatty.ID))
	})

	t.Run("user badges are listed with their catalog entry", func(t *testing.T) {
		owned, err := env.badges.UserBadges(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, owned, 2)
		for _, ub := range owned {
			require.NotNil(t, ub.Badge)
		}
	})
}

func TestBadgeService_TopRated(t *testing.T) {
	seedTopRated := func(t *testing.T, env *testEnv) (*models.User, *models.Badge) {
		t.Helper()
		badge := testutil.CreateBadge(t, env.db, "Top Rated", models.CriteriaTopRated, 1)
		author := testutil.CreateUser(t, env.db, "author")
		rater := testutil.CreateUser(t, env.db, "rater")
		snippet := testutil.CreateSnippet(t, env.db, author.ID, "gem")
		require.NoError(t, env.db.Create(&models.Rating{UserID: rater.ID, SnippetID: snippet.ID, Score: 5}).Error)
		return author, badge
	}

	t.Run("awarded when enabled", func(t *testing.T) {
		env := newTestEnv(t)
		author, badge := seedTopRated(t, env)

		awarded, err := env.badges.Evaluate(context.Background(), author.ID)
		require.NoError(t, err)
		require.Len(t, awarded, 1)
		assert.Equal(t, badge.ID, awarded[0].ID)
	})

	t.Run("skipped when the flag is off", func(t *testing.T) {
		env := newTestEnv(t, withFlags("top_rated_badge=off"))
		author, _ := seedTopRated(t, env)

		awarded, err := env.badges.Evaluate(context.Background(), author.ID)
		require.NoError(t, err)
		assert.Empty(t, awarded)
	})
}

func TestBadgeService_EmptyCatalog(t *testing.T) {
	env := newTestEnv(t)
	user := testutil.CreateUser(t, env.db, "solo")

	awarded, err := env.badges.Evaluate(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, awarded)

	catalog, err := env.badges.Catalog(context.Background())
	require.NoError(t, err)
	assert.Empty(t, catalog)
}
