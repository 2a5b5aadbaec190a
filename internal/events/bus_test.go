package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"face2geek/internal/observability"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_RunsHooksInOrder(t *testing.T) {
	bus := NewBus(time.Second)
	var order []string

	bus.Subscribe(NameLikeCreated, "notify", func(_ context.Context, ev Event) error {
		like, ok := ev.(LikeCreated)
		require.True(t, ok)
		assert.Equal(t, uint(7), like.SnippetID)
		order = append(order, "notify")
		return nil
	})
	bus.Subscribe(NameLikeCreated, "badges", func(context.Context, Event) error {
		order = append(order, "badges")
		return nil
	})
	bus.Subscribe(NameFollowCreated, "other", func(context.Context, Event) error {
		order = append(order, "other")
		return nil
	})

	bus.Publish(context.Background(), LikeCreated{UserID: 1, SnippetID: 7, OwnerID: 2})
	assert.Equal(t, []string{"notify", "badges"}, order)
	assert.Equal(t, []string{"notify", "badges"}, bus.Hooks(NameLikeCreated))
}

func TestBus_FailureAndPanicAreIsolated(t *testing.T) {
	bus := NewBus(time.Second)
	ran := false

	bus.Subscribe(NameCommentCreated, "failing-hook", func(context.Context, Event) error {
		return errors.New("store down")
	})
	bus.Subscribe(NameCommentCreated, "panicking-hook", func(context.Context, Event) error {
		panic("boom")
	})
	bus.Subscribe(NameCommentCreated, "healthy-hook", func(context.Context, Event) error {
		ran = true
		return nil
	})

	failBefore := testutil.ToFloat64(observability.HookFailures.WithLabelValues("failing-hook", NameCommentCreated))
	panicBefore := testutil.ToFloat64(observability.HookFailures.WithLabelValues("panicking-hook", NameCommentCreated))

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), CommentCreated{CommentID: 1, UserID: 1, SnippetID: 1, OwnerID: 2})
	})
	assert.True(t, ran, "later hooks still run")
	assert.Equal(t, failBefore+1, testutil.ToFloat64(observability.HookFailures.WithLabelValues("failing-hook", NameCommentCreated)))
	assert.Equal(t, panicBefore+1, testutil.ToFloat64(observability.HookFailures.WithLabelValues("panicking-hook", NameCommentCreated)))
}

func TestBus_DetachedFromCallerCancellation(t *testing.T) {
	bus := NewBus(time.Second)
	var hookCtxErr error
	var correlation string

	bus.Subscribe(NameFollowCreated, "notify", func(ctx context.Context, _ Event) error {
		hookCtxErr = ctx.Err()
		correlation = observability.ExtractCorrelationID(ctx)
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, FollowCreated{FollowerID: 1, FollowedID: 2})

	assert.NoError(t, hookCtxErr)
	assert.NotEmpty(t, correlation)
}

func TestBus_HookTimeout(t *testing.T) {
	bus := NewBus(20 * time.Millisecond)
	var got error

	bus.Subscribe(NameMessageSent, "slow", func(ctx context.Context, _ Event) error {
		<-ctx.Done()
		got = ctx.Err()
		return got
	})

	bus.Publish(context.Background(), MessageSent{MessageID: 1, ConversationID: 1, SenderID: 1, RecipientID: 2})
	assert.ErrorIs(t, got, context.DeadlineExceeded)
}

func TestBus_NilBusDropsEvents(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), SnippetPublished{SnippetID: 1, UserID: 1})
	})
}
