package events

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"face2geek/internal/observability"

	"go.opentelemetry.io/otel/attribute"
)

// DefaultHookTimeout bounds a hook when the bus is built with a zero timeout.
const DefaultHookTimeout = 3 * time.Second

// Handler reacts to a committed event. A returned error is logged, never
// propagated to the publisher.
type Handler func(ctx context.Context, ev Event) error

type subscription struct {
	hook    string
	handler Handler
}

// Bus runs subscribed hooks synchronously after the primary write. Each hook
// gets its own timeout, detached from the caller's cancellation, and a
// failure or panic in one hook does not stop the others.
type Bus struct {
	mu      sync.RWMutex
	subs    map[string][]subscription
	timeout time.Duration
}

// NewBus creates a bus whose hooks run with the given timeout.
func NewBus(timeout time.Duration) *Bus {
	if timeout <= 0 {
		timeout = DefaultHookTimeout
	}
	return &Bus{subs: make(map[string][]subscription), timeout: timeout}
}

// Subscribe registers h under the hook name for events named event.
func (b *Bus) Subscribe(event, hook string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[event] = append(b.subs[event], subscription{hook: hook, handler: h})
}

// Hooks lists the hook names subscribed to event, in registration order.
func (b *Bus) Hooks(event string) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	names := make([]string, 0, len(b.subs[event]))
	for _, s := range b.subs[event] {
		names = append(names, s.hook)
	}
	return names
}

// Publish runs every hook subscribed to ev and returns once all of them have
// finished. A nil bus drops the event.
func (b *Bus) Publish(ctx context.Context, ev Event) {
	if b == nil || ev == nil {
		return
	}

	b.mu.RLock()
	subs := append([]subscription(nil), b.subs[ev.Name()]...)
	b.mu.RUnlock()
	if len(subs) == 0 {
		return
	}

	base := context.WithoutCancel(ctx)
	if observability.ExtractCorrelationID(base) == "" {
		base = observability.WithCorrelationID(base, observability.GenerateCorrelationID())
	}

	for _, s := range subs {
		b.run(base, s, ev)
	}
}

func (b *Bus) run(base context.Context, s subscription, ev Event) {
	ctx, cancel := context.WithTimeout(base, b.timeout)
	defer cancel()

	span, ctx := observability.StartSpan(ctx, "hook."+s.hook,
		attribute.String("hook.name", s.hook),
		attribute.String("event.name", ev.Name()),
	)
	start := time.Now()

	var err error
	defer func() {
		observability.HookLatency.WithLabelValues(s.hook).Observe(time.Since(start).Seconds())
		span.EndWith(&err)
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
			observability.LogHookPanic(ctx, s.hook, ev.Name(), r, debug.Stack())
		}
	}()

	if err = s.handler(ctx, ev); err != nil {
		observability.LogHookFailure(ctx, s.hook, ev.Name(), err)
	}
}
