// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"
)

var globalLogger atomic.Pointer[slog.Logger]

func init() {
	globalLogger.Store(slog.Default())
}

// UseLogger routes observability logs through l, typically the request-aware
// logger from the middleware package.
func UseLogger(l *slog.Logger) {
	if l != nil {
		globalLogger.Store(l)
	}
}

// Log returns the logger observability helpers write to.
func Log() *slog.Logger {
	return globalLogger.Load()
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID tags all log lines produced by one post-commit dispatch.
const CorrelationID LogContextKey = "correlation_id"

// GenerateCorrelationID creates a new unique correlation ID.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationID).(string); ok {
		return id
	}
	return ""
}

// LogHookFailure records a failed side effect. Failures are never returned to
// the caller of the primary action.
func LogHookFailure(ctx context.Context, hook, event string, err error) {
	HookFailures.WithLabelValues(hook, event).Inc()
	Log().ErrorContext(ctx, "post-commit hook failed",
		slog.String("hook", hook),
		slog.String("event", event),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
		slog.String("error", err.Error()),
	)
}

// LogHookPanic records a recovered panic inside a hook.
func LogHookPanic(ctx context.Context, hook, event string, recovered any, stack []byte) {
	HookFailures.WithLabelValues(hook, event).Inc()
	Log().ErrorContext(ctx, "post-commit hook panicked",
		slog.String("hook", hook),
		slog.String("event", event),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
		slog.Any("panic", recovered),
		slog.String("stack", string(stack)),
	)
}
