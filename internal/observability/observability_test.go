package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"face2geek/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestCorrelationID_RoundTrip(t *testing.T) {
	id := GenerateCorrelationID()
	require.Len(t, id, 36)

	ctx := WithCorrelationID(context.Background(), id)
	assert.Equal(t, id, ExtractCorrelationID(ctx))
	assert.Empty(t, ExtractCorrelationID(context.Background()))
}

func TestLogHookFailure_LogsAndCounts(t *testing.T) {
	var buf bytes.Buffer
	prev := Log()
	UseLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { UseLogger(prev) })

	before := testutil.ToFloat64(HookFailures.WithLabelValues("badges", "like.created"))
	LogHookFailure(context.Background(), "badges", "like.created", errors.New("db down"))
	after := testutil.ToFloat64(HookFailures.WithLabelValues("badges", "like.created"))

	assert.Equal(t, before+1, after)
	assert.Contains(t, buf.String(), "hook=badges")
	assert.Contains(t, buf.String(), "db down")
}

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(context.Background(), TracingConfig{ServiceName: "test", Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	span, ctx := StartSpan(context.Background(), "noop")
	assert.NotNil(t, ctx)
	span.SetError(errors.New("ignored"))
	span.End()
}

func TestInitTracing_UnknownExporter(t *testing.T) {
	_, err := InitTracing(context.Background(), TracingConfig{ServiceName: "test", Enabled: true, Exporter: "zipkin"})
	assert.ErrorContains(t, err, "zipkin")
}

func TestSpan_ErrorStatus(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	prev := Tracer
	Tracer = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)).Tracer("test")
	t.Cleanup(func() { Tracer = prev })

	run := func(name string, err error) {
		span, _ := StartSpan(context.Background(), name)
		span.EndWith(&err)
	}
	run("not_found", models.NewNotFoundError("Snippet", 9))
	run("internal", models.NewInternalError(errors.New("db down")))
	run("ok", nil)

	ended := rec.Ended()
	require.Len(t, ended, 3)
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
	assert.Contains(t, ended[0].Attributes(), attribute.String("app.error_code", models.CodeNotFound))
	assert.Equal(t, codes.Error, ended[1].Status().Code)
	assert.Equal(t, codes.Unset, ended[2].Status().Code)
}
