package telemetry

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func TestSpanRecorder_FiltersByNameAndOperation(t *testing.T) {
	recorder := NewSpanRecorder()
	tp := NewRecordingProvider("test-subscriber-api", recorder)
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := tp.Tracer("test")
	_, write := tracer.Start(context.Background(), "subscriber.repository.insert",
		trace.WithAttributes(attribute.String("operation", "database.write")))
	write.End()
	_, other := tracer.Start(context.Background(), "subscription.service.subscribe")
	other.End()

	assert.Len(t, recorder.Spans(), 2)
	assert.Len(t, recorder.SpansByName("subscription.service.subscribe"), 1)
	require.Len(t, recorder.SpansByOperation("database.write"), 1)
	assert.Equal(t, "subscriber.repository.insert", recorder.SpansByOperation("database.write")[0].Name())

	recorder.Reset()
	assert.Empty(t, recorder.Spans())
}

func TestInitTracing_ExportsToWriter(t *testing.T) {
	var buf bytes.Buffer
	tp, err := InitTracing("subscriber-api", "1.0.0", &buf)
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(context.Background(), "subscription.handler.subscribe")
	span.End()

	require.NoError(t, ShutdownTracing(context.Background(), tp))
	assert.Contains(t, buf.String(), "subscription.handler.subscribe")
	assert.Contains(t, buf.String(), "subscriber-api")
}
