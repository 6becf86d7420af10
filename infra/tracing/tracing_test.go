package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_None(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{})
	require.NoError(t, err)
	_, span := otel.Tracer("test").Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_Stdout(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := setup(context.Background(), Config{Exporter: "stdout", ServiceName: "studyplan-test"}, &buf)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = Setup(context.Background(), Config{}) })

	_, span := otel.Tracer("test").Start(context.Background(), "planner.Generate")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
	require.NoError(t, shutdown(context.Background()))

	assert.Contains(t, buf.String(), "planner.Generate")
	assert.Contains(t, buf.String(), "studyplan-test")
}

func TestConfig_Validate(t *testing.T) {
	assert.Error(t, Config{Exporter: "jaeger", SampleRatio: 1}.Validate())
	assert.Error(t, Config{Exporter: "none", SampleRatio: 2}.Validate())
	_, err := Setup(context.Background(), Config{Exporter: "zipkin"})
	assert.Error(t, err)
}
