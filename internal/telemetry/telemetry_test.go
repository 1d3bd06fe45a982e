package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/chargen/internal/telemetry"
)

func TestSetupDisabled(t *testing.T) {
	shutdown, err := telemetry.Setup(context.Background(), telemetry.Config{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestNoopTracerRecordsNothing(t *testing.T) {
	_, span := telemetry.NoopTracer().Start(context.Background(), "op")
	defer span.End()

	assert.False(t, span.IsRecording())
	assert.False(t, span.SpanContext().IsValid())
}

func TestTracerNamesComponent(t *testing.T) {
	assert.NotNil(t, telemetry.Tracer("orchestrator"))
}
