package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = orig })
	return &buf
}

func TestLoggerFromContext_AttachesTraceIDs(t *testing.T) {
	buf := captureLogs(t)

	traceID, err := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("0102030405060708")
	require.NoError(t, err)

	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	LoggerFromContext(ctx).Info().Msg("narrative generation failed")

	out := buf.String()
	assert.Contains(t, out, `"trace_id":"0102030405060708090a0b0c0d0e0f10"`)
	assert.Contains(t, out, `"span_id":"0102030405060708"`)
}

func TestLoggerFromContext_NoActiveSpan(t *testing.T) {
	buf := captureLogs(t)

	LoggerFromContext(context.Background()).Info().Msg("plain")

	assert.NotContains(t, buf.String(), "trace_id")
}
