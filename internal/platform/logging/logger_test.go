package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out))
	return out
}

func TestLoggerWritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Writer: &buf, Service: "transfer-market"})

	logger.Named("transfer_service").Info("transfer initiated", "transfer_id", "t-1", "asking_price", 1000, "error", errors.New("boom"))

	line := decodeLine(t, &buf)
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "transfer initiated", line["msg"])
	assert.Equal(t, "transfer_service", line["component"])
	assert.Equal(t, "transfer-market", line["service"])
	assert.Equal(t, "t-1", line["transfer_id"])
	assert.EqualValues(t, 1000, line["asking_price"])
	assert.Equal(t, "boom", line["error"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelWarn, Writer: &buf})

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestLoggerContextAddsSpanFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Writer: &buf})

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.DebugContext(ctx, "with span")

	line := decodeLine(t, &buf)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", line["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", line["span_id"])
}

func TestLoggerOddArgsKeepsDanglingKey(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Writer: &buf})

	logger.Info("odd", "player_id")

	line := decodeLine(t, &buf)
	value, ok := line["player_id"]
	assert.True(t, ok)
	assert.Nil(t, value)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel(" error "))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	assert.NotPanics(t, func() {
		logger.Info("noop")
		_ = logger.With("k", "v")
		_ = logger.Sync()
	})
}

func TestLoggerWithCoreMirrorsEntries(t *testing.T) {
	var buf bytes.Buffer
	core, recorded := observer.New(zapcore.WarnLevel)
	logger := New(Options{Level: LevelInfo, Writer: &buf}).WithCore(core)

	logger.Info("only primary")
	logger.Warn("both", "transfer_id", "t-9")

	assert.NotZero(t, buf.Len())
	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "both", entries[0].Message)
	assert.Equal(t, "t-9", entries[0].ContextMap()["transfer_id"])
}
