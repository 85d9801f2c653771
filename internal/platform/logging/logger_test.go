package logging

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_InfoContextAddsFieldsAndTrace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "match scored", "match_id", int64(7), "error", errors.New("boom"))

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["match_id"] != int64(7) {
		t.Fatalf("unexpected match_id field: %#v", fields["match_id"])
	}
	if fields["error"] != "boom" {
		t.Fatalf("unexpected error field: %#v", fields["error"])
	}
	if fields["trace_id"] != traceID.String() {
		t.Fatalf("unexpected trace_id field: %#v", fields["trace_id"])
	}
}

func TestLogger_OddArgsAndNilLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetDefault(FromZap(zap.New(core)))
	t.Cleanup(func() { SetDefault(nil) })

	var logger *Logger
	logger.Warn("dangling", "key")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected nil logger to fall back to default, got %d entries", len(entries))
	}
	if _, ok := entries[0].ContextMap()["key"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestContextWith_FieldsAccumulate(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	ctx := ContextWith(context.Background(), "request_id", "req-1")
	ctx = ContextWith(ctx, "user_id", "user-a")

	logger.InfoContext(ctx, "squad saved", "match_id", int64(1))
	logger.Info("no context fields")
	logger.DebugContext(ctx, "below level")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 log entries, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-1" || fields["user_id"] != "user-a" || fields["match_id"] != int64(1) {
		t.Fatalf("unexpected fields: %#v", fields)
	}
	if _, ok := entries[1].ContextMap()["user_id"]; ok {
		t.Fatalf("plain Info should not carry context fields")
	}
}

func TestLogger_WithSharesSync(t *testing.T) {
	logger := NewNop()
	child := logger.With("service", "npl-fantasy")
	if err := child.Sync(); err != nil {
		t.Fatalf("sync child: %v", err)
	}
	if err := logger.Sync(); err != nil {
		t.Fatalf("second sync should be a no-op: %v", err)
	}
}
