package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	matchIDKey = attribute.Key("npl.match_id")
	userIDKey  = attribute.Key("npl.user_id")
	squadsKey  = attribute.Key("npl.squad_count")
)

var noopSpan = trace.SpanFromContext(context.Background())

// Tracer only starts child spans. Work without a sampled parent, such as a
// filtered health check, gets a no-op span.
type Tracer struct {
	tracer trace.Tracer
	allow  func(name string) bool
}

// New returns a Tracer for scope. A nil allow accepts every non-empty name.
func New(scope string, allow func(name string) bool) Tracer {
	return Tracer{tracer: otel.Tracer(scope), allow: allow}
}

func (t Tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, noopSpan
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if t.allow != nil && !t.allow(name) {
		return ctx, noopSpan
	}
	if t.tracer == nil {
		t.tracer = otel.Tracer("npl-fantasy")
	}
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func MatchID(id int64) attribute.KeyValue {
	return matchIDKey.Int64(id)
}

func UserID(id string) attribute.KeyValue {
	return userIDKey.String(id)
}

func SquadCount(n int) attribute.KeyValue {
	return squadsKey.Int(n)
}
