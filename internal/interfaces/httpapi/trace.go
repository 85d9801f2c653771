package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/npl-fantasy/internal/platform/tracing"
)

// Middleware and response helpers run inside the otelhttp span already; only
// handlers get their own child span.
var apiTracer = tracing.New("npl-fantasy/internal/interfaces/httpapi", shouldCreateHTTPAPISpan)

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}
