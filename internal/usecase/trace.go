package usecase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/npl-fantasy/internal/platform/tracing"
)

var usecaseTracer = tracing.New("npl-fantasy/internal/usecase", nil)

func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return usecaseTracer.Start(ctx, name, attrs...)
}
