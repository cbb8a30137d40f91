package usecase

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerScope = "athletes/internal/usecase"

// startUsecaseSpan only opens a child span, on the parent's provider; jobs and
// requests without a sampled parent (the CLI, /healthz) stay untraced.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return parent.TracerProvider().Tracer(tracerScope).Start(ctx, name, trace.WithAttributes(attrs...))
}

func pageAttr(url string) attribute.KeyValue {
	return attribute.String("athletes.page_url", url)
}

// failSpan marks the span failed. Skips are outcomes, not failures.
func failSpan(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
