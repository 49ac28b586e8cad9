package dolt

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/leapstack-labs/doltctl/internal/dolt")

// startSpan opens a client span for one statement against the engine.
// Without an SDK installed the global tracer is a no-op, so spans add no
// behavior unless the embedding process wires an exporter.
func startSpan(ctx context.Context, op, stmt string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "dolt."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "dolt"),
			attribute.String("db.operation", op),
			attribute.String("db.statement", spanSQL(stmt)),
		))
}

// spanSQL truncates statement text so oversized queries do not bloat traces.
func spanSQL(stmt string) string {
	const max = 300
	if len(stmt) > max {
		return stmt[:max] + "…"
	}
	return stmt
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
