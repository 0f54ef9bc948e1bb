package tracing

import (
	"context"
	"testing"
)

func TestInitTracerWithoutExporter(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_SERVICE_NAME", "tradepro-test")

	ctx := context.Background()
	tp, tracer, err := InitTracer(ctx)
	if err != nil {
		t.Fatalf("init tracer: %v", err)
	}
	defer tp.Shutdown(ctx)

	_, span := tracer.Start(ctx, "test-span")
	if !span.SpanContext().IsValid() {
		t.Fatal("expected a recording span with a valid context")
	}
	span.End()
}
