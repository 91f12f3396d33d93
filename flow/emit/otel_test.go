package emit

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func attributeMap(attrs []attribute.KeyValue) map[string]interface{} {
	out := make(map[string]interface{}, len(attrs))
	for _, kv := range attrs {
		out[string(kv.Key)] = kv.Value.AsInterface()
	}
	return out
}

// TestOTelEmitterEmit verifies an event becomes a span with its metadata as
// attributes.
func TestOTelEmitterEmit(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	emitter := NewOTelEmitter(tp.Tracer("test"))
	emitter.Emit(Event{
		RunID:  "r1",
		NodeID: "step-a",
		Msg:    "step_completed",
		Meta:   map[string]interface{}{"status": "success"},
	})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	span := spans[0]
	if span.Name != "step_completed" {
		t.Errorf("span name = %q", span.Name)
	}
	attrs := attributeMap(span.Attributes)
	if attrs["run_id"] != "r1" {
		t.Errorf("run_id attr = %v", attrs["run_id"])
	}
	if attrs["step_id"] != "step-a" {
		t.Errorf("step_id attr = %v", attrs["step_id"])
	}
}

// TestOTelEmitterErrorStatus verifies error-status events mark the span.
func TestOTelEmitterErrorStatus(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	emitter := NewOTelEmitter(tp.Tracer("test"))
	emitter.Emit(Event{
		RunID: "r1",
		Msg:   "step_completed",
		Meta: map[string]interface{}{
			"status":        "error",
			"error_message": "boom",
		},
	})

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}
	if spans[0].Status.Code != codes.Error {
		t.Errorf("span status = %v, want error", spans[0].Status.Code)
	}
	if spans[0].Status.Description != "boom" {
		t.Errorf("span status description = %q", spans[0].Status.Description)
	}
}

// TestOTelEmitterEmitBatch verifies each batched event becomes a span.
func TestOTelEmitterEmitBatch(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	emitter := NewOTelEmitter(tp.Tracer("test"))
	err := emitter.EmitBatch(context.Background(), []Event{
		{RunID: "r1", Msg: "step_started"},
		{RunID: "r1", Msg: "step_completed"},
	})
	if err != nil {
		t.Fatalf("EmitBatch failed: %v", err)
	}
	if got := len(exporter.GetSpans()); got != 2 {
		t.Errorf("spans = %d, want 2", got)
	}
}

// TestNullEmitter verifies the default sink accepts everything quietly.
func TestNullEmitter(t *testing.T) {
	var n NullEmitter
	n.Emit(Event{RunID: "r1"})
	if err := n.EmitBatch(context.Background(), []Event{{RunID: "r1"}}); err != nil {
		t.Errorf("EmitBatch = %v", err)
	}
	if err := n.Flush(context.Background()); err != nil {
		t.Errorf("Flush = %v", err)
	}
}
