package emit

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelEmitter turns each event into an immediately-ended OpenTelemetry span
// named after event.Msg, with event.Meta recorded as span attributes. Spans
// are instantaneous markers (the step's own duration is recorded as the
// "duration_ms" attribute on StepCompleted), not long-lived spans wrapping
// the step — that keeps the emitter a pure sink the driver never waits on.
type OTelEmitter struct {
	tracer trace.Tracer
}

// NewOTelEmitter wraps tracer (e.g. otel.Tracer("flowgraph")).
func NewOTelEmitter(tracer trace.Tracer) *OTelEmitter {
	return &OTelEmitter{tracer: tracer}
}

func (o *OTelEmitter) Emit(event Event) {
	ctx := context.Background()
	_, span := o.tracer.Start(ctx, event.Msg)
	defer span.End()
	o.annotate(span, event)
}

func (o *OTelEmitter) EmitBatch(ctx context.Context, events []Event) error {
	for _, event := range events {
		_, span := o.tracer.Start(ctx, event.Msg)
		o.annotate(span, event)
		span.End()
	}
	return nil
}

func (o *OTelEmitter) annotate(span trace.Span, event Event) {
	attrs := []attribute.KeyValue{
		attribute.String("run_id", event.RunID),
	}
	if event.NodeID != "" {
		attrs = append(attrs, attribute.String("step_id", event.NodeID))
	}
	for k, v := range event.Meta {
		attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", v)))
	}
	span.SetAttributes(attrs...)

	if status, _ := event.Meta["status"].(string); status == "error" {
		msg, _ := event.Meta["error_message"].(string)
		span.SetStatus(codes.Error, msg)
	}
}

// Flush is a no-op: spans are ended synchronously in Emit/EmitBatch. Callers
// relying on exporter delivery should flush the underlying TracerProvider.
func (o *OTelEmitter) Flush(context.Context) error { return nil }
