package emit

import "context"

// Emitter receives observability events from a run. Implementations must
// not block the driver for long and must not panic; a slow or failing
// backend should degrade (drop, buffer, log) rather than stall execution.
type Emitter interface {
	// Emit sends a single event.
	Emit(event Event)

	// EmitBatch sends multiple events in arrival order.
	EmitBatch(ctx context.Context, events []Event) error

	// Flush blocks until any buffered events have been delivered.
	Flush(ctx context.Context) error
}
