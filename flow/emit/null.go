package emit

import "context"

// NullEmitter discards every event. It is the default Emitter so a Runner
// constructed without flow.WithEmitter never pays for observability it
// didn't ask for.
type NullEmitter struct{}

func (NullEmitter) Emit(Event) {}

func (NullEmitter) EmitBatch(context.Context, []Event) error { return nil }

func (NullEmitter) Flush(context.Context) error { return nil }
