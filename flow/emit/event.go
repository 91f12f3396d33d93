// Package emit provides observability event emission for flow execution,
// decoupled from the flow package itself so logging/tracing backends never
// need to import the scheduler.
package emit

// Event is one observability event raised during a run. It mirrors the
// runner's FlowStarted/StepStarted/StepCompleted/FlowCompleted milestones
// but carries them as free-form Meta rather than a typed union, so new
// backends don't need to track the flow package's types.
type Event struct {
	// RunID identifies the run that raised this event.
	RunID string

	// StepSeq is the ordinal of this event within the run's emission
	// order, starting at 0 with FlowStarted.
	StepSeq int

	// NodeID is the step ID this event concerns, empty for flow-level events.
	NodeID string

	// Msg names the milestone: "flow_started", "step_started",
	// "step_completed", "flow_completed".
	Msg string

	// Meta carries milestone-specific fields: "step_type", "status",
	// "duration_ms", "fired_ports", "error_code", "flow_status", etc.
	Meta map[string]interface{}
}
