package flow

import "time"

// EventKind is the closed set of milestones a run emits, starting with
// FlowStarted and ending with FlowCompleted.
type EventKind string

const (
	EventFlowStarted   EventKind = "flow_started"
	EventStepStarted   EventKind = "step_started"
	EventStepCompleted EventKind = "step_completed"
	EventFlowCompleted EventKind = "flow_completed"
)

// FlowRunStatus is the terminal status of a run, attached to FlowCompleted.
type FlowRunStatus string

const (
	FlowSucceeded FlowRunStatus = "succeeded"
	FlowFailed    FlowRunStatus = "failed"
)

// Event is one entry in the runner's event stream. Only the fields
// relevant to Kind are populated; callers switch on Kind before reading
// the rest. The four milestone shapes collapse into one struct so the
// stream stays a single channel type.
type Event struct {
	Kind      EventKind
	RunID     string
	Timestamp time.Time

	// FlowStarted / FlowCompleted
	FlowName  string
	RunStatus FlowRunStatus

	// StepStarted / StepCompleted
	StepID   string
	StepType StepKind

	// StepCompleted only
	Result        StepRunResult
	DurationMS    float64
	StateSnapshot map[string]any
}
