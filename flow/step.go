package flow

import "context"

// StepKind is the closed set of step types a Flow can contain.
type StepKind string

const (
	StepTriggerWebhook    StepKind = "trigger_webhook"
	StepTriggerSchedule   StepKind = "trigger_schedule"
	StepTriggerEvent      StepKind = "trigger_event"
	StepRequest           StepKind = "request"
	StepSetState          StepKind = "set_state"
	StepConditional       StepKind = "conditional"
	StepTransform         StepKind = "transform"
	StepSubFlow           StepKind = "sub_flow"
	StepDelay             StepKind = "delay"
	StepSwitch            StepKind = "switch"
	StepConversationStart StepKind = "conversation_start"
	StepUserMessage       StepKind = "user_message"
	StepReply             StepKind = "reply"
)

// JoinMode governs when a step with multiple incoming edges becomes ready
// to launch.
type JoinMode string

const (
	// JoinNoWait launches as soon as any single upstream result arrives.
	JoinNoWait JoinMode = "no_wait"
	// JoinAllSuccess waits for every incoming edge's source to arrive, and
	// requires all of them to have succeeded.
	JoinAllSuccess JoinMode = "all_success"
	// JoinAllDone waits for every incoming edge's source to arrive,
	// regardless of status.
	JoinAllDone JoinMode = "all_done"
	// JoinFirstSuccess launches as soon as any upstream result succeeds.
	JoinFirstSuccess JoinMode = "first_success"
)

// StepRunStatus is the outcome of a single step execution.
type StepRunStatus string

const (
	StepSuccess StepRunStatus = "success"
	StepError   StepRunStatus = "error"
)

// Output declares a state key a step may write, used only by the validator
// to compute which references are available downstream.
type Output struct {
	Key         string
	Type        StateType
	Description string
}

// StepErrorDetail carries a step failure's machine-readable code and
// free-form details alongside its message.
type StepErrorDetail struct {
	Message string
	Code    string
	Details map[string]any
}

// StepRunResult is what a step's Run returns: its status, which ports fired,
// whether the runner should continue without waiting on it, and either
// output data or an error detail.
type StepRunResult struct {
	StepID                 string
	Status                 StepRunStatus
	FiredPorts             []string
	ContinueWithoutWaiting bool
	OutputData             map[string]any
	Error                  *StepErrorDetail
}

// SuccessResult builds a StepRunResult for a step that completed normally,
// firing ports (defaulting to ["default"] when none are given).
func SuccessResult(stepID string, ports []string, output map[string]any) StepRunResult {
	if len(ports) == 0 {
		ports = []string{"default"}
	}
	return StepRunResult{
		StepID:     stepID,
		Status:     StepSuccess,
		FiredPorts: ports,
		OutputData: output,
	}
}

// FailureResult builds a StepRunResult for a step that failed. The fired
// port is "error" when the step declares an "error" port among stepPorts,
// otherwise "default".
func FailureResult(stepID string, stepPorts []string, message, code string, details map[string]any) StepRunResult {
	port := "default"
	for _, p := range stepPorts {
		if p == "error" {
			port = "error"
			break
		}
	}
	return StepRunResult{
		StepID:     stepID,
		Status:     StepError,
		FiredPorts: []string{port},
		Error: &StepErrorDetail{
			Message: message,
			Code:    code,
			Details: details,
		},
	}
}

// StepInfo is inert descriptive metadata a step kind may expose for
// tooling (registries, editors); it has no bearing on execution or
// validation.
type StepInfo struct {
	Name        string
	Description string
	Icon        string
	Category    string
	Color       string
}

// Step is implemented by every concrete step kind. Ports, Outputs, and
// JoinMode are queried by the validator and runner before Run is ever
// called; Ports in particular may be dynamic (a switch step recomputes its
// ports from its own config on every call).
type Step interface {
	ID() string
	Kind() StepKind
	Ports() []string
	Outputs() []Output
	IsTrigger() bool
	JoinMode() JoinMode
	Config() Config
	Info() StepInfo
	Run(ctx context.Context, state *State, cfg Config) StepRunResult
}

// BaseStep holds the fields common to every step kind; concrete step types
// embed it and implement Outputs/Info/Run/Config themselves.
type BaseStep struct {
	StepIDValue string
	StepKind    StepKind
	StepPorts   []string
	Trigger     bool
	Join        JoinMode
}

func (b BaseStep) ID() string        { return b.StepIDValue }
func (b BaseStep) Kind() StepKind    { return b.StepKind }
func (b BaseStep) Ports() []string   { return b.StepPorts }
func (b BaseStep) IsTrigger() bool   { return b.Trigger }
func (b BaseStep) JoinMode() JoinMode {
	if b.Join == "" {
		return JoinNoWait
	}
	return b.Join
}

// SetJoinMode overrides the step's join mode; flow loaders call this when a
// manifest declares one.
func (b *BaseStep) SetJoinMode(mode JoinMode) { b.Join = mode }
