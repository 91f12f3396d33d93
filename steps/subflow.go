package steps

import (
	"context"

	"github.com/flowgraph-go/flowgraph/flow"
)

// StepSubFlowConfig configures a sub-flow step: the ID of the flow to
// invoke.
type StepSubFlowConfig struct {
	FlowID string `yaml:"flow_id" validate:"required"`
}

func (c *StepSubFlowConfig) Clone() flow.Config {
	clone := *c
	return &clone
}

// StepSubFlow is a registered step kind without an execution body:
// sub-flow invocation is out of scope, so running one fails with
// NOT_IMPLEMENTED.
type StepSubFlow struct {
	flow.BaseStep
	Cfg *StepSubFlowConfig
}

// NewStepSubFlow builds a sub-flow step.
func NewStepSubFlow(id string, cfg *StepSubFlowConfig) *StepSubFlow {
	return &StepSubFlow{
		BaseStep: flow.BaseStep{
			StepIDValue: id,
			StepKind:    flow.StepSubFlow,
			StepPorts:   []string{"default", "error"},
		},
		Cfg: cfg,
	}
}

func (s *StepSubFlow) Config() flow.Config    { return s.Cfg }
func (s *StepSubFlow) Outputs() []flow.Output { return nil }

func (s *StepSubFlow) Info() flow.StepInfo {
	return flow.StepInfo{
		Name:        "Sub-flow",
		Description: "Invoke another flow",
		Icon:        "subdirectory",
		Category:    "utility",
		Color:       "#3F51B5",
	}
}

func (s *StepSubFlow) Run(_ context.Context, _ *flow.State, _ flow.Config) flow.StepRunResult {
	return flow.FailureResult(s.ID(), s.Ports(), "sub-flow invocation is not implemented", flow.ErrCodeNotImplemented, nil)
}
