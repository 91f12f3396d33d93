package steps

import (
	"context"

	"github.com/flowgraph-go/flowgraph/flow"
)

// StepTransformConfig configures a transform step.
type StepTransformConfig struct {
	Expression string `yaml:"expression"`
	OutputKey  string `yaml:"output_key"`
}

func (c *StepTransformConfig) Clone() flow.Config {
	clone := *c
	return &clone
}

// StepTransform is a registered step kind without an execution body: the
// closed type set names it, but no transform semantics ship yet. Running
// one fails with NOT_IMPLEMENTED.
type StepTransform struct {
	flow.BaseStep
	Cfg *StepTransformConfig
}

// NewStepTransform builds a transform step.
func NewStepTransform(id string, cfg *StepTransformConfig) *StepTransform {
	return &StepTransform{
		BaseStep: flow.BaseStep{
			StepIDValue: id,
			StepKind:    flow.StepTransform,
			StepPorts:   []string{"default", "error"},
		},
		Cfg: cfg,
	}
}

func (s *StepTransform) Config() flow.Config    { return s.Cfg }
func (s *StepTransform) Outputs() []flow.Output { return nil }

func (s *StepTransform) Info() flow.StepInfo {
	return flow.StepInfo{
		Name:        "Transform",
		Description: "Transform state values",
		Icon:        "shuffle",
		Category:    "utility",
		Color:       "#9E9E9E",
	}
}

func (s *StepTransform) Run(_ context.Context, _ *flow.State, _ flow.Config) flow.StepRunResult {
	return flow.FailureResult(s.ID(), s.Ports(), "transform step is not implemented", flow.ErrCodeNotImplemented, nil)
}
