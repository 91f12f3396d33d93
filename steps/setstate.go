package steps

import (
	"context"

	"github.com/flowgraph-go/flowgraph/flow"
)

// StepSetStateConfig configures a set-state step: which key to write and
// the (interpolatable) value to write it with.
type StepSetStateConfig struct {
	Key   string `yaml:"key" validate:"required"`
	Value any    `yaml:"value"`
}

func (c *StepSetStateConfig) Clone() flow.Config {
	clone := *c
	return &clone
}

func (c *StepSetStateConfig) ScalarFields() []flow.ScalarField {
	return []flow.ScalarField{
		{
			Name: "value",
			Kind: flow.CoerceString,
			Get:  func() string { return flow.TemplateString(c.Value) },
			Set:  func(v any) { c.Value = v },
		},
	}
}

func (c *StepSetStateConfig) MapFields() []flow.MapField             { return nil }
func (c *StepSetStateConfig) ListFields() []flow.ListField            { return nil }
func (c *StepSetStateConfig) NestedListFields() []flow.NestedListField { return nil }
func (c *StepSetStateConfig) NestedFields() []flow.NestedField        { return nil }

// SetStateKey exposes the configured key to the validator (flow.Validate),
// which has no other way to learn that this step produces a state key —
// set-state's output is user-named, not declared via Outputs().
func (c *StepSetStateConfig) SetStateKey() string { return c.Key }

// StepSetState writes config.Value to state under config.Key.
type StepSetState struct {
	flow.BaseStep
	Cfg *StepSetStateConfig
}

// NewStepSetState builds a set-state step.
func NewStepSetState(id string, cfg *StepSetStateConfig) *StepSetState {
	return &StepSetState{
		BaseStep: flow.BaseStep{
			StepIDValue: id,
			StepKind:    flow.StepSetState,
			StepPorts:   []string{"default"},
		},
		Cfg: cfg,
	}
}

func (s *StepSetState) Config() flow.Config     { return s.Cfg }
func (s *StepSetState) Outputs() []flow.Output  { return nil }

func (s *StepSetState) Info() flow.StepInfo {
	return flow.StepInfo{
		Name:        "Set State",
		Description: "Save a value to flow state",
		Icon:        "save",
		Category:    "utility",
		Color:       "#795548",
	}
}

func (s *StepSetState) Run(_ context.Context, state *flow.State, cfg flow.Config) flow.StepRunResult {
	c := cfg.(*StepSetStateConfig)
	state.Set(c.Key, c.Value)
	return flow.SuccessResult(s.ID(), nil, map[string]any{c.Key: c.Value})
}
