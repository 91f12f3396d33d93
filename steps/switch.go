package steps

import (
	"context"

	"github.com/flowgraph-go/flowgraph/flow"
)

// Case is one arm of a switch step: a port name and the (interpolatable)
// value that selects it.
type Case struct {
	Name  string `yaml:"name" validate:"required"`
	Value string `yaml:"value"`
}

func (c *Case) Clone() flow.Config {
	clone := *c
	return &clone
}

func (c *Case) ScalarFields() []flow.ScalarField {
	return []flow.ScalarField{
		{
			Name: "value",
			Kind: flow.CoerceString,
			Get:  func() string { return c.Value },
			Set:  func(v any) { c.Value = v.(string) },
		},
	}
}

func (c *Case) MapFields() []flow.MapField               { return nil }
func (c *Case) ListFields() []flow.ListField             { return nil }
func (c *Case) NestedListFields() []flow.NestedListField { return nil }
func (c *Case) NestedFields() []flow.NestedField         { return nil }

// StepSwitchConfig configures a switch step: the value to switch on and the
// cases to match it against.
type StepSwitchConfig struct {
	Value string  `yaml:"value" validate:"required"`
	Cases []*Case `yaml:"cases" validate:"dive"`
}

func (c *StepSwitchConfig) Clone() flow.Config {
	clone := *c
	clone.Cases = make([]*Case, len(c.Cases))
	for i, cs := range c.Cases {
		copied := *cs
		clone.Cases[i] = &copied
	}
	return &clone
}

func (c *StepSwitchConfig) ScalarFields() []flow.ScalarField {
	return []flow.ScalarField{
		{
			Name: "value",
			Kind: flow.CoerceString,
			Get:  func() string { return c.Value },
			Set:  func(v any) { c.Value = v.(string) },
		},
	}
}

func (c *StepSwitchConfig) MapFields() []flow.MapField   { return nil }
func (c *StepSwitchConfig) ListFields() []flow.ListField { return nil }

func (c *StepSwitchConfig) NestedListFields() []flow.NestedListField {
	return []flow.NestedListField{
		{
			Name: "cases",
			Get: func() []flow.Config {
				out := make([]flow.Config, len(c.Cases))
				for i, cs := range c.Cases {
					out[i] = cs
				}
				return out
			},
			Set: func(items []flow.Config) {
				out := make([]*Case, len(items))
				for i, item := range items {
					out[i] = item.(*Case)
				}
				c.Cases = out
			},
		},
	}
}

func (c *StepSwitchConfig) NestedFields() []flow.NestedField { return nil }

// StepSwitch routes flow based on matching a value against configured
// cases. Its ports are dynamic: one per case, in case order, plus "else".
type StepSwitch struct {
	flow.BaseStep
	Cfg *StepSwitchConfig
}

// NewStepSwitch builds a switch step.
func NewStepSwitch(id string, cfg *StepSwitchConfig) *StepSwitch {
	return &StepSwitch{
		BaseStep: flow.BaseStep{
			StepIDValue: id,
			StepKind:    flow.StepSwitch,
		},
		Cfg: cfg,
	}
}

// Ports recomputes the port list from the configured cases on every call,
// so a case renamed after construction is visible to the runner and the
// validator immediately.
func (s *StepSwitch) Ports() []string {
	ports := make([]string, 0, len(s.Cfg.Cases)+1)
	for _, c := range s.Cfg.Cases {
		ports = append(ports, c.Name)
	}
	return append(ports, "else")
}

func (s *StepSwitch) Config() flow.Config    { return s.Cfg }
func (s *StepSwitch) Outputs() []flow.Output { return nil }

func (s *StepSwitch) Info() flow.StepInfo {
	return flow.StepInfo{
		Name:        "Switch",
		Description: "Route flow based on value matching",
		Icon:        "switch",
		Category:    "logic",
		Color:       "#E91E63",
	}
}

func (s *StepSwitch) Run(_ context.Context, _ *flow.State, cfg flow.Config) flow.StepRunResult {
	c := cfg.(*StepSwitchConfig)
	for _, cs := range c.Cases {
		if c.Value == cs.Value {
			return flow.SuccessResult(s.ID(), []string{cs.Name}, map[string]any{"matched_case": cs.Name})
		}
	}
	return flow.SuccessResult(s.ID(), []string{"else"}, map[string]any{"matched_case": nil})
}
