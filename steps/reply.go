package steps

import (
	"context"

	"github.com/flowgraph-go/flowgraph/flow"
)

// StepReplyConfig configures a reply step: a template whose {{refs}} are
// resolved against state before Run.
type StepReplyConfig struct {
	Template string `yaml:"template"`
}

func (c *StepReplyConfig) Clone() flow.Config {
	clone := *c
	return &clone
}

func (c *StepReplyConfig) ScalarFields() []flow.ScalarField {
	return []flow.ScalarField{
		{
			Name: "template",
			Kind: flow.CoerceString,
			Get:  func() string { return c.Template },
			Set:  func(v any) { c.Template = v.(string) },
		},
	}
}

func (c *StepReplyConfig) MapFields() []flow.MapField               { return nil }
func (c *StepReplyConfig) ListFields() []flow.ListField             { return nil }
func (c *StepReplyConfig) NestedListFields() []flow.NestedListField { return nil }
func (c *StepReplyConfig) NestedFields() []flow.NestedField         { return nil }

// StepReply generates a reply message from its (already resolved) template
// and stores it in state under "reply".
type StepReply struct {
	flow.BaseStep
	Cfg *StepReplyConfig
}

// NewStepReply builds a reply step.
func NewStepReply(id string, cfg *StepReplyConfig) *StepReply {
	return &StepReply{
		BaseStep: flow.BaseStep{
			StepIDValue: id,
			StepKind:    flow.StepReply,
			StepPorts:   []string{"default"},
		},
		Cfg: cfg,
	}
}

func (s *StepReply) Config() flow.Config { return s.Cfg }

func (s *StepReply) Outputs() []flow.Output {
	return []flow.Output{
		{Key: "reply", Type: flow.StateText, Description: "Generated reply"},
	}
}

func (s *StepReply) Info() flow.StepInfo {
	return flow.StepInfo{
		Name:        "Reply",
		Description: "Generate a reply message",
		Icon:        "message",
		Category:    "conversation",
		Color:       "#00BCD4",
	}
}

func (s *StepReply) Run(_ context.Context, state *flow.State, cfg flow.Config) flow.StepRunResult {
	c := cfg.(*StepReplyConfig)
	state.Set("reply", c.Template)
	return flow.SuccessResult(s.ID(), nil, map[string]any{"reply": c.Template})
}
