package steps

import (
	"context"

	"github.com/flowgraph-go/flowgraph/flow"
)

// TriggerEventConfig configures an event-name trigger.
type TriggerEventConfig struct {
	EventName string `yaml:"event_name" validate:"required"`
}

func (c *TriggerEventConfig) Clone() flow.Config {
	clone := *c
	return &clone
}

// TriggerEvent starts a flow when a named event fires; the dispatcher
// injects event_name/event_data/event_timestamp into state before Run.
type TriggerEvent struct {
	flow.BaseStep
	Cfg *TriggerEventConfig
}

// NewTriggerEvent builds an event trigger step.
func NewTriggerEvent(id string, cfg *TriggerEventConfig) *TriggerEvent {
	return &TriggerEvent{
		BaseStep: flow.BaseStep{
			StepIDValue: id,
			StepKind:    flow.StepTriggerEvent,
			StepPorts:   []string{"default"},
			Trigger:     true,
		},
		Cfg: cfg,
	}
}

func (s *TriggerEvent) Config() flow.Config { return s.Cfg }

func (s *TriggerEvent) Outputs() []flow.Output {
	return []flow.Output{
		{Key: "event_name", Type: flow.StateText, Description: "Name of the event"},
		{Key: "event_data", Type: flow.StateAny, Description: "Event payload data"},
		{Key: "event_timestamp", Type: flow.StateText, Description: "Event timestamp (ISO)"},
	}
}

func (s *TriggerEvent) Info() flow.StepInfo {
	return flow.StepInfo{
		Name:        "Event",
		Description: "Start flow when event fires",
		Icon:        "bolt",
		Category:    "triggers",
		Color:       "#9C27B0",
	}
}

func (s *TriggerEvent) Run(_ context.Context, _ *flow.State, _ flow.Config) flow.StepRunResult {
	return flow.SuccessResult(s.ID(), nil, nil)
}
