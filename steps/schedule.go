package steps

import (
	"context"

	"github.com/flowgraph-go/flowgraph/flow"
)

// TriggerScheduleConfig configures a cron-driven trigger.
type TriggerScheduleConfig struct {
	Cron     string `yaml:"cron" validate:"required"`
	Timezone string `yaml:"timezone"`
}

func (c *TriggerScheduleConfig) Clone() flow.Config {
	clone := *c
	return &clone
}

// TriggerSchedule starts a flow on a cron schedule; the scheduler that
// fires it injects scheduled_time/actual_time into state before Run.
type TriggerSchedule struct {
	flow.BaseStep
	Cfg *TriggerScheduleConfig
}

// NewTriggerSchedule builds a schedule trigger step.
func NewTriggerSchedule(id string, cfg *TriggerScheduleConfig) *TriggerSchedule {
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	return &TriggerSchedule{
		BaseStep: flow.BaseStep{
			StepIDValue: id,
			StepKind:    flow.StepTriggerSchedule,
			StepPorts:   []string{"default"},
			Trigger:     true,
		},
		Cfg: cfg,
	}
}

func (s *TriggerSchedule) Config() flow.Config { return s.Cfg }

func (s *TriggerSchedule) Outputs() []flow.Output {
	return []flow.Output{
		{Key: "scheduled_time", Type: flow.StateText, Description: "Scheduled execution time (ISO)"},
		{Key: "actual_time", Type: flow.StateText, Description: "Actual execution time (ISO)"},
	}
}

func (s *TriggerSchedule) Info() flow.StepInfo {
	return flow.StepInfo{
		Name:        "Schedule",
		Description: "Start flow on a schedule",
		Icon:        "schedule",
		Category:    "triggers",
		Color:       "#FF9800",
	}
}

func (s *TriggerSchedule) Run(_ context.Context, _ *flow.State, _ flow.Config) flow.StepRunResult {
	return flow.SuccessResult(s.ID(), nil, nil)
}
