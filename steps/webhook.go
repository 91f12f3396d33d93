package steps

import (
	"context"

	"github.com/flowgraph-go/flowgraph/flow"
)

// TriggerWebhookConfig configures a webhook trigger: the HTTP method it
// accepts and the path it's mounted at. Neither field is interpolatable —
// both are fixed at flow-authoring time.
type TriggerWebhookConfig struct {
	Method string `yaml:"method" validate:"required,oneof=GET POST PUT DELETE"`
	Path   string `yaml:"path" validate:"required"`
}

func (c *TriggerWebhookConfig) Clone() flow.Config {
	clone := *c
	return &clone
}

// TriggerWebhook starts a flow when an HTTP request arrives at its path.
// The embedding HTTP handler is responsible for injecting body, headers,
// method, and query into state before Run is invoked.
type TriggerWebhook struct {
	flow.BaseStep
	Cfg *TriggerWebhookConfig
}

// NewTriggerWebhook builds a webhook trigger step.
func NewTriggerWebhook(id string, cfg *TriggerWebhookConfig) *TriggerWebhook {
	return &TriggerWebhook{
		BaseStep: flow.BaseStep{
			StepIDValue: id,
			StepKind:    flow.StepTriggerWebhook,
			StepPorts:   []string{"default"},
			Trigger:     true,
		},
		Cfg: cfg,
	}
}

func (s *TriggerWebhook) Config() flow.Config { return s.Cfg }

func (s *TriggerWebhook) Outputs() []flow.Output {
	return []flow.Output{
		{Key: "body", Type: flow.StateAny, Description: "Request body"},
		{Key: "headers", Type: flow.StateObject, Description: "Request headers"},
		{Key: "method", Type: flow.StateText, Description: "HTTP method"},
		{Key: "query", Type: flow.StateObject, Description: "Query parameters"},
	}
}

func (s *TriggerWebhook) Info() flow.StepInfo {
	return flow.StepInfo{
		Name:        "Webhook",
		Description: "Start flow when HTTP request received",
		Icon:        "webhook",
		Category:    "triggers",
		Color:       "#4CAF50",
	}
}

// Run is a pass-through: the webhook's data already lives in state by the
// time the runner gets here.
func (s *TriggerWebhook) Run(_ context.Context, _ *flow.State, _ flow.Config) flow.StepRunResult {
	return flow.SuccessResult(s.ID(), nil, nil)
}
