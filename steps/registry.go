package steps

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/flowgraph-go/flowgraph/flow"
)

// Constructor builds a step from its ID and an optional YAML config node
// (nil when a manifest omits the config block).
type Constructor func(id string, cfg *yaml.Node) (flow.Step, error)

// registry maps step type tokens to constructors. Transform and sub_flow
// are registered so manifests naming them load, even though their bodies
// fail with NOT_IMPLEMENTED.
var registry = map[flow.StepKind]Constructor{
	flow.StepTriggerWebhook: func(id string, node *yaml.Node) (flow.Step, error) {
		cfg := &TriggerWebhookConfig{}
		if err := decodeConfig(node, cfg); err != nil {
			return nil, err
		}
		return NewTriggerWebhook(id, cfg), nil
	},
	flow.StepTriggerSchedule: func(id string, node *yaml.Node) (flow.Step, error) {
		cfg := &TriggerScheduleConfig{}
		if err := decodeConfig(node, cfg); err != nil {
			return nil, err
		}
		return NewTriggerSchedule(id, cfg), nil
	},
	flow.StepTriggerEvent: func(id string, node *yaml.Node) (flow.Step, error) {
		cfg := &TriggerEventConfig{}
		if err := decodeConfig(node, cfg); err != nil {
			return nil, err
		}
		return NewTriggerEvent(id, cfg), nil
	},
	flow.StepRequest: func(id string, node *yaml.Node) (flow.Step, error) {
		cfg := &StepRequestConfig{}
		if err := decodeConfig(node, cfg); err != nil {
			return nil, err
		}
		return NewStepRequest(id, cfg), nil
	},
	flow.StepSetState: func(id string, node *yaml.Node) (flow.Step, error) {
		cfg := &StepSetStateConfig{}
		if err := decodeConfig(node, cfg); err != nil {
			return nil, err
		}
		return NewStepSetState(id, cfg), nil
	},
	flow.StepConditional: func(id string, node *yaml.Node) (flow.Step, error) {
		cfg := &StepConditionalConfig{}
		if err := decodeConfig(node, cfg); err != nil {
			return nil, err
		}
		return NewStepConditional(id, cfg), nil
	},
	flow.StepSwitch: func(id string, node *yaml.Node) (flow.Step, error) {
		cfg := &StepSwitchConfig{}
		if err := decodeConfig(node, cfg); err != nil {
			return nil, err
		}
		return NewStepSwitch(id, cfg), nil
	},
	flow.StepDelay: func(id string, node *yaml.Node) (flow.Step, error) {
		cfg := &StepDelayConfig{}
		if err := decodeConfig(node, cfg); err != nil {
			return nil, err
		}
		return NewStepDelay(id, cfg)
	},
	flow.StepReply: func(id string, node *yaml.Node) (flow.Step, error) {
		cfg := &StepReplyConfig{}
		if err := decodeConfig(node, cfg); err != nil {
			return nil, err
		}
		return NewStepReply(id, cfg), nil
	},
	flow.StepConversationStart: func(id string, _ *yaml.Node) (flow.Step, error) {
		return NewStepConversationStart(id), nil
	},
	flow.StepUserMessage: func(id string, _ *yaml.Node) (flow.Step, error) {
		return NewStepUserMessage(id), nil
	},
	flow.StepTransform: func(id string, node *yaml.Node) (flow.Step, error) {
		cfg := &StepTransformConfig{}
		if err := decodeConfig(node, cfg); err != nil {
			return nil, err
		}
		return NewStepTransform(id, cfg), nil
	},
	flow.StepSubFlow: func(id string, node *yaml.Node) (flow.Step, error) {
		cfg := &StepSubFlowConfig{}
		if err := decodeConfig(node, cfg); err != nil {
			return nil, err
		}
		return NewStepSubFlow(id, cfg), nil
	},
}

// decodeConfig decodes a YAML config node into cfg, then runs structural
// validation over the decoded struct. A nil node leaves cfg at its zero
// value, but the struct is still validated so required fields surface.
func decodeConfig(node *yaml.Node, cfg any) error {
	if node != nil {
		if err := node.Decode(cfg); err != nil {
			return fmt.Errorf("decode step config: %w", err)
		}
	}
	if err := ValidateStruct(cfg); err != nil {
		return fmt.Errorf("invalid step config: %w", err)
	}
	return nil
}

// New constructs a step of the given kind. Unknown kinds fail rather than
// falling back to any default.
func New(kind flow.StepKind, id string, cfg *yaml.Node) (flow.Step, error) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown step type %q", kind)
	}
	return ctor(id, cfg)
}

// Kinds returns every registered step type token, sorted.
func Kinds() []flow.StepKind {
	out := make([]flow.StepKind, 0, len(registry))
	for kind := range registry {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
