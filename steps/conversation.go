package steps

import (
	"context"

	"github.com/flowgraph-go/flowgraph/flow"
)

// StepConversationStartConfig is empty: the step needs no configuration.
type StepConversationStartConfig struct{}

func (c *StepConversationStartConfig) Clone() flow.Config {
	clone := *c
	return &clone
}

// StepConversationStart marks the entry point of a conversational flow. The
// embedder injects conversation_id into state before the run begins.
type StepConversationStart struct {
	flow.BaseStep
	Cfg *StepConversationStartConfig
}

// NewStepConversationStart builds a conversation-start step.
func NewStepConversationStart(id string) *StepConversationStart {
	return &StepConversationStart{
		BaseStep: flow.BaseStep{
			StepIDValue: id,
			StepKind:    flow.StepConversationStart,
			StepPorts:   []string{"default"},
			Trigger:     true,
		},
		Cfg: &StepConversationStartConfig{},
	}
}

func (s *StepConversationStart) Config() flow.Config { return s.Cfg }

func (s *StepConversationStart) Outputs() []flow.Output {
	return []flow.Output{
		{Key: "conversation_id", Type: flow.StateText, Description: "Conversation identifier"},
	}
}

func (s *StepConversationStart) Info() flow.StepInfo {
	return flow.StepInfo{
		Name:        "Conversation Start",
		Description: "Start of a conversation flow",
		Icon:        "chat",
		Category:    "conversation",
		Color:       "#4CAF50",
	}
}

func (s *StepConversationStart) Run(_ context.Context, _ *flow.State, _ flow.Config) flow.StepRunResult {
	return flow.SuccessResult(s.ID(), nil, nil)
}

// StepUserMessageConfig is empty: the step needs no configuration.
type StepUserMessageConfig struct{}

func (c *StepUserMessageConfig) Clone() flow.Config {
	clone := *c
	return &clone
}

// StepUserMessage represents receipt of a user message in a conversation.
// The dispatcher injects user_message and user_id into state before Run.
type StepUserMessage struct {
	flow.BaseStep
	Cfg *StepUserMessageConfig
}

// NewStepUserMessage builds a user-message step.
func NewStepUserMessage(id string) *StepUserMessage {
	return &StepUserMessage{
		BaseStep: flow.BaseStep{
			StepIDValue: id,
			StepKind:    flow.StepUserMessage,
			StepPorts:   []string{"default"},
		},
		Cfg: &StepUserMessageConfig{},
	}
}

func (s *StepUserMessage) Config() flow.Config { return s.Cfg }

func (s *StepUserMessage) Outputs() []flow.Output {
	return []flow.Output{
		{Key: "user_message", Type: flow.StateText, Description: "User's message text"},
		{Key: "user_id", Type: flow.StateText, Description: "User identifier"},
	}
}

func (s *StepUserMessage) Info() flow.StepInfo {
	return flow.StepInfo{
		Name:        "User Message",
		Description: "Receive user message input",
		Icon:        "user",
		Category:    "conversation",
		Color:       "#2196F3",
	}
}

func (s *StepUserMessage) Run(_ context.Context, _ *flow.State, _ flow.Config) flow.StepRunResult {
	return flow.SuccessResult(s.ID(), nil, nil)
}
