package flow

import (
	"context"
)

// emptyConfig is a Config with no interpolatable fields.
type emptyConfig struct{}

func (emptyConfig) Clone() Config { return emptyConfig{} }

// refConfig carries a single interpolatable scalar, coerced to Kind, for
// exercising the resolver from runner and validator tests.
type refConfig struct {
	Value string
	Kind  CoerceKind
}

func (c *refConfig) Clone() Config {
	clone := *c
	return &clone
}

func (c *refConfig) ScalarFields() []ScalarField {
	return []ScalarField{
		{
			Name: "value",
			Kind: c.Kind,
			Get:  func() string { return c.Value },
			Set: func(v any) {
				if s, ok := v.(string); ok {
					c.Value = s
				}
			},
		},
	}
}

func (c *refConfig) MapFields() []MapField               { return nil }
func (c *refConfig) ListFields() []ListField             { return nil }
func (c *refConfig) NestedListFields() []NestedListField { return nil }
func (c *refConfig) NestedFields() []NestedField         { return nil }

// stubStep is a minimal Step whose behavior is supplied per-test.
type stubStep struct {
	BaseStep
	cfg     Config
	outputs []Output
	runFn   func(ctx context.Context, state *State, cfg Config) StepRunResult
}

func (s *stubStep) Config() Config {
	if s.cfg == nil {
		return emptyConfig{}
	}
	return s.cfg
}

func (s *stubStep) Outputs() []Output { return s.outputs }
func (s *stubStep) Info() StepInfo    { return StepInfo{Name: "stub"} }

func (s *stubStep) Run(ctx context.Context, state *State, cfg Config) StepRunResult {
	if s.runFn == nil {
		return SuccessResult(s.ID(), nil, nil)
	}
	return s.runFn(ctx, state, cfg)
}

// newStub builds a stub step with a default port and NO_WAIT join mode.
func newStub(id string, run func(ctx context.Context, state *State, cfg Config) StepRunResult) *stubStep {
	return &stubStep{
		BaseStep: BaseStep{
			StepIDValue: id,
			StepKind:    StepSetState,
			StepPorts:   []string{"default"},
		},
		runFn: run,
	}
}

// newTriggerStub builds a stub trigger step.
func newTriggerStub(id string) *stubStep {
	s := newStub(id, nil)
	s.Trigger = true
	s.StepKind = StepTriggerWebhook
	return s
}

// collectEvents drains the runner's event channel to a slice.
func collectEvents(ch <-chan Event) []Event {
	var out []Event
	for ev := range ch {
		out = append(out, ev)
	}
	return out
}

// eventsOfKind filters events by kind.
func eventsOfKind(events []Event, kind EventKind) []Event {
	var out []Event
	for _, ev := range events {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}
