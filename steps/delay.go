package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/flowgraph-go/flowgraph/flow"
)

// maxDelaySeconds bounds a single delay step; longer pauses belong in a
// schedule trigger, not a mid-flow sleep.
const maxDelaySeconds = 300

// StepDelayConfig configures a delay step. Seconds holds either a float64
// literal or an interpolatable template string that resolves to one.
type StepDelayConfig struct {
	Seconds any `yaml:"seconds"`
}

func (c *StepDelayConfig) Clone() flow.Config {
	clone := *c
	return &clone
}

func (c *StepDelayConfig) ScalarFields() []flow.ScalarField {
	return []flow.ScalarField{
		{
			Name: "seconds",
			Kind: flow.CoerceFloat,
			Get:  func() string { return flow.TemplateString(c.Seconds) },
			Set:  func(v any) { c.Seconds = v },
		},
	}
}

func (c *StepDelayConfig) MapFields() []flow.MapField               { return nil }
func (c *StepDelayConfig) ListFields() []flow.ListField             { return nil }
func (c *StepDelayConfig) NestedListFields() []flow.NestedListField { return nil }
func (c *StepDelayConfig) NestedFields() []flow.NestedField         { return nil }

// seconds normalizes the configured value to a float64, defaulting to 1.
func (c *StepDelayConfig) seconds() (float64, error) {
	switch v := c.Seconds.(type) {
	case nil:
		return 1, nil
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("delay seconds must be a number, got %T", c.Seconds)
	}
}

// StepDelay pauses flow execution for a configured number of seconds.
type StepDelay struct {
	flow.BaseStep
	Cfg *StepDelayConfig
}

// NewStepDelay builds a delay step. A literal Seconds value outside
// [0, 300] is rejected here; templated values are bounds-checked at run
// time once resolved.
func NewStepDelay(id string, cfg *StepDelayConfig) (*StepDelay, error) {
	if _, templated := cfg.Seconds.(string); !templated {
		if f, err := cfg.seconds(); err == nil && (f < 0 || f > maxDelaySeconds) {
			return nil, fmt.Errorf("delay seconds %v out of range [0, %d]", f, maxDelaySeconds)
		}
	}
	return &StepDelay{
		BaseStep: flow.BaseStep{
			StepIDValue: id,
			StepKind:    flow.StepDelay,
			StepPorts:   []string{"default"},
		},
		Cfg: cfg,
	}, nil
}

func (s *StepDelay) Config() flow.Config { return s.Cfg }

func (s *StepDelay) Outputs() []flow.Output {
	return []flow.Output{
		{Key: "delayed_seconds", Type: flow.StateNumber, Description: "Actual delay duration"},
	}
}

func (s *StepDelay) Info() flow.StepInfo {
	return flow.StepInfo{
		Name:        "Delay",
		Description: "Pause execution for specified seconds",
		Icon:        "timer",
		Category:    "utility",
		Color:       "#607D8B",
	}
}

func (s *StepDelay) Run(ctx context.Context, state *flow.State, cfg flow.Config) flow.StepRunResult {
	c := cfg.(*StepDelayConfig)
	seconds, err := c.seconds()
	if err != nil {
		return flow.FailureResult(s.ID(), s.Ports(), err.Error(), flow.ErrCodeExecutionError, nil)
	}
	if seconds < 0 || seconds > maxDelaySeconds {
		return flow.FailureResult(s.ID(), s.Ports(),
			fmt.Sprintf("delay seconds %v out of range [0, %d]", seconds, maxDelaySeconds),
			flow.ErrCodeExecutionError, nil)
	}

	timer := time.NewTimer(time.Duration(seconds * float64(time.Second)))
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return flow.FailureResult(s.ID(), s.Ports(), "delay interrupted: "+ctx.Err().Error(), flow.ErrCodeExecutionError, nil)
	}

	state.Set("delayed_seconds", seconds)

	return flow.SuccessResult(s.ID(), nil, map[string]any{"delayed_seconds": seconds})
}
