package steps

import (
	"context"
	"strconv"
	"strings"

	"github.com/flowgraph-go/flowgraph/flow"
)

// StepConditionalConfig configures a conditional step: a comparison between
// two (interpolatable) string operands.
type StepConditionalConfig struct {
	Left     string `yaml:"left" validate:"required"`
	Operator string `yaml:"operator" validate:"omitempty,oneof=equals not_equals contains not_contains greater_than less_than"`
	Right    string `yaml:"right"`
}

func (c *StepConditionalConfig) Clone() flow.Config {
	clone := *c
	return &clone
}

func (c *StepConditionalConfig) ScalarFields() []flow.ScalarField {
	return []flow.ScalarField{
		{
			Name: "left",
			Kind: flow.CoerceString,
			Get:  func() string { return c.Left },
			Set:  func(v any) { c.Left = v.(string) },
		},
		{
			Name: "right",
			Kind: flow.CoerceString,
			Get:  func() string { return c.Right },
			Set:  func(v any) { c.Right = v.(string) },
		},
	}
}

func (c *StepConditionalConfig) MapFields() []flow.MapField               { return nil }
func (c *StepConditionalConfig) ListFields() []flow.ListField             { return nil }
func (c *StepConditionalConfig) NestedListFields() []flow.NestedListField { return nil }
func (c *StepConditionalConfig) NestedFields() []flow.NestedField         { return nil }

// EvaluateCondition compares left against right under operator. The ordering
// operators compare numerically when both sides parse as floats, falling
// back to lexicographic comparison otherwise.
func EvaluateCondition(left, operator, right string) bool {
	switch operator {
	case "equals":
		return left == right
	case "not_equals":
		return left != right
	case "contains":
		return strings.Contains(left, right)
	case "not_contains":
		return !strings.Contains(left, right)
	case "greater_than":
		lf, lerr := strconv.ParseFloat(left, 64)
		rf, rerr := strconv.ParseFloat(right, 64)
		if lerr == nil && rerr == nil {
			return lf > rf
		}
		return left > right
	case "less_than":
		lf, lerr := strconv.ParseFloat(left, 64)
		rf, rerr := strconv.ParseFloat(right, 64)
		if lerr == nil && rerr == nil {
			return lf < rf
		}
		return left < right
	}
	return false
}

// StepConditional branches flow execution: it evaluates the configured
// comparison and fires the "true" or "false" port.
type StepConditional struct {
	flow.BaseStep
	Cfg *StepConditionalConfig
}

// NewStepConditional builds a conditional step. An empty operator defaults
// to "equals".
func NewStepConditional(id string, cfg *StepConditionalConfig) *StepConditional {
	if cfg.Operator == "" {
		cfg.Operator = "equals"
	}
	return &StepConditional{
		BaseStep: flow.BaseStep{
			StepIDValue: id,
			StepKind:    flow.StepConditional,
			StepPorts:   []string{"true", "false"},
		},
		Cfg: cfg,
	}
}

func (s *StepConditional) Config() flow.Config    { return s.Cfg }
func (s *StepConditional) Outputs() []flow.Output { return nil }

func (s *StepConditional) Info() flow.StepInfo {
	return flow.StepInfo{
		Name:        "Conditional",
		Description: "Branch based on a condition",
		Icon:        "fork",
		Category:    "logic",
		Color:       "#FF5722",
	}
}

func (s *StepConditional) Run(_ context.Context, _ *flow.State, cfg flow.Config) flow.StepRunResult {
	c := cfg.(*StepConditionalConfig)
	result := EvaluateCondition(c.Left, c.Operator, c.Right)

	port := "false"
	if result {
		port = "true"
	}
	return flow.SuccessResult(s.ID(), []string{port}, map[string]any{"condition_result": result})
}
