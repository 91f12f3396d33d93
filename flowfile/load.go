// Package flowfile loads and saves flow definitions as YAML manifests, so
// flows can be authored declaratively instead of assembled in Go code.
package flowfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flowgraph-go/flowgraph/flow"
	"github.com/flowgraph-go/flowgraph/steps"
)

// Manifest is the YAML document shape for a flow definition.
type Manifest struct {
	Name  string         `yaml:"name"`
	Steps []StepManifest `yaml:"steps"`
	Edges []EdgeManifest `yaml:"edges"`
}

// StepManifest declares one step: its ID, type token, optional join mode,
// and a type-specific config block.
type StepManifest struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"`
	JoinMode string    `yaml:"join_mode,omitempty"`
	Config   yaml.Node `yaml:"config,omitempty"`
}

// EdgeManifest declares one edge. Port and ToPort default to "default".
type EdgeManifest struct {
	From   string `yaml:"from"`
	Port   string `yaml:"port,omitempty"`
	To     string `yaml:"to"`
	ToPort string `yaml:"to_port,omitempty"`
}

var joinModes = map[string]flow.JoinMode{
	string(flow.JoinNoWait):       flow.JoinNoWait,
	string(flow.JoinAllSuccess):   flow.JoinAllSuccess,
	string(flow.JoinAllDone):      flow.JoinAllDone,
	string(flow.JoinFirstSuccess): flow.JoinFirstSuccess,
}

// Load reads a YAML flow manifest from path.
func Load(path string) (*flow.Flow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read flow manifest: %w", err)
	}
	return Parse(data)
}

// Parse builds a Flow from YAML manifest bytes. Steps are constructed
// through the step registry, so every type token in the manifest must name
// a registered kind; edges go through Flow.AddEdge and inherit its port
// checks.
func Parse(data []byte) (*flow.Flow, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse flow manifest: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("flow manifest has no name")
	}

	f := flow.New(m.Name)

	for _, sm := range m.Steps {
		if sm.ID == "" {
			return nil, fmt.Errorf("step with type %q has no id", sm.Type)
		}

		var cfgNode *yaml.Node
		if !sm.Config.IsZero() {
			node := sm.Config
			cfgNode = &node
		}

		step, err := steps.New(flow.StepKind(sm.Type), sm.ID, cfgNode)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", sm.ID, err)
		}

		if sm.JoinMode != "" {
			mode, ok := joinModes[sm.JoinMode]
			if !ok {
				return nil, fmt.Errorf("step %q: unknown join mode %q", sm.ID, sm.JoinMode)
			}
			if setter, ok := step.(interface{ SetJoinMode(flow.JoinMode) }); ok {
				setter.SetJoinMode(mode)
			}
		}

		f.AddStep(step)
	}

	for _, em := range m.Edges {
		if _, err := f.AddEdge(em.From, em.Port, em.To, em.ToPort); err != nil {
			return nil, fmt.Errorf("edge %s -> %s: %w", em.From, em.To, err)
		}
	}

	return f, nil
}
