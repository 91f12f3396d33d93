package flowfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/flowgraph-go/flowgraph/flow"
)

// Marshal renders f as a YAML manifest that Parse round-trips. Step configs
// serialize through their yaml struct tags; a join mode is written only
// when it differs from the no_wait default.
func Marshal(f *flow.Flow) ([]byte, error) {
	m := Manifest{Name: f.Name}

	for _, step := range f.Steps {
		sm := StepManifest{
			ID:   step.ID(),
			Type: string(step.Kind()),
		}
		if mode := step.JoinMode(); mode != flow.JoinNoWait {
			sm.JoinMode = string(mode)
		}
		if cfg := step.Config(); cfg != nil {
			if err := sm.Config.Encode(cfg); err != nil {
				return nil, fmt.Errorf("encode config for step %q: %w", step.ID(), err)
			}
		}
		m.Steps = append(m.Steps, sm)
	}

	for _, edge := range f.Edges {
		m.Edges = append(m.Edges, EdgeManifest{
			From:   edge.FromStepID,
			Port:   edge.FromPort,
			To:     edge.ToStepID,
			ToPort: edge.ToPort,
		})
	}

	return yaml.Marshal(&m)
}

// Save writes f's manifest to path.
func Save(f *flow.Flow, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
