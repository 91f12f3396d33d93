package flow

import "sort"

// ValidationLevel distinguishes findings that block a flow from running
// correctly from ones that merely warn.
type ValidationLevel string

const (
	LevelError   ValidationLevel = "error"
	LevelWarning ValidationLevel = "warning"
)

// Finding is one validator diagnostic.
type Finding struct {
	StepID    string
	Field     string
	Reference string
	Message   string
	Level     ValidationLevel
}

// Validate runs all three validator passes over f and returns every finding,
// reference-availability errors first, then edge-sanity errors, then the
// trigger-presence warning (if any).
func Validate(f *Flow) []Finding {
	var findings []Finding
	findings = append(findings, validateReferences(f)...)
	findings = append(findings, validateEdges(f)...)
	findings = append(findings, validateTriggers(f)...)
	return findings
}

// availableKeysBefore computes the union of state keys a step can rely on:
// every upstream step's declared outputs, plus a set-state step's
// configured key, plus a trigger's own outputs when step itself is a
// trigger (triggers receive their outputs by injection before the run
// begins). Upstream is the BFS-over-incoming-edges closure with no port
// filter, an intentional over-approximation of actual reachability.
func availableKeysBefore(f *Flow, step Step) map[string]struct{} {
	keys := make(map[string]struct{})

	for _, upstream := range f.StepsBefore(step.ID()) {
		for _, out := range upstream.Outputs() {
			keys[out.Key] = struct{}{}
		}
		if setState, ok := upstream.Config().(interface{ SetStateKey() string }); ok {
			if k := setState.SetStateKey(); k != "" {
				keys[k] = struct{}{}
			}
		}
	}

	if step.IsTrigger() {
		for _, out := range step.Outputs() {
			keys[out.Key] = struct{}{}
		}
	}

	return keys
}

func validateReferences(f *Flow) []Finding {
	var findings []Finding

	for _, step := range f.Steps {
		available := availableKeysBefore(f, step)
		refs := ExtractConfigRefs(step.Config())

		for _, ref := range refs {
			root := rootSegment(ref.Path)
			if _, ok := available[root]; ok {
				continue
			}
			findings = append(findings, Finding{
				StepID:    step.ID(),
				Field:     ref.Field,
				Reference: ref.Path,
				Message:   "'" + ref.Path + "' not found. Available: " + formatKeys(available),
				Level:     LevelError,
			})
		}
	}

	return findings
}

func validateEdges(f *Flow) []Finding {
	var findings []Finding

	for _, edge := range f.Edges {
		source, sourceOK := f.GetStep(edge.FromStepID)
		if !sourceOK {
			findings = append(findings, Finding{
				StepID:    edge.FromStepID,
				Field:     "edge",
				Reference: edge.ID,
				Message:   "source step " + edge.FromStepID + " not found",
				Level:     LevelError,
			})
			continue
		}
		if _, targetOK := f.GetStep(edge.ToStepID); !targetOK {
			findings = append(findings, Finding{
				StepID:    edge.ToStepID,
				Field:     "edge",
				Reference: edge.ID,
				Message:   "target step " + edge.ToStepID + " not found",
				Level:     LevelError,
			})
			continue
		}
		if !containsPort(source.Ports(), edge.FromPort) {
			findings = append(findings, Finding{
				StepID:    edge.FromStepID,
				Field:     "source_port",
				Reference: edge.FromPort,
				Message:   "port '" + edge.FromPort + "' not found on step " + edge.FromStepID,
				Level:     LevelError,
			})
		}
	}

	return findings
}

func validateTriggers(f *Flow) []Finding {
	if len(f.Triggers()) > 0 {
		return nil
	}

	stepID := ""
	if len(f.Steps) > 0 {
		stepID = f.Steps[0].ID()
	}

	return []Finding{{
		StepID:    stepID,
		Field:     "flow",
		Reference: "triggers",
		Message:   "flow has no trigger steps",
		Level:     LevelWarning,
	}}
}

func rootSegment(path string) string {
	for i, r := range path {
		if r == '.' {
			return path[:i]
		}
	}
	return path
}

func formatKeys(keys map[string]struct{}) string {
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)

	out := "["
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out + "]"
}
