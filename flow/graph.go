package flow

// Flow holds the steps and edges of one workflow graph, plus an index for
// O(1) step lookup. Steps and edges are set up by the embedder before Run
// and are never mutated during execution.
type Flow struct {
	ID    string
	Name  string
	Steps []Step
	Edges []Edge

	index map[string]Step
}

// New returns an empty, named Flow.
func New(name string) *Flow {
	return &Flow{
		Name:  name,
		index: make(map[string]Step),
	}
}

// AddStep registers step with the flow and its lookup index.
func (f *Flow) AddStep(step Step) {
	f.Steps = append(f.Steps, step)
	f.index[step.ID()] = step
}

// AddEdge connects source's port to target's port, after checking that
// both steps exist and that sourcePort is one of source's current ports.
// Port strings default to "default" when empty.
func (f *Flow) AddEdge(sourceStepID, sourcePort, targetStepID, targetPort string) (*Edge, error) {
	if sourcePort == "" {
		sourcePort = defaultPort
	}
	if targetPort == "" {
		targetPort = defaultPort
	}

	source, ok := f.index[sourceStepID]
	if !ok {
		return nil, &FlowError{Code: ErrCodeUnknownStep, Message: "source step " + sourceStepID + " not found in flow"}
	}
	if _, ok := f.index[targetStepID]; !ok {
		return nil, &FlowError{Code: ErrCodeUnknownStep, Message: "target step " + targetStepID + " not found in flow"}
	}
	if !containsPort(source.Ports(), sourcePort) {
		return nil, &FlowError{Code: ErrCodeUnknownPort, Message: "port '" + sourcePort + "' not found on step " + sourceStepID}
	}

	edge := Edge{
		ID:         uuidString(),
		FromStepID: sourceStepID,
		FromPort:   sourcePort,
		ToStepID:   targetStepID,
		ToPort:     targetPort,
	}
	f.Edges = append(f.Edges, edge)
	return &f.Edges[len(f.Edges)-1], nil
}

func containsPort(ports []string, port string) bool {
	for _, p := range ports {
		if p == port {
			return true
		}
	}
	return false
}

// GetStep looks a step up by ID, returning (nil, false) if absent.
func (f *Flow) GetStep(stepID string) (Step, bool) {
	s, ok := f.index[stepID]
	return s, ok
}

// EdgesFrom returns the outgoing edges from stepID, optionally filtered to
// one source port (pass "" for no filter).
func (f *Flow) EdgesFrom(stepID, port string) []Edge {
	var out []Edge
	for _, e := range f.Edges {
		if e.FromStepID != stepID {
			continue
		}
		if port != "" && e.FromPort != port {
			continue
		}
		out = append(out, e)
	}
	return out
}

// EdgesTo returns every edge targeting stepID, regardless of port.
func (f *Flow) EdgesTo(stepID string) []Edge {
	var out []Edge
	for _, e := range f.Edges {
		if e.ToStepID == stepID {
			out = append(out, e)
		}
	}
	return out
}

// Triggers returns every step with IsTrigger() true.
func (f *Flow) Triggers() []Step {
	var out []Step
	for _, s := range f.Steps {
		if s.IsTrigger() {
			out = append(out, s)
		}
	}
	return out
}

// StepsBefore performs a BFS over incoming edges, ignoring port filters,
// and returns every step that can reach stepID via some path. Ignoring
// ports over-approximates actual control-flow reachability through
// conditionals and switches; callers treat the result as "could have run
// before", not "must have run before".
func (f *Flow) StepsBefore(stepID string) []Step {
	visited := make(map[string]bool)
	var result []Step

	queue := make([]string, 0)
	for _, e := range f.EdgesTo(stepID) {
		queue = append(queue, e.FromStepID)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if visited[id] {
			continue
		}
		visited[id] = true

		upstream, ok := f.index[id]
		if !ok {
			continue
		}
		result = append(result, upstream)
		for _, e := range f.EdgesTo(id) {
			queue = append(queue, e.FromStepID)
		}
	}

	return result
}
