// Package flow provides the core graph execution engine for flowgraph.
package flow

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/cases"
)

// StateType classifies the value a StateSlot accepts, driving the coercion
// table State.Set applies through a declared slot. The config resolver
// (flow/config.go) coerces by CoerceKind instead.
type StateType string

// The closed set of state slot types.
const (
	StateAny     StateType = "any"
	StateText    StateType = "text"
	StateNumber  StateType = "number"
	StateBoolean StateType = "boolean"
	StateObject  StateType = "object"
	StateArray   StateType = "array"
)

var foldCaser = cases.Fold()

// StateSlot is an optional typed declaration for a state key. Its only
// behavior is Cast, which coerces an incoming value to the slot's type.
type StateSlot struct {
	Name        string
	Type        StateType
	Description string
}

// Cast coerces value to the slot's declared type. A nil value always
// passes through unchanged.
func (s StateSlot) Cast(value any) any {
	if value == nil {
		return nil
	}
	switch s.Type {
	case StateText:
		return stringify(value)
	case StateNumber:
		return castNumber(value)
	case StateBoolean:
		return castBoolean(value)
	case StateObject, StateArray:
		return castContainer(value)
	default: // StateAny
		return value
	}
}

func castNumber(value any) any {
	switch v := value.(type) {
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
		f, _ := strconv.ParseFloat(v, 64)
		return f
	case int, int64, float64:
		return v
	default:
		return value
	}
}

func castBoolean(value any) any {
	switch v := value.(type) {
	case string:
		switch foldCaser.String(v) {
		case "true", "1", "yes":
			return true
		default:
			return false
		}
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return value != nil
	}
}

func castContainer(value any) any {
	s, ok := value.(string)
	if !ok {
		return value
	}
	var out any
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return value
	}
	return out
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any, []any:
		b, _ := json.Marshal(v)
		return string(b)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		// unquote plain JSON scalars (numbers, bools) to their bare string form
		var s string
		if json.Unmarshal(b, &s) == nil {
			return s
		}
		return strings.Trim(string(b), `"`)
	}
}

// State is the shared key/value container mutated in place by steps during
// a run. A single State is shared across all concurrently executing steps
// within a run: writes race with last-writer-wins semantics, and callers
// needing determinism must express it via edges.
type State struct {
	mu     sync.RWMutex
	slots  map[string]StateSlot
	values map[string]any
}

// NewState returns an empty State container.
func NewState() *State {
	return &State{
		slots:  make(map[string]StateSlot),
		values: make(map[string]any),
	}
}

// Define declares a typed slot for name. Subsequent Set calls for name are
// coerced through the slot.
func (s *State) Define(name string, typ StateType, description string) StateSlot {
	slot := StateSlot{Name: name, Type: typ, Description: description}
	s.mu.Lock()
	s.slots[name] = slot
	s.mu.Unlock()
	return slot
}

// Set writes a value, coercing through the declared slot (if any) first.
func (s *State) Set(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slot, ok := s.slots[name]; ok {
		value = slot.Cast(value)
	}
	s.values[name] = value
}

// Get returns the verbatim value for name, or def if absent.
func (s *State) Get(name string, def any) any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v, ok := s.values[name]; ok {
		return v
	}
	return def
}

// GetNested reads a dotted path, traversing maps by key and slices by
// integer index at each segment. A missing key, an out-of-range index, or a
// non-numeric index against a slice yields def. A present key holding nil
// also yields def, at any segment including the last — a stored nil is
// indistinguishable from an absent key.
func (s *State) GetNested(path string, def any) any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var current any = s.values
	for _, part := range strings.Split(path, ".") {
		if current == nil {
			return def
		}
		switch typed := current.(type) {
		case []any:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(typed) {
				return def
			}
			current = typed[idx]
		case map[string]any:
			v, ok := typed[part]
			if !ok || v == nil {
				return def
			}
			current = v
		default:
			return def
		}
	}
	return current
}

// GetAsString returns a value as a string: "" for missing, JSON-encoded for
// maps/slices, otherwise its string form.
func (s *State) GetAsString(name string) string {
	s.mu.RLock()
	v, ok := s.values[name]
	s.mu.RUnlock()
	if !ok || v == nil {
		return ""
	}
	switch v.(type) {
	case map[string]any, []any:
		b, _ := json.Marshal(v)
		return string(b)
	default:
		return stringify(v)
	}
}

// Snapshot returns a shallow copy of the values map, suitable for attaching
// to a StepCompleted event. Nested container values are not deep-copied;
// they may continue to mutate if a later step writes through the same
// underlying reference.
func (s *State) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Copy creates a shallow clone of both the slot definitions and the values.
func (s *State) Copy() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := NewState()
	for k, v := range s.slots {
		out.slots[k] = v
	}
	for k, v := range s.values {
		out.values[k] = v
	}
	return out
}
