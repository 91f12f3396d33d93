package flow

import (
	"encoding/json"
	"strconv"
)

// CoerceKind is the target type an interpolatable scalar field resolves
// to.
type CoerceKind int

// The closed set of coercion targets for interpolatable fields.
const (
	CoerceString CoerceKind = iota
	CoerceInt
	CoerceFloat
	CoerceBool
	CoerceMapping
	CoerceList
)

// Config is implemented by every step's configuration type. Clone must
// return an independent copy so the resolver can mutate the copy in place
// without touching the step's configured value, which stays fixed for the
// lifetime of a run.
type Config interface {
	Clone() Config
}

// ScalarField exposes one interpolatable leaf on a Config: a string field
// that may contain {{refs}}, coerced to Kind after resolution.
type ScalarField struct {
	Name string
	Kind CoerceKind
	Get  func() string
	Set  func(any)
}

// MapField exposes a map[string]string field whose values are resolved as
// plain strings, no type coercion.
type MapField struct {
	Name string
	Get  func() map[string]string
	Set  func(map[string]string)
}

// ListField exposes a []string field whose elements are each resolved as
// plain strings, no coercion.
type ListField struct {
	Name string
	Get  func() []string
	Set  func([]string)
}

// NestedListField exposes a list of nested Config values (e.g. switch
// cases), each walked recursively by resolveConfig.
type NestedListField struct {
	Name string
	Get  func() []Config
	Set  func([]Config)
}

// NestedField exposes a single nested Config value walked recursively.
type NestedField struct {
	Name string
	Get  func() Config
	Set  func(Config)
}

// Resolvable is implemented by step configs that carry interpolatable
// fields. A config with no interpolatable fields need not implement it —
// resolveConfig treats a plain Config as already resolved.
type Resolvable interface {
	Config
	ScalarFields() []ScalarField
	MapFields() []MapField
	ListFields() []ListField
	NestedListFields() []NestedListField
	NestedFields() []NestedField
}

// FieldRef names one {{ref}} occurrence found while walking a config, for
// the validator.
type FieldRef struct {
	Field string
	Path  string
}

// ResolveConfig walks cfg's interpolatable fields and returns a new Config
// of the same shape with every {{ref}} substituted against state and
// coerced to its declared target type. A plain Config that does not
// implement Resolvable is cloned and returned unchanged.
func ResolveConfig(cfg Config, state *State) (Config, error) {
	clone := cfg.Clone()
	r, ok := clone.(Resolvable)
	if !ok {
		return clone, nil
	}

	for _, f := range r.ScalarFields() {
		v := f.Get()
		if !hasRef(v) {
			continue
		}
		resolved := ResolveTemplate(v, state)
		coerced, err := coerce(resolved, f.Kind)
		if err != nil {
			return nil, err
		}
		f.Set(coerced)
	}

	for _, f := range r.MapFields() {
		m := f.Get()
		out := make(map[string]string, len(m))
		for k, v := range m {
			if hasRef(v) {
				out[k] = ResolveTemplate(v, state)
			} else {
				out[k] = v
			}
		}
		f.Set(out)
	}

	for _, f := range r.ListFields() {
		items := f.Get()
		out := make([]string, len(items))
		for i, v := range items {
			if hasRef(v) {
				out[i] = ResolveTemplate(v, state)
			} else {
				out[i] = v
			}
		}
		f.Set(out)
	}

	for _, f := range r.NestedListFields() {
		items := f.Get()
		out := make([]Config, len(items))
		for i, item := range items {
			resolved, err := ResolveConfig(item, state)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		f.Set(out)
	}

	for _, f := range r.NestedFields() {
		nested := f.Get()
		if nested == nil {
			continue
		}
		resolved, err := ResolveConfig(nested, state)
		if err != nil {
			return nil, err
		}
		f.Set(resolved)
	}

	return clone, nil
}

// coerce converts a resolved string to its target scalar or container
// type. Unparseable ints and floats collapse to zero; bad JSON for a
// mapping or list is an error.
func coerce(resolved string, kind CoerceKind) (any, error) {
	switch kind {
	case CoerceString:
		return resolved, nil
	case CoerceInt:
		if resolved == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(resolved)
		if err != nil {
			return 0, nil
		}
		return n, nil
	case CoerceFloat:
		if resolved == "" {
			return 0.0, nil
		}
		f, err := strconv.ParseFloat(resolved, 64)
		if err != nil {
			return 0.0, nil
		}
		return f, nil
	case CoerceBool:
		return castBoolean(resolved).(bool), nil
	case CoerceMapping:
		if resolved == "" {
			return map[string]any{}, nil
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(resolved), &m); err != nil {
			return nil, err
		}
		return m, nil
	case CoerceList:
		if resolved == "" {
			return []any{}, nil
		}
		var l []any
		if err := json.Unmarshal([]byte(resolved), &l); err != nil {
			return nil, err
		}
		return l, nil
	default:
		return resolved, nil
	}
}

// ExtractConfigRefs walks cfg the same way ResolveConfig does, but collects
// (field, path) pairs instead of substituting — used by the validator to
// statically check reference availability.
func ExtractConfigRefs(cfg Config) []FieldRef {
	var refs []FieldRef
	r, ok := cfg.(Resolvable)
	if !ok {
		return refs
	}

	for _, f := range r.ScalarFields() {
		for _, path := range ExtractRefs(f.Get()) {
			refs = append(refs, FieldRef{Field: f.Name, Path: path})
		}
	}
	for _, f := range r.MapFields() {
		for _, v := range f.Get() {
			for _, path := range ExtractRefs(v) {
				refs = append(refs, FieldRef{Field: f.Name, Path: path})
			}
		}
	}
	for _, f := range r.ListFields() {
		for _, v := range f.Get() {
			for _, path := range ExtractRefs(v) {
				refs = append(refs, FieldRef{Field: f.Name, Path: path})
			}
		}
	}
	for _, f := range r.NestedListFields() {
		for _, item := range f.Get() {
			refs = append(refs, ExtractConfigRefs(item)...)
		}
	}
	for _, f := range r.NestedFields() {
		if nested := f.Get(); nested != nil {
			refs = append(refs, ExtractConfigRefs(nested)...)
		}
	}

	return refs
}
