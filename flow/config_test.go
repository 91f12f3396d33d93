package flow

import (
	"testing"
)

// multiConfig exercises every field shape the resolver walks: scalars of
// each coercion kind, a string map, a string list, and a nested config
// list.
type multiConfig struct {
	Text    string
	Count   any
	Ratio   any
	Flag    any
	Payload any
	Items   any
	Headers map[string]string
	Tags    []string
	Nested  []*multiConfig
}

func (c *multiConfig) Clone() Config {
	clone := *c
	clone.Headers = make(map[string]string, len(c.Headers))
	for k, v := range c.Headers {
		clone.Headers[k] = v
	}
	clone.Tags = append([]string(nil), c.Tags...)
	clone.Nested = make([]*multiConfig, len(c.Nested))
	for i, n := range c.Nested {
		clone.Nested[i] = n.Clone().(*multiConfig)
	}
	return &clone
}

func (c *multiConfig) ScalarFields() []ScalarField {
	return []ScalarField{
		{Name: "text", Kind: CoerceString, Get: func() string { return c.Text }, Set: func(v any) { c.Text = v.(string) }},
		{Name: "count", Kind: CoerceInt, Get: func() string { return TemplateString(c.Count) }, Set: func(v any) { c.Count = v }},
		{Name: "ratio", Kind: CoerceFloat, Get: func() string { return TemplateString(c.Ratio) }, Set: func(v any) { c.Ratio = v }},
		{Name: "flag", Kind: CoerceBool, Get: func() string { return TemplateString(c.Flag) }, Set: func(v any) { c.Flag = v }},
		{Name: "payload", Kind: CoerceMapping, Get: func() string { return TemplateString(c.Payload) }, Set: func(v any) { c.Payload = v }},
		{Name: "items", Kind: CoerceList, Get: func() string { return TemplateString(c.Items) }, Set: func(v any) { c.Items = v }},
	}
}

func (c *multiConfig) MapFields() []MapField {
	return []MapField{
		{Name: "headers", Get: func() map[string]string { return c.Headers }, Set: func(m map[string]string) { c.Headers = m }},
	}
}

func (c *multiConfig) ListFields() []ListField {
	return []ListField{
		{Name: "tags", Get: func() []string { return c.Tags }, Set: func(v []string) { c.Tags = v }},
	}
}

func (c *multiConfig) NestedListFields() []NestedListField {
	return []NestedListField{
		{
			Name: "nested",
			Get: func() []Config {
				out := make([]Config, len(c.Nested))
				for i, n := range c.Nested {
					out[i] = n
				}
				return out
			},
			Set: func(items []Config) {
				out := make([]*multiConfig, len(items))
				for i, item := range items {
					out[i] = item.(*multiConfig)
				}
				c.Nested = out
			},
		},
	}
}

func (c *multiConfig) NestedFields() []NestedField { return nil }

// TestResolveConfigScalarCoercion verifies each scalar coercion kind.
func TestResolveConfigScalarCoercion(t *testing.T) {
	state := NewState()
	state.Set("name", "Alice")
	state.Set("n", 42)
	state.Set("r", 2.5)
	state.Set("ok", "yes")
	state.Set("obj", map[string]any{"a": float64(1)})
	state.Set("list", []any{"x"})

	cfg := &multiConfig{
		Text:    "hi {{name}}",
		Count:   "{{n}}",
		Ratio:   "{{r}}",
		Flag:    "{{ok}}",
		Payload: "{{obj}}",
		Items:   "{{list}}",
	}

	resolved, err := ResolveConfig(cfg, state)
	if err != nil {
		t.Fatalf("ResolveConfig failed: %v", err)
	}
	r := resolved.(*multiConfig)

	if r.Text != "hi Alice" {
		t.Errorf("Text = %q, want \"hi Alice\"", r.Text)
	}
	if r.Count != 42 {
		t.Errorf("Count = %v (%T), want 42", r.Count, r.Count)
	}
	if r.Ratio != 2.5 {
		t.Errorf("Ratio = %v, want 2.5", r.Ratio)
	}
	if r.Flag != true {
		t.Errorf("Flag = %v, want true", r.Flag)
	}
	payload, ok := r.Payload.(map[string]any)
	if !ok || payload["a"] != float64(1) {
		t.Errorf("Payload = %v (%T), want map with a=1", r.Payload, r.Payload)
	}
	items, ok := r.Items.([]any)
	if !ok || len(items) != 1 || items[0] != "x" {
		t.Errorf("Items = %v (%T), want [x]", r.Items, r.Items)
	}
}

// TestResolveConfigEmptyCoercion verifies empty resolutions coerce to the
// kind's zero: 0, 0.0, and empty containers.
func TestResolveConfigEmptyCoercion(t *testing.T) {
	state := NewState()

	cfg := &multiConfig{
		Count:   "{{missing}}",
		Ratio:   "{{missing}}",
		Payload: "{{missing}}",
		Items:   "{{missing}}",
	}

	resolved, err := ResolveConfig(cfg, state)
	if err != nil {
		t.Fatalf("ResolveConfig failed: %v", err)
	}
	r := resolved.(*multiConfig)

	if r.Count != 0 {
		t.Errorf("Count = %v, want 0", r.Count)
	}
	if r.Ratio != 0.0 {
		t.Errorf("Ratio = %v, want 0.0", r.Ratio)
	}
	if m, ok := r.Payload.(map[string]any); !ok || len(m) != 0 {
		t.Errorf("Payload = %v (%T), want empty map", r.Payload, r.Payload)
	}
	if l, ok := r.Items.([]any); !ok || len(l) != 0 {
		t.Errorf("Items = %v (%T), want empty list", r.Items, r.Items)
	}
}

// TestResolveConfigLeavesLiteralsAlone verifies fields without {{ are not
// touched, even when they name a coercion kind.
func TestResolveConfigLeavesLiteralsAlone(t *testing.T) {
	state := NewState()
	cfg := &multiConfig{Text: "plain", Count: 7}

	resolved, err := ResolveConfig(cfg, state)
	if err != nil {
		t.Fatalf("ResolveConfig failed: %v", err)
	}
	r := resolved.(*multiConfig)
	if r.Text != "plain" || r.Count != 7 {
		t.Errorf("literals changed: Text=%q Count=%v", r.Text, r.Count)
	}
}

// TestResolveConfigBadJSON verifies a mapping-coerced field that resolves
// to invalid JSON fails resolution.
func TestResolveConfigBadJSON(t *testing.T) {
	state := NewState()
	state.Set("name", "Alice")

	cfg := &multiConfig{Payload: "{{name}}"}
	if _, err := ResolveConfig(cfg, state); err == nil {
		t.Fatal("expected error for non-JSON mapping resolution")
	}
}

// TestResolveConfigMapAndList verifies map values and list elements resolve
// as plain strings with no coercion.
func TestResolveConfigMapAndList(t *testing.T) {
	state := NewState()
	state.Set("token", "abc")
	state.Set("env", "prod")

	cfg := &multiConfig{
		Headers: map[string]string{
			"Authorization": "Bearer {{token}}",
			"Accept":        "application/json",
		},
		Tags: []string{"{{env}}", "static"},
	}

	resolved, err := ResolveConfig(cfg, state)
	if err != nil {
		t.Fatalf("ResolveConfig failed: %v", err)
	}
	r := resolved.(*multiConfig)

	if r.Headers["Authorization"] != "Bearer abc" {
		t.Errorf("header = %q, want \"Bearer abc\"", r.Headers["Authorization"])
	}
	if r.Headers["Accept"] != "application/json" {
		t.Errorf("untemplated header changed: %q", r.Headers["Accept"])
	}
	if r.Tags[0] != "prod" || r.Tags[1] != "static" {
		t.Errorf("tags = %v, want [prod static]", r.Tags)
	}
}

// TestResolveConfigNested verifies nested configs resolve recursively.
func TestResolveConfigNested(t *testing.T) {
	state := NewState()
	state.Set("name", "Alice")

	cfg := &multiConfig{
		Nested: []*multiConfig{{Text: "inner {{name}}"}},
	}

	resolved, err := ResolveConfig(cfg, state)
	if err != nil {
		t.Fatalf("ResolveConfig failed: %v", err)
	}
	r := resolved.(*multiConfig)
	if r.Nested[0].Text != "inner Alice" {
		t.Errorf("nested text = %q, want \"inner Alice\"", r.Nested[0].Text)
	}
}

// TestResolveConfigDoesNotMutateOriginal verifies the resolver works on a
// clone: the step's configured value must survive a run untouched.
func TestResolveConfigDoesNotMutateOriginal(t *testing.T) {
	state := NewState()
	state.Set("name", "Alice")

	cfg := &multiConfig{Text: "hi {{name}}"}
	if _, err := ResolveConfig(cfg, state); err != nil {
		t.Fatalf("ResolveConfig failed: %v", err)
	}
	if cfg.Text != "hi {{name}}" {
		t.Errorf("original config mutated: %q", cfg.Text)
	}
}

// TestResolveConfigPlain verifies a non-Resolvable config passes through as
// a clone.
func TestResolveConfigPlain(t *testing.T) {
	resolved, err := ResolveConfig(emptyConfig{}, NewState())
	if err != nil {
		t.Fatalf("ResolveConfig failed: %v", err)
	}
	if _, ok := resolved.(emptyConfig); !ok {
		t.Errorf("resolved = %T, want emptyConfig", resolved)
	}
}

// TestExtractConfigRefs verifies the extraction walk covers scalars, map
// values, list elements, and nested configs.
func TestExtractConfigRefs(t *testing.T) {
	cfg := &multiConfig{
		Text:    "{{a}} {{b.c}}",
		Headers: map[string]string{"H": "{{d}}"},
		Tags:    []string{"{{e}}"},
		Nested:  []*multiConfig{{Text: "{{f}}"}},
	}

	refs := ExtractConfigRefs(cfg)
	paths := make(map[string]string)
	for _, ref := range refs {
		paths[ref.Path] = ref.Field
	}

	for _, want := range []string{"a", "b.c", "d", "e", "f"} {
		if _, ok := paths[want]; !ok {
			t.Errorf("missing extracted ref %q (got %v)", want, refs)
		}
	}
	if paths["a"] != "text" {
		t.Errorf("ref a attributed to field %q, want \"text\"", paths["a"])
	}
}
