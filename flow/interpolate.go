package flow

import (
	"encoding/json"
	"regexp"
	"strings"
)

// refPattern matches {{path.to.value}} references. There is no escape
// mechanism for literal "{{" or "}}".
var refPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// ResolveTemplate substitutes every {{path}} reference in template against
// state in a single pass (no recursion into substituted text). Non-string
// input is returned unchanged by callers — this function always operates on
// a string. A missing or null path resolves to "". Maps and slices are
// JSON-encoded; everything else uses its canonical string form.
func ResolveTemplate(template string, state *State) string {
	return refPattern.ReplaceAllStringFunc(template, func(match string) string {
		path := strings.TrimSpace(refPattern.FindStringSubmatch(match)[1])
		value := state.GetNested(path, nil)
		return renderRef(value)
	})
}

func renderRef(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	case string:
		return v
	default:
		return stringify(v)
	}
}

// TemplateString renders v the same way a resolved {{ref}} substitution
// would: nil becomes "", maps/slices are JSON-encoded, everything else
// uses its canonical string form. Step config types use this to expose an
// any-typed field as a ScalarField's Get — the {{}} pre-check and eventual
// substitution both operate on the rendered string either way.
func TemplateString(v any) string {
	return renderRef(v)
}

// ExtractRefs returns the root.path strings (i.e. the raw interior of every
// {{...}} occurrence, trimmed) found in template, in order of appearance.
func ExtractRefs(template string) []string {
	matches := refPattern.FindAllStringSubmatch(template, -1)
	refs := make([]string, 0, len(matches))
	for _, m := range matches {
		refs = append(refs, strings.TrimSpace(m[1]))
	}
	return refs
}

// hasRef reports whether s contains at least one "{{" token, the cheap
// pre-check the config resolver uses before attempting a full scan.
func hasRef(s string) bool {
	return strings.Contains(s, "{{")
}
