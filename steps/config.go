// Package steps provides the concrete step implementations: triggers, the
// HTTP request step, and the logic/utility/conversation steps that make up
// the closed step-type set.
package steps

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs structural validation (required fields, oneof enums,
// numeric bounds) over a step config, as declared by its validate struct
// tags; the step registry calls it when it decodes a config, before the
// dataflow-style validator of flow.Validate ever looks at it. No bounds tag
// sits on an interpolatable field, so a {{ref}} template is never
// bounds-checked here.
func ValidateStruct(cfg any) error {
	return validate.Struct(cfg)
}
