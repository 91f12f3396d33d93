package flow

import "fmt"

// FlowError is the structured error type returned by graph-construction and
// run-level failures, carrying a machine-readable Code alongside a
// human-readable Message so callers can branch on the failure class.
type FlowError struct {
	Message string
	Code    string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes used outside of per-step StepErrorDetail values (those are
// request/transform/etc.-specific and live alongside their steps).
const (
	ErrCodeUnknownStep     = "UNKNOWN_STEP"
	ErrCodeUnknownPort     = "UNKNOWN_PORT"
	ErrCodeValidationError = "VALIDATION_ERROR"
	ErrCodeConfigResolve   = "CONFIG_RESOLUTION_ERROR"
	ErrCodeExecutionError  = "EXECUTION_ERROR"
	ErrCodeNotImplemented  = "NOT_IMPLEMENTED"
)
