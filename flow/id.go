package flow

import "github.com/google/uuid"

// uuidString generates a random identifier for edges and runs; step IDs are
// supplied by callers.
func uuidString() string {
	return uuid.NewString()
}
