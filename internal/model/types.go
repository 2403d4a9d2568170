/*
PURPOSE:
  Defines the report record written for each command run under run-main.

REQUIREMENTS:
  Implementation-discovered:
  - Need JSON tags for downstream tooling (jq, log shippers).
  - Record the failure's classification, not just its text.

ARCHITECTURE INTEGRATION:
  - Used by: internal/engine, internal/output

ERROR HANDLING:
  - None (pure data structs).

RELATED FILES:
  - internal/output/json.go
*/

package model

import (
	"time"
)

// Report represents the outcome of a single supervised run.
type Report struct {
	Command   []string      `json:"command"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Succeeded bool          `json:"succeeded"`
	ExitCode  int           `json:"exit_code"`

	// Failure details, empty on success.
	Kind      string `json:"kind,omitempty"` // "error" or "other"
	ErrorType string `json:"error_type,omitempty"`
	Message   string `json:"message,omitempty"`
	Location  string `json:"location,omitempty"` // file:line of the failure
}
