// Package provider invokes the stage-1 reasoning integration and decodes
// its marker-framed output.
package provider

import (
	"context"
	"time"
)

// Result is the structured payload the stage-1 integration emits. Both
// fields are required; degraded paths substitute renderable placeholders so
// downstream stages never see an empty Result.
type Result struct {
	Answer    string `json:"answer"`
	Reasoning string `json:"reasoning"`
}

// Degraded is the placeholder Result used when stage 1 fails. The exact
// strings are part of the terminal output contract.
var Degraded = Result{
	Answer:    "[Error getting answer]",
	Reasoning: "[Error getting reasoning]",
}

// Provider produces the stage-1 reasoning for a question, along with the
// wall-clock duration of the call.
type Provider interface {
	Invoke(ctx context.Context, question string) (Result, time.Duration, error)
}
