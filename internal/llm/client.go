// Package llm provides a provider-agnostic interface for LLM calls.
package llm

import "context"

// Request is a single-turn completion. The refinement and comparison calls
// share one client but differ in model, token budget, and temperature, so
// each call carries its own parameters.
type Request struct {
	Model       string
	MaxTokens   int
	Temperature float64
	Prompt      string
}

// Client is the interface the pipeline uses for second-stage calls.
// The production implementation is Anthropic; tests use scripted fakes.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
