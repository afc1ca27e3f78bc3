// Package refine submits the question and the stage-1 reasoning to the
// refinement provider for a second, independent answer.
package refine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/exedev/tandem/internal/config"
	"github.com/exedev/tandem/internal/llm"
)

var (
	// ErrUpstreamTimeout means the refinement call exceeded the configured
	// request timeout.
	ErrUpstreamTimeout = errors.New("refinement provider timed out")

	// ErrUpstreamError covers every other transport or provider fault.
	ErrUpstreamError = errors.New("refinement provider error")
)

// Answer is the refined answer text plus the wall-clock duration of the
// call that produced it.
type Answer struct {
	Text    string
	Elapsed time.Duration
}

// Refiner drives the second-stage provider. One call per question, no
// automatic retries.
type Refiner struct {
	client llm.Client
	cfg    *config.Config
	logger *zap.Logger
}

func New(client llm.Client, cfg *config.Config, logger *zap.Logger) *Refiner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Refiner{client: client, cfg: cfg, logger: logger}
}

// Prompt builds the single user message sent to the refinement provider.
// The stage-1 reasoning is included verbatim, placeholders and all.
func Prompt(question, reasoning string) string {
	return fmt.Sprintf("'%s' given this question, and the following reasoning:\n\n%s\n\nWhat is your answer to '%s'?",
		question, reasoning, question)
}

// Refine asks the provider to answer the question in light of the stage-1
// reasoning. The call is bounded by the configured request timeout.
func (r *Refiner) Refine(ctx context.Context, question, reasoning string) (Answer, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.RequestTimeout)
	defer cancel()

	start := time.Now()
	text, err := r.client.Complete(ctx, llm.Request{
		Model:       r.cfg.RefineModel,
		MaxTokens:   r.cfg.MaxRefineTokens,
		Temperature: r.cfg.RefineTemperature,
		Prompt:      Prompt(question, reasoning),
	})
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Answer{Elapsed: elapsed}, fmt.Errorf("%w after %s", ErrUpstreamTimeout, elapsed.Round(time.Millisecond))
		}
		return Answer{Elapsed: elapsed}, fmt.Errorf("%w: %v", ErrUpstreamError, err)
	}

	r.logger.Debug("refinement completed",
		zap.Duration("elapsed", elapsed),
		zap.Int("chars", len(text)),
	)
	return Answer{Text: text, Elapsed: elapsed}, nil
}
