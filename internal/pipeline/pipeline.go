// Package pipeline drives one full question cycle: stage-1 reasoning,
// stage-2 refinement, agreement evaluation, and the history record.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/exedev/tandem/internal/bus"
	"github.com/exedev/tandem/internal/config"
	"github.com/exedev/tandem/internal/evaluate"
	"github.com/exedev/tandem/internal/history"
	"github.com/exedev/tandem/internal/provider"
	"github.com/exedev/tandem/internal/refine"
)

// State identifies how far a question has progressed through the cycle.
type State string

const (
	StateIdle          State = "idle"
	StateStage1Invoked State = "stage1_invoked"
	StateStage1Parsed  State = "stage1_parsed"
	StateStage2Invoked State = "stage2_invoked"
	StateCompared      State = "compared"
	StateRecorded      State = "recorded"
	StateAborted       State = "aborted"
)

// ErrEmptyQuestion aborts a cycle before any stage runs.
var ErrEmptyQuestion = errors.New("question is empty")

const degradedRefinedAnswer = "[Error getting refined answer]"

// Outcome is the full result bundle handed to the presentation layer.
type Outcome struct {
	State    State
	Question string

	First        provider.Result
	FirstElapsed time.Duration

	Second refine.Answer

	Agreement evaluate.Score
	Narrative string

	// Diagnostics collects the per-stage faults that were degraded rather
	// than propagated. Every one of them is rendered to the user; none
	// aborts the cycle.
	Diagnostics []string
}

// Degraded reports whether any stage fell back to a placeholder.
func (o *Outcome) Degraded() bool {
	return len(o.Diagnostics) > 0
}

// Orchestrator runs the fixed four-stage cycle. A failing stage degrades to
// placeholder values so the cycle always reaches the history record; only
// an empty question aborts.
type Orchestrator struct {
	reasoner provider.Provider
	refiner  *refine.Refiner
	comparer *evaluate.Comparer
	store    *history.Store
	cfg      *config.Config
	events   *bus.Bus
	logger   *zap.Logger
}

func New(
	reasoner provider.Provider,
	refiner *refine.Refiner,
	comparer *evaluate.Comparer,
	store *history.Store,
	cfg *config.Config,
	events *bus.Bus,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		reasoner: reasoner,
		refiner:  refiner,
		comparer: comparer,
		store:    store,
		cfg:      cfg,
		events:   events,
		logger:   logger,
	}
}

// Run executes one full cycle. The returned error is non-nil only for
// unrecoverable input or a panic caught at this boundary; stage faults are
// folded into the Outcome's diagnostics instead.
func (o *Orchestrator) Run(ctx context.Context, question string) (out *Outcome, err error) {
	question = strings.TrimSpace(question)
	out = &Outcome{State: StateIdle, Question: question}

	if question == "" {
		out.State = StateAborted
		return out, ErrEmptyQuestion
	}

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("pipeline panicked", zap.Any("panic", r))
			out.State = StateAborted
			err = fmt.Errorf("pipeline panicked: %v", r)
		}
	}()

	// Stage 1: reasoning via the child-process integration.
	out.State = StateStage1Invoked
	o.publish(bus.EventStageStarted, out.State, "")

	first, firstElapsed, stage1Err := o.reasoner.Invoke(ctx, question)
	out.FirstElapsed = firstElapsed
	if stage1Err != nil {
		first = provider.Degraded
		out.Diagnostics = append(out.Diagnostics, fmt.Sprintf("stage 1: %v", stage1Err))
		o.publish(bus.EventStageDegraded, out.State, stage1Err.Error())
		o.logger.Warn("stage 1 degraded", zap.Error(stage1Err))
	} else {
		o.publish(bus.EventStageFinished, out.State, "")
	}
	out.First = first
	out.State = StateStage1Parsed

	// Stage 2: refinement, fed the stage-1 reasoning even when degraded.
	out.State = StateStage2Invoked
	o.publish(bus.EventStageStarted, out.State, "")

	second, stage2Err := o.refiner.Refine(ctx, question, first.Reasoning)
	if stage2Err != nil {
		second.Text = degradedRefinedAnswer
		out.Diagnostics = append(out.Diagnostics, fmt.Sprintf("stage 2: %v", stage2Err))
		o.publish(bus.EventStageDegraded, out.State, stage2Err.Error())
		o.logger.Warn("stage 2 degraded", zap.Error(stage2Err))
	} else {
		o.publish(bus.EventStageFinished, out.State, "")
	}
	out.Second = second

	// Agreement: both signals, neither blocking the other.
	out.Agreement = evaluate.Lexical(first.Answer, second.Text, o.cfg.AgreementThreshold)
	if o.cfg.CompareEnabled && o.comparer != nil {
		o.publish(bus.EventStageStarted, StateCompared, "")
		out.Narrative = o.comparer.Narrative(ctx, first.Answer, second.Text)
		o.publish(bus.EventStageFinished, StateCompared, "")
	}
	out.State = StateCompared

	entry := history.Entry{
		AskedAt:        time.Now(),
		Question:       question,
		FirstAnswer:    first.Answer,
		FirstReasoning: first.Reasoning,
		SecondAnswer:   second.Text,
	}
	if recordErr := o.store.Append(ctx, entry); recordErr != nil {
		out.Diagnostics = append(out.Diagnostics, fmt.Sprintf("history: %v", recordErr))
		o.logger.Warn("history append failed", zap.Error(recordErr))
	}
	out.State = StateRecorded
	o.publish(bus.EventRecorded, out.State, "")

	return out, nil
}

func (o *Orchestrator) publish(t bus.EventType, s State, detail string) {
	if o.events == nil {
		return
	}
	o.events.Publish(bus.Event{Type: t, Stage: string(s), Detail: detail, Time: time.Now()})
}
