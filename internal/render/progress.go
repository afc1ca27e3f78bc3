package render

import (
	"sync"

	"github.com/pterm/pterm"

	"github.com/exedev/tandem/internal/bus"
	"github.com/exedev/tandem/internal/pipeline"
)

// Progress drives a terminal spinner from pipeline events. At most one
// spinner is live at a time; each stage start replaces the previous one.
type Progress struct {
	mu      sync.Mutex
	spinner *pterm.SpinnerPrinter
	sub     *bus.Subscription
}

func NewProgress(b *bus.Bus) *Progress {
	p := &Progress{}
	p.sub = b.SubscribeAll(p.handle)
	return p
}

// Close detaches from the bus and stops any live spinner.
func (p *Progress) Close() {
	p.sub.Unsubscribe()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.spinner != nil {
		_ = p.spinner.Stop()
		p.spinner = nil
	}
}

func (p *Progress) handle(e bus.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch e.Type {
	case bus.EventStageStarted:
		running, _ := stageLabels(e.Stage)
		if running == "" {
			return
		}
		if p.spinner != nil {
			_ = p.spinner.Stop()
		}
		sp, err := pterm.DefaultSpinner.Start(running)
		if err != nil {
			p.spinner = nil
			return
		}
		p.spinner = sp

	case bus.EventStageFinished:
		if p.spinner == nil {
			return
		}
		_, done := stageLabels(e.Stage)
		p.spinner.Success(done)
		p.spinner = nil

	case bus.EventStageDegraded:
		if p.spinner == nil {
			return
		}
		p.spinner.Fail(e.Detail)
		p.spinner = nil

	case bus.EventRecorded:
		if p.spinner != nil {
			_ = p.spinner.Stop()
			p.spinner = nil
		}
	}
}

func stageLabels(stage string) (running, done string) {
	switch stage {
	case string(pipeline.StateStage1Invoked):
		return "Calling DeepSeek via OpenRouter...", "Received response from DeepSeek"
	case string(pipeline.StateStage2Invoked):
		return "Waiting for Claude...", "Received response from Claude"
	case string(pipeline.StateCompared):
		return "Comparing answers...", "Comparison complete"
	}
	return "", ""
}
