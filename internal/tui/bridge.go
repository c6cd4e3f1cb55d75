package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/parbench/internal/benchmark"
)

// sender is the part of *tea.Program the bridge needs.
type sender interface {
	Send(msg tea.Msg)
}

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program sender
}

// SetProgram sets the program reference (thread-safe).
func (r *programRef) SetProgram(p sender) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program, if one is set.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements benchmark.ProgressReporter by forwarding
// events to the dashboard as messages.
type TUIProgressReporter struct {
	ref        *programRef
	generation uint64
}

var _ benchmark.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress forwards events until the channel is closed.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, events <-chan benchmark.ProgressEvent, _ io.Writer) {
	defer wg.Done()

	var agg *benchmark.ProgressAggregator
	for ev := range events {
		if agg == nil {
			agg = benchmark.NewProgressAggregator(ev.TotalSteps)
			if agg == nil {
				continue
			}
		}
		p := agg.Update(ev)
		switch ev.Kind {
		case benchmark.SizeStarted:
			t.ref.Send(SizeStartedMsg{Size: ev.Size, Generation: t.generation})
		case benchmark.OperationDone:
			t.ref.Send(ProgressMsg{Result: ev.Result, Fraction: p.Fraction, ETA: p.ETA, Generation: t.generation})
		}
	}
}

// TUIResultPresenter implements benchmark.ResultPresenter by sending the
// report to the dashboard instead of writing it.
type TUIResultPresenter struct {
	ref        *programRef
	generation uint64
}

var _ benchmark.ResultPresenter = (*TUIResultPresenter)(nil)

// PresentReport sends the report to the TUI.
func (t *TUIResultPresenter) PresentReport(report benchmark.Report, _ io.Writer) {
	t.ref.Send(ReportMsg{Report: report, Generation: t.generation})
}
