package benchmark

import (
	"time"

	"github.com/agbru/parbench/internal/format"
)

// ProgressAggregator turns progress events into an overall fraction and an
// ETA. Both the CLI spinner and the TUI use it.
type ProgressAggregator struct {
	state *format.Progress
	total int
}

// NewProgressAggregator creates an aggregator for totalSteps operations.
// Returns nil if totalSteps <= 0.
func NewProgressAggregator(totalSteps int) *ProgressAggregator {
	if totalSteps <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgress(totalSteps), total: totalSteps}
}

// AggregatedProgress is the state after processing one event.
type AggregatedProgress struct {
	Size     int
	Fraction float64
	ETA      time.Duration
}

// Update processes one event. Only OperationDone events advance progress.
func (a *ProgressAggregator) Update(ev ProgressEvent) AggregatedProgress {
	var fraction float64
	var eta time.Duration
	if ev.Kind == OperationDone {
		fraction, eta = a.state.Advance()
	} else {
		fraction, eta = a.state.Snapshot()
	}
	return AggregatedProgress{Size: ev.Size, Fraction: fraction, ETA: eta}
}

// Total returns the number of steps being tracked.
func (a *ProgressAggregator) Total() int {
	return a.total
}
