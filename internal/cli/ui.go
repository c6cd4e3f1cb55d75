//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/parbench/internal/benchmark"
	"github.com/agbru/parbench/internal/format"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the spinner.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts a terminal spinner so that DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts *spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner with an overall progress bar and ETA until
// the event channel is closed.
func DisplayProgress(wg *sync.WaitGroup, events <-chan benchmark.ProgressEvent, out io.Writer) {
	defer wg.Done()

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	defer s.Stop()

	var agg *benchmark.ProgressAggregator
	for ev := range events {
		if agg == nil {
			agg = benchmark.NewProgressAggregator(ev.TotalSteps)
			if agg == nil {
				continue
			}
		}
		s.UpdateSuffix(FormatProgressLine(agg.Update(ev)))
	}
}

// FormatProgressLine renders the spinner suffix for a progress state.
func FormatProgressLine(p benchmark.AggregatedProgress) string {
	return fmt.Sprintf(" size %d %s %6.2f%% ETA %s",
		p.Size, progressBar(p.Fraction, ProgressBarWidth), p.Fraction*100, format.FormatETA(p.ETA))
}

// progressBar renders progress in [0, 1] as a bar of the given width.
func progressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := range length {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
