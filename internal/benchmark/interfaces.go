package benchmark

import (
	"io"
	"sync"
	"time"
)

// Operation identifies one of the four timed operations of a size.
type Operation string

const (
	OpSearchSequential Operation = "search_sequential"
	OpSearchParallel   Operation = "search_parallel"
	OpSortSequential   Operation = "sort_sequential"
	OpSortParallel     Operation = "sort_parallel"
)

// Operations lists the timed operations in execution order.
var Operations = []Operation{OpSearchSequential, OpSearchParallel, OpSortSequential, OpSortParallel}

// Label returns the row label used in the results table.
func (o Operation) Label() string {
	switch o {
	case OpSearchSequential:
		return "Linear Search Single"
	case OpSearchParallel:
		return "Linear Search Multi"
	case OpSortSequential:
		return "Merge Sort Single"
	case OpSortParallel:
		return "Merge Sort Multi"
	default:
		return string(o)
	}
}

// Parallel reports whether o is one of the parallel kernels.
func (o Operation) Parallel() bool {
	return o == OpSearchParallel || o == OpSortParallel
}

// OperationResult is the outcome of one timed operation.
type OperationResult struct {
	Size      int           `json:"size" yaml:"size"`
	Operation Operation     `json:"operation" yaml:"operation"`
	Duration  time.Duration `json:"duration_ns" yaml:"duration_ns"`
	// Speedup is baseline/parallel for parallel operations and 1 for the
	// sequential baselines. It is +Inf when the parallel time rounds to zero.
	Speedup float64 `json:"-" yaml:"-"`
	// Index is the position returned by a search, -1 if absent.
	Index int `json:"index,omitempty" yaml:"index,omitempty"`
}

// SizeReport groups the four results of one dataset size.
type SizeReport struct {
	Size    int               `json:"size" yaml:"size"`
	Target  int               `json:"target" yaml:"target"`
	Results []OperationResult `json:"results" yaml:"results"`
	// Allocated is the number of bytes allocated while benchmarking the size.
	Allocated uint64 `json:"allocated_bytes" yaml:"allocated_bytes"`
}

// Report is the outcome of a whole run.
type Report struct {
	Seed      uint64        `json:"seed" yaml:"seed"`
	Workers   int           `json:"workers" yaml:"workers"`
	Budget    int           `json:"budget" yaml:"budget"`
	Threshold int           `json:"threshold" yaml:"threshold"`
	Repeat    int           `json:"repeat" yaml:"repeat"`
	Sizes     []SizeReport  `json:"sizes" yaml:"sizes"`
	Elapsed   time.Duration `json:"elapsed_ns" yaml:"elapsed_ns"`
}

// EventKind classifies progress events.
type EventKind int

const (
	// SizeStarted is sent before the dataset of a size is benchmarked.
	SizeStarted EventKind = iota
	// OperationDone is sent after each timed operation.
	OperationDone
	// SizeDone is sent once the four operations of a size are verified.
	SizeDone
)

// ProgressEvent is one step of a running benchmark.
type ProgressEvent struct {
	Kind   EventKind
	Size   int
	Result OperationResult
	// Step and TotalSteps count finished operations over the whole run.
	Step       int
	TotalSteps int
}

// ProgressReporter defines the interface for displaying benchmark progress.
// This interface decouples the run from the presentation layer: the spinner
// of the CLI and the TUI dashboard both consume the same events.
type ProgressReporter interface {
	// DisplayProgress consumes events until the channel is closed, then
	// calls wg.Done.
	DisplayProgress(wg *sync.WaitGroup, events <-chan ProgressEvent, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, events <-chan ProgressEvent, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, events <-chan ProgressEvent, out io.Writer) {
	f(wg, events, out)
}

// NullProgressReporter drains the event channel without displaying anything.
// Used in quiet mode and tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, events <-chan ProgressEvent, _ io.Writer) {
	defer wg.Done()
	DrainChannel(events)
}

// DrainChannel reads all events from the channel without processing.
func DrainChannel(events <-chan ProgressEvent) {
	for range events {
	}
}

// ResultPresenter defines the interface for presenting a finished run.
type ResultPresenter interface {
	PresentReport(report Report, out io.Writer)
}

// Recorder receives timing observations. *metrics.Collector implements it.
type Recorder interface {
	ObserveOperation(op string, d time.Duration)
	SetSpeedup(op string, size int, ratio float64)
	SizeCompleted()
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, time.Duration) {}
func (nopRecorder) SetSpeedup(string, int, float64)        {}
func (nopRecorder) SizeCompleted()                         {}
