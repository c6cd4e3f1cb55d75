package benchmark

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/parbench/internal/algo"
	"github.com/agbru/parbench/internal/config"
	"github.com/agbru/parbench/internal/datagen"
	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/format"
	"github.com/agbru/parbench/internal/logging"
	"github.com/agbru/parbench/internal/metrics"
)

// ProgressBufferMultiplier sizes the event channel relative to the number
// of steps, so that a slow UI never blocks the timed section.
const ProgressBufferMultiplier = 2

const tracerName = "github.com/agbru/parbench/internal/benchmark"

// Runner executes a benchmark run described by a config.AppConfig.
type Runner struct {
	cfg      config.AppConfig
	logger   logging.Logger
	recorder Recorder
	observer algo.Observer
	tracer   trace.Tracer
}

// RunnerOption customizes a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger used for debug output.
func WithLogger(l logging.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithRecorder sets the sink for timing observations.
func WithRecorder(rec Recorder) RunnerOption {
	return func(r *Runner) { r.recorder = rec }
}

// WithObserver sets the observer notified of every spawned worker.
func WithObserver(obs algo.Observer) RunnerOption {
	return func(r *Runner) { r.observer = obs }
}

// WithCollector wires a Prometheus collector as both recorder and observer.
func WithCollector(c *metrics.Collector) RunnerOption {
	return func(r *Runner) {
		r.recorder = c
		r.observer = c
	}
}

// NewRunner creates a Runner. Without options it logs nowhere and records
// nothing.
func NewRunner(cfg config.AppConfig, opts ...RunnerOption) *Runner {
	r := &Runner{
		cfg:      cfg,
		logger:   logging.NewLogger(io.Discard, "benchmark"),
		recorder: nopRecorder{},
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TotalSteps is the number of timed operations of a run.
func (r *Runner) TotalSteps() int {
	return len(r.cfg.Sizes) * len(Operations)
}

// Run benchmarks every configured size in order and returns the report.
//
// Progress events are sent to reporter, which runs on its own goroutine and
// has drained the channel by the time Run returns. The context is checked
// between operations: a deadline yields a TimeoutError and a cancellation
// yields context.Canceled. A parallel result that disagrees with its
// sequential baseline yields a MismatchError. The report returned alongside
// an error holds the sizes that completed.
func (r *Runner) Run(ctx context.Context, reporter ProgressReporter, out io.Writer) (Report, error) {
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}
	ctx, span := r.tracer.Start(ctx, "benchmark.run",
		trace.WithAttributes(attribute.IntSlice("sizes", r.cfg.Sizes)))
	defer span.End()

	start := time.Now()
	seed := r.cfg.Seed
	if seed == 0 {
		seed = uint64(start.UnixNano())
	}
	report := Report{
		Seed:      seed,
		Workers:   r.cfg.Workers,
		Budget:    r.cfg.Budget,
		Threshold: r.cfg.Threshold,
		Repeat:    max(1, r.cfg.Repeat),
	}

	if err := checkContext(ctx); err != nil {
		return report, r.contextError(err, "prepare")
	}
	datasets, err := r.prepare(ctx, seed)
	if err != nil {
		return report, r.contextError(err, "prepare")
	}

	total := r.TotalSteps()
	events := make(chan ProgressEvent, total*ProgressBufferMultiplier+len(r.cfg.Sizes)*2)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, events, out)
	defer func() {
		close(events)
		displayWg.Wait()
	}()

	step := 0
	for i, size := range r.cfg.Sizes {
		events <- ProgressEvent{Kind: SizeStarted, Size: size, Step: step, TotalSteps: total}
		sr, err := r.runSize(ctx, size, datasets[i], func(res OperationResult) {
			step++
			events <- ProgressEvent{Kind: OperationDone, Size: size, Result: res, Step: step, TotalSteps: total}
		})
		if err != nil {
			span.RecordError(err)
			report.Elapsed = time.Since(start)
			return report, err
		}
		report.Sizes = append(report.Sizes, sr)
		r.recorder.SizeCompleted()
		events <- ProgressEvent{Kind: SizeDone, Size: size, Step: step, TotalSteps: total}
	}
	report.Elapsed = time.Since(start)
	r.logger.Debug("benchmark finished",
		logging.Int("sizes", len(report.Sizes)),
		logging.Duration("elapsed", report.Elapsed))
	return report, nil
}

// prepare generates one dataset per size concurrently. Size i uses seed+i so
// that a run is reproducible from its reported seed.
func (r *Runner) prepare(ctx context.Context, seed uint64) ([][]int, error) {
	datasets := make([][]int, len(r.cfg.Sizes))
	g, gctx := errgroup.WithContext(ctx)
	for i, size := range r.cfg.Sizes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			datasets[i] = datagen.Generate(size, seed+uint64(i))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return datasets, nil
}

func (r *Runner) runSize(ctx context.Context, size int, data []int, done func(OperationResult)) (SizeReport, error) {
	ctx, span := r.tracer.Start(ctx, "benchmark.size",
		trace.WithAttributes(attribute.Int("size", size)))
	defer span.End()

	target, ok := datagen.MiddleTarget(data)
	if !ok {
		return SizeReport{}, apperrors.ValidationError{Field: "sizes", Message: "dataset is empty"}
	}
	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()

	var opts []algo.Option
	if r.observer != nil {
		opts = append(opts, algo.WithObserver(r.observer))
	}
	engine := algo.NewEngine(data, r.cfg.AlgoOptions(opts...)...)

	var (
		seqIdx, parIdx       int
		seqSorted, parSorted []int
	)
	type kernel struct {
		run   func()
		reset func()
	}
	kernels := map[Operation]kernel{
		OpSearchSequential: {run: func() { seqIdx = engine.SearchSequential(target) }},
		OpSearchParallel:   {run: func() { parIdx = engine.SearchParallel(target, r.cfg.Workers) }},
		OpSortSequential:   {run: func() { seqSorted = engine.SortSequential() }, reset: engine.Reset},
		OpSortParallel:     {run: func() { parSorted = engine.SortParallel(r.cfg.Budget) }, reset: engine.Reset},
	}

	sr := SizeReport{Size: size, Target: target}
	var baseline time.Duration
	for _, op := range Operations {
		if err := checkContext(ctx); err != nil {
			return sr, r.contextError(err, string(op))
		}
		k := kernels[op]
		d := r.measure(ctx, size, op, k.run, k.reset)
		res := OperationResult{Size: size, Operation: op, Duration: d, Speedup: 1, Index: algo.NotFound}
		switch op {
		case OpSearchSequential, OpSortSequential:
			baseline = d
		default:
			res.Speedup = format.Speedup(baseline, d)
			r.recorder.SetSpeedup(string(op), size, res.Speedup)
		}
		switch op {
		case OpSearchSequential:
			res.Index = seqIdx
		case OpSearchParallel:
			res.Index = parIdx
		}
		r.recorder.ObserveOperation(string(op), d)
		sr.Results = append(sr.Results, res)
		done(res)
	}

	if err := verify(size, data, target, seqIdx, parIdx, seqSorted, parSorted); err != nil {
		span.RecordError(err)
		return sr, err
	}
	sr.Allocated = metrics.Delta(before, mem.Snapshot()).Allocated
	r.logger.Debug("size benchmarked",
		logging.Int("size", size),
		logging.Int("target", target),
		logging.Uint64("allocated", sr.Allocated))
	return sr, nil
}

// measure runs fn Repeat times and returns the fastest run. reset, when not
// nil, runs after each run outside the timed section.
func (r *Runner) measure(ctx context.Context, size int, op Operation, fn, reset func()) time.Duration {
	_, span := r.tracer.Start(ctx, "benchmark."+string(op),
		trace.WithAttributes(
			attribute.Int("size", size),
			attribute.String("operation", string(op)),
		))
	defer span.End()

	best := time.Duration(math.MaxInt64)
	for range max(1, r.cfg.Repeat) {
		start := time.Now()
		fn()
		if d := time.Since(start); d < best {
			best = d
		}
		if reset != nil {
			reset()
		}
	}
	span.SetAttributes(attribute.Int64("best_ns", best.Nanoseconds()))
	return best
}

// checkContext reports a passed deadline even before the context's timer
// has fired.
func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok && !time.Now().Before(deadline) {
		return context.DeadlineExceeded
	}
	return nil
}

func (r *Runner) contextError(err error, op string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: op, Limit: r.cfg.Timeout}
	}
	return apperrors.WrapError(err, "benchmark interrupted before %s", op)
}

// verify checks the parallel results against their sequential baselines.
func verify(size int, data []int, target, seqIdx, parIdx int, seqSorted, parSorted []int) error {
	if seqIdx < 0 || seqIdx >= len(data) || data[seqIdx] != target {
		return apperrors.MismatchError{Size: size, Operation: string(OpSearchSequential),
			Detail: fmt.Sprintf("index %d does not hold target %d", seqIdx, target)}
	}
	if parIdx != seqIdx {
		return apperrors.MismatchError{Size: size, Operation: string(OpSearchParallel),
			Detail: fmt.Sprintf("index %d, sequential found %d", parIdx, seqIdx)}
	}
	if len(seqSorted) != len(data) || !slices.IsSorted(seqSorted) {
		return apperrors.MismatchError{Size: size, Operation: string(OpSortSequential),
			Detail: "output is not a sorted permutation of the input"}
	}
	if !slices.Equal(seqSorted, parSorted) {
		return apperrors.MismatchError{Size: size, Operation: string(OpSortParallel),
			Detail: "output differs from the sequential sort"}
	}
	return nil
}
