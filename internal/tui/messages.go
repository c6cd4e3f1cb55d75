package tui

import (
	"time"

	"github.com/agbru/parbench/internal/benchmark"
)

// SizeStartedMsg announces the size being benchmarked.
type SizeStartedMsg struct {
	Size       int
	Generation uint64
}

// ProgressMsg carries one finished operation and the overall progress.
type ProgressMsg struct {
	Result     benchmark.OperationResult
	Fraction   float64
	ETA        time.Duration
	Generation uint64
}

// ReportMsg carries the report of a finished run.
type ReportMsg struct {
	Report     benchmark.Report
	Generation uint64
}

// RunCompleteMsg is sent when the runner returns.
type RunCompleteMsg struct {
	ExitCode   int
	Err        error
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// ContextCancelledMsg is sent when the parent context is done.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
