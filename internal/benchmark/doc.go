// Package benchmark drives the timed comparison of the sequential and
// parallel kernels of package algo over a series of dataset sizes. It owns
// the run lifecycle (dataset preparation, timing, verification, cancellation)
// and reports through the ProgressReporter and ResultPresenter interfaces so
// that the CLI and the TUI can present the same run.
package benchmark
