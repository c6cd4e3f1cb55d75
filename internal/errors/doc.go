// Package apperrors defines the structured error types of parbench and the
// process exit codes they map to, separating configuration mistakes,
// verification mismatches between the baseline and parallel algorithms, and
// timeouts or cancellations of a benchmark run.
//
// All wrapping types implement Unwrap so that errors.Is and errors.As see the
// underlying cause.
package apperrors
