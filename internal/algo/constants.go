package algo

// ─────────────────────────────────────────────────────────────────────────────
// Tuning Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// NotFound is returned by the search functions when the target does not
	// occur in the searched range.
	NotFound = -1

	// DefaultWorkers is the number of chunks (and goroutines) used by a
	// parallel search when the caller does not specify one.
	DefaultWorkers = 4

	// DefaultBudget is the worker budget given to a parallel sort when the
	// caller does not specify one. It halves at every fan-out level.
	DefaultBudget = 4

	// DefaultSortThreshold is the sub-sequence length below which a parallel
	// sort stops forking and runs the sequential kernel, whatever budget is
	// left. Below it, goroutine start-up and the extra merge allocations
	// cost more than the parallelism gains.
	DefaultSortThreshold = 1000
)

// Operation names the parallel operation that spawned a worker.
type Operation string

const (
	OpSearchParallel Operation = "search_parallel"
	OpSortParallel   Operation = "sort_parallel"
)
