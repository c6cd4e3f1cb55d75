package algo

import (
	"cmp"
	"slices"
)

// Engine owns one dataset in two copies: a mutable working buffer, which the
// sort operations replace with their result and the search operations read,
// and an immutable snapshot of the data the engine was built with.
//
// Reset must be called between successive timed sorts, otherwise the second
// sort measures an already sorted input.
//
// An Engine is not safe for concurrent use; the parallelism lives inside each
// operation.
type Engine[T cmp.Ordered] struct {
	working  []T
	original []T
	opts     []Option
}

// NewEngine copies data into a new Engine. data may be empty or nil. The
// options apply to every parallel operation run by the engine.
func NewEngine[T cmp.Ordered](data []T, opts ...Option) *Engine[T] {
	return &Engine[T]{
		working:  slices.Clone(data),
		original: slices.Clone(data),
		opts:     opts,
	}
}

// Len returns the number of elements in the dataset.
func (e *Engine[T]) Len() int { return len(e.working) }

// Working returns a copy of the working buffer.
func (e *Engine[T]) Working() []T { return slices.Clone(e.working) }

// Original returns a copy of the snapshot taken at construction.
func (e *Engine[T]) Original() []T { return slices.Clone(e.original) }

// Reset restores the working buffer to the snapshot.
func (e *Engine[T]) Reset() {
	e.working = slices.Clone(e.original)
}

// SearchSequential returns the first index of target in the working buffer,
// or NotFound.
func (e *Engine[T]) SearchSequential(target T) int {
	return SearchSequential(e.working, target)
}

// SearchParallel searches the working buffer with the given number of
// workers. Non-positive worker counts are clamped to 1.
func (e *Engine[T]) SearchParallel(target T, workers int) int {
	return SearchParallel(e.working, target, clampWorkers(workers), e.opts...)
}

// SearchParallelDefault searches with DefaultWorkers workers.
func (e *Engine[T]) SearchParallelDefault(target T) int {
	return e.SearchParallel(target, DefaultWorkers)
}

// SortSequential sorts the working buffer with the single-threaded kernel,
// stores the result as the new working buffer and returns it.
func (e *Engine[T]) SortSequential() []T {
	e.working = SortSequential(e.working)
	return e.working
}

// SortParallel sorts the working buffer with the given worker budget, stores
// the result as the new working buffer and returns it. A non-positive budget
// is clamped to 1, which degenerates to the sequential kernel.
func (e *Engine[T]) SortParallel(budget int) []T {
	e.working = SortParallel(e.working, clampWorkers(budget), e.opts...)
	return e.working
}

// SortParallelDefault sorts with DefaultBudget.
func (e *Engine[T]) SortParallelDefault() []T {
	return e.SortParallel(DefaultBudget)
}
