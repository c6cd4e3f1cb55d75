package algo

import (
	"cmp"

	"github.com/agbru/parbench/internal/parallel"
)

// SortSequential returns the elements of seq in ascending order using a
// single-threaded top-down merge sort. seq is not modified; sequences of
// length 0 or 1 are returned as they are.
func SortSequential[T cmp.Ordered](seq []T) []T {
	return SortSequentialFunc(seq, cmp.Compare[T])
}

// SortSequentialFunc is SortSequential with a caller-supplied comparison.
// The sort is stable.
func SortSequentialFunc[T any](seq []T, compare func(a, b T) int) []T {
	if len(seq) <= 1 {
		return seq
	}
	mid := len(seq) / 2
	left := SortSequentialFunc(seq[:mid], compare)
	right := SortSequentialFunc(seq[mid:], compare)
	return MergeFunc(left, right, compare)
}

// SortParallel returns the elements of seq in ascending order, forking
// workers while the budget allows. See SortParallelFunc.
func SortParallel[T cmp.Ordered](seq []T, budget int, opts ...Option) []T {
	return SortParallelFunc(seq, budget, cmp.Compare[T], opts...)
}

// SortParallelFunc sorts seq with a recursive, bounded fan-out:
//
//   - a sequence shorter than the threshold, or a budget of 1 or less, is
//     handed to the sequential kernel on the calling goroutine;
//   - otherwise the sequence is split at its midpoint, each half is sorted
//     by its own worker with budget/2, and the two results are merged once
//     both workers have returned.
//
// The output is stable and identical to SortSequentialFunc for every budget;
// scheduling only affects timing. seq is never modified.
func SortParallelFunc[T any](seq []T, budget int, compare func(a, b T) int, opts ...Option) []T {
	s := sorter[T]{compare: compare, opts: buildOptions(opts)}
	return s.sort(seq, budget)
}

type sorter[T any] struct {
	compare func(a, b T) int
	opts    Options
}

func (s sorter[T]) sort(seq []T, budget int) []T {
	if len(seq) <= 1 {
		return seq
	}
	if budget <= 1 || len(seq) < s.opts.Threshold {
		return SortSequentialFunc(seq, s.compare)
	}

	mid := len(seq) / 2
	half := budget / 2
	var left, right []T
	s.opts.Observer.WorkerSpawned(OpSortParallel)
	s.opts.Observer.WorkerSpawned(OpSortParallel)
	_ = parallel.Do(
		func() error {
			left = s.sort(seq[:mid], half)
			return nil
		},
		func() error {
			right = s.sort(seq[mid:], half)
			return nil
		},
	)
	return MergeFunc(left, right, s.compare)
}
