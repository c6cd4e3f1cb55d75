// Package algo implements the parallel-execution strategies benchmarked by
// parbench: a linear search that fans a dataset out over a fixed number of
// contiguous chunks, and a merge sort that recursively forks two workers per
// level under a shrinking worker budget before falling back to a sequential
// kernel.
//
// Both algorithms have a single-threaded baseline with the same contract, so
// callers can time one against the other. The Engine type owns a working
// copy of a dataset plus an immutable snapshot, and restores the working copy
// between timed runs.
//
// No locks are used anywhere in this package. Search workers write only to
// their own pre-allocated result slot; sort workers read disjoint halves of
// their input and return freshly allocated output, which the parent merges
// only after both children have joined.
package algo
