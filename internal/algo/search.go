package algo

import "github.com/agbru/parbench/internal/parallel"

// SearchSequential returns the index of the first element equal to target, or
// NotFound.
func SearchSequential[T comparable](data []T, target T) int {
	return searchRange(data, target, 0, len(data))
}

// SearchParallel partitions data into workers chunks (see Partition), scans
// every chunk on its own goroutine and returns once all of them have
// finished. A worker never cancels the others when it finds a match.
//
// Each worker writes only to its own result slot. The slots are then read in
// chunk order and the first match wins, so the answer depends on the chunk
// layout and never on which goroutine finished first. Because chunks are
// contiguous and ascending, the winner is also the left-most match overall.
//
// A workers value below 1 is treated as 1.
func SearchParallel[T comparable](data []T, target T, workers int, opts ...Option) int {
	o := buildOptions(opts)
	chunks := Partition(len(data), workers)
	results := make([]int, len(chunks))

	thunks := make([]func() error, len(chunks))
	for i, c := range chunks {
		thunks[i] = func() error {
			if c.Empty() {
				results[c.Index] = NotFound
				return nil
			}
			results[c.Index] = searchRange(data, target, c.Start, c.End)
			return nil
		}
		o.Observer.WorkerSpawned(OpSearchParallel)
	}
	_ = parallel.Do(thunks...)

	for _, idx := range results {
		if idx != NotFound {
			return idx
		}
	}
	return NotFound
}

func searchRange[T comparable](data []T, target T, start, end int) int {
	for i := start; i < end; i++ {
		if data[i] == target {
			return i
		}
	}
	return NotFound
}
