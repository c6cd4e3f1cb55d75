package algo

import (
	"sync/atomic"
	"testing"
)

func TestSearch(t *testing.T) {
	t.Parallel()
	data := []int{5, 3, 8, 1, 9, 2}
	tests := []struct {
		name    string
		data    []int
		target  int
		workers int
		want    int
	}{
		{"scenario: target 9 with 3 workers", data, 9, 3, 4},
		{"first element", data, 5, 4, 0},
		{"last element in remainder chunk", data, 2, 4, 5},
		{"absent", data, 7, 4, NotFound},
		{"empty dataset", []int{}, 1, 4, NotFound},
		{"nil dataset", nil, 1, 2, NotFound},
		{"more workers than elements", data, 1, 16, 3},
		{"single worker", data, 8, 1, 2},
		{"zero workers clamped", data, 8, 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SearchParallel(tt.data, tt.target, tt.workers); got != tt.want {
				t.Errorf("SearchParallel(%v, %d, %d) = %d, want %d", tt.data, tt.target, tt.workers, got, tt.want)
			}
			if got := SearchSequential(tt.data, tt.target); got != tt.want {
				t.Errorf("SearchSequential(%v, %d) = %d, want %d", tt.data, tt.target, got, tt.want)
			}
		})
	}
}

// TestSearchParallelChunkOrder checks that the winner is picked by chunk
// index: with duplicates in several chunks the first chunk's match is
// returned no matter which worker finishes first.
func TestSearchParallelChunkOrder(t *testing.T) {
	t.Parallel()
	data := make([]int, 4000)
	for i := range data {
		data[i] = i
	}
	data[3999] = 7
	for i := 0; i < 50; i++ {
		if got := SearchParallel(data, 7, 4); got != 7 {
			t.Fatalf("round %d: SearchParallel = %d, want 7", i, got)
		}
	}
}

func TestSearchParallelSpawnsOneWorkerPerChunk(t *testing.T) {
	t.Parallel()
	var spawned atomic.Int64
	obs := ObserverFunc(func(op Operation) {
		if op != OpSearchParallel {
			t.Errorf("unexpected operation %q", op)
		}
		spawned.Add(1)
	})
	SearchParallel([]int{1, 2}, 2, 5, WithObserver(obs))
	if got := spawned.Load(); got != 5 {
		t.Errorf("spawned %d workers, want 5", got)
	}
}
