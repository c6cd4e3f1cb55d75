package algo

import (
	"slices"
	"sync/atomic"
	"testing"

	"github.com/agbru/parbench/internal/datagen"
)

func TestSortScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		input  []int
		budget int
		want   []int
	}{
		{"scenario: six elements, budget 4", []int{5, 3, 8, 1, 9, 2}, 4, []int{1, 2, 3, 5, 8, 9}},
		{"empty", []int{}, 4, []int{}},
		{"singleton", []int{42}, 4, []int{42}},
		{"duplicates", []int{3, 1, 3, 2, 1}, 2, []int{1, 1, 2, 3, 3}},
		{"zero budget", []int{2, 1}, 0, []int{1, 2}},
		{"negative values", []int{0, -5, 7, -1}, 8, []int{-5, -1, 0, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SortParallel(tt.input, tt.budget); !slices.Equal(got, tt.want) {
				t.Errorf("SortParallel(%v, %d) = %v, want %v", tt.input, tt.budget, got, tt.want)
			}
			if got := SortSequential(tt.input); !slices.Equal(got, tt.want) {
				t.Errorf("SortSequential(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestSortParallelCrossesThreshold covers 2000 distinct shuffled integers
// with budget 4: the input is above the 1000-element cutover, so workers
// must be forked, and the result must still be fully sorted.
func TestSortParallelCrossesThreshold(t *testing.T) {
	t.Parallel()
	input := datagen.Permutation(2000, 11)
	snapshot := slices.Clone(input)

	var spawned atomic.Int64
	obs := ObserverFunc(func(Operation) { spawned.Add(1) })
	got := SortParallel(input, 4, WithObserver(obs))

	if n := spawned.Load(); n <= 1 {
		t.Fatalf("spawned %d workers, want more than one", n)
	}
	// 2000 -> two workers (budget 2) -> each 1000 splits again (budget 1).
	if n := spawned.Load(); n != 6 {
		t.Errorf("spawned %d workers, want 6", n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, want %d", i, v, i)
		}
	}
	if !slices.Equal(input, snapshot) {
		t.Error("SortParallel modified its input")
	}
}

func TestSortParallelBelowThresholdStaysSequential(t *testing.T) {
	t.Parallel()
	var spawned atomic.Int64
	obs := ObserverFunc(func(Operation) { spawned.Add(1) })

	SortParallel(datagen.Generate(999, 5), 64, WithObserver(obs))
	SortParallel(datagen.Generate(5000, 5), 1, WithObserver(obs))

	if n := spawned.Load(); n != 0 {
		t.Errorf("spawned %d workers, want 0", n)
	}
}

func TestSortParallelCustomThreshold(t *testing.T) {
	t.Parallel()
	var spawned atomic.Int64
	obs := ObserverFunc(func(Operation) { spawned.Add(1) })
	got := SortParallel([]int{4, 3, 2, 1}, 2, WithThreshold(2), WithObserver(obs))
	if !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Errorf("SortParallel = %v", got)
	}
	if spawned.Load() != 2 {
		t.Errorf("spawned %d workers, want 2", spawned.Load())
	}
}

func TestSortStability(t *testing.T) {
	t.Parallel()
	input := make([]tagged, 3000)
	for i := range input {
		input[i] = tagged{key: (i * 7919) % 10, tag: i}
	}
	for _, budget := range []int{1, 2, 4, 8} {
		seq := SortSequentialFunc(input, compareKey)
		par := SortParallelFunc(input, budget, compareKey)
		if !slices.Equal(seq, par) {
			t.Fatalf("budget %d: parallel output differs from sequential", budget)
		}
		for i := 1; i < len(par); i++ {
			prev, cur := par[i-1], par[i]
			if prev.key == cur.key && prev.tag > cur.tag {
				t.Fatalf("budget %d: equal keys out of original order at %d: %v before %v", budget, i, prev, cur)
			}
		}
	}
}

func TestSortIdempotent(t *testing.T) {
	t.Parallel()
	sorted := SortSequential(datagen.Generate(4096, 9))
	if got := SortParallel(sorted, 4); !slices.Equal(got, sorted) {
		t.Error("sorting an already sorted sequence changed it")
	}
}

func BenchmarkSortSequential(b *testing.B) {
	data := datagen.Generate(100_000, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SortSequential(data)
	}
}

func BenchmarkSortParallel(b *testing.B) {
	data := datagen.Generate(100_000, 1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		SortParallel(data, DefaultBudget)
	}
}
