// Package datagen produces the random integer datasets fed to the benchmark.
package datagen

import (
	"math/rand/v2"
	"time"
)

// Generate returns size integers drawn uniformly from [1, size*10]. The same
// non-zero seed always yields the same dataset; seed 0 picks a time-based
// seed. A non-positive size yields an empty slice.
func Generate(size int, seed uint64) []int {
	if size <= 0 {
		return []int{}
	}
	r := newRand(seed)
	upper := size * 10
	data := make([]int, size)
	for i := range data {
		data[i] = 1 + r.IntN(upper)
	}
	return data
}

// Permutation returns the distinct integers 0..size-1 in shuffled order.
func Permutation(size int, seed uint64) []int {
	if size <= 0 {
		return []int{}
	}
	return newRand(seed).Perm(size)
}

// MiddleTarget returns the element at the middle of data, the search target
// used by the benchmark. ok is false for an empty dataset.
func MiddleTarget(data []int) (target int, ok bool) {
	if len(data) == 0 {
		return 0, false
	}
	return data[len(data)/2], true
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
