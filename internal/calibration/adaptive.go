// This file implements adaptive threshold generation based on hardware characteristics.

package calibration

import (
	"runtime"

	"github.com/agbru/parbench/internal/algo"
)

// GenerateSortThresholds returns the sequential cutover lengths tried by a
// full calibration, based on the number of available CPU cores.
//
// On a single core only the default is returned: fan-out cannot pay off, so
// there is nothing to measure. More cores make smaller leaves worthwhile, so
// the list extends downwards and upwards as the core count grows.
func GenerateSortThresholds() []int {
	return sortThresholdsFor(runtime.NumCPU())
}

func sortThresholdsFor(numCPU int) []int {
	switch {
	case numCPU <= 1:
		return []int{algo.DefaultSortThreshold}
	case numCPU <= 4:
		return []int{256, 512, 1000, 2048, 4096}
	case numCPU <= 8:
		return []int{128, 256, 512, 1000, 2048, 4096, 8192}
	default:
		return []int{64, 128, 256, 512, 1000, 2048, 4096, 8192, 16384}
	}
}

// GenerateQuickSortThresholds returns a reduced list for --auto-calibrate.
func GenerateQuickSortThresholds() []int {
	return quickSortThresholdsFor(runtime.NumCPU())
}

func quickSortThresholdsFor(numCPU int) []int {
	switch {
	case numCPU <= 1:
		return []int{algo.DefaultSortThreshold}
	case numCPU <= 4:
		return []int{512, 1000, 4096}
	default:
		return []int{256, 1000, 4096, 8192}
	}
}

// EstimateOptimalSortThreshold guesses a threshold without benchmarking.
func EstimateOptimalSortThreshold() int {
	numCPU := runtime.NumCPU()
	switch {
	case numCPU <= 2:
		return 4096
	case numCPU <= 8:
		return algo.DefaultSortThreshold
	default:
		return 512
	}
}
