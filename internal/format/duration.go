// Package format holds the display helpers shared by the CLI and the TUI.
package format

import (
	"fmt"
	"math"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatSeconds renders d as seconds with six decimals, the unit of the
// results table.
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.6f", d.Seconds())
}

// Speedup returns baseline/parallel. A parallel time of zero yields +Inf.
func Speedup(baseline, parallel time.Duration) float64 {
	if parallel <= 0 {
		return math.Inf(1)
	}
	return float64(baseline) / float64(parallel)
}

// FormatSpeedup renders a speedup ratio as "2.31x", or "∞x" when infinite.
func FormatSpeedup(ratio float64) string {
	if math.IsInf(ratio, 1) {
		return "∞x"
	}
	return fmt.Sprintf("%.2fx", ratio)
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
