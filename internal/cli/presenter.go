package cli

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/parbench/internal/benchmark"
	"github.com/agbru/parbench/internal/config"
	"github.com/agbru/parbench/internal/format"
	"github.com/agbru/parbench/internal/metrics"
	"github.com/agbru/parbench/internal/sysmon"
	"github.com/agbru/parbench/internal/ui"
)

// CLIProgressReporter implements benchmark.ProgressReporter with a spinner.
type CLIProgressReporter struct{}

var _ benchmark.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar while the run lasts.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, events <-chan benchmark.ProgressEvent, out io.Writer) {
	DisplayProgress(wg, events, out)
}

// CLIResultPresenter implements benchmark.ResultPresenter with a rendered
// results table.
type CLIResultPresenter struct {
	// Verbose adds the per-size allocation summary below the table.
	Verbose bool
}

var _ benchmark.ResultPresenter = CLIResultPresenter{}

// PresentReport prints the performance comparison table.
func (p CLIResultPresenter) PresentReport(report benchmark.Report, out io.Writer) {
	fmt.Fprintf(out, "\nPerformance Comparison:\n")
	fmt.Fprintln(out, FormatResultsTable(report))
	if p.Verbose {
		for _, sr := range report.Sizes {
			fmt.Fprintf(out, "  size %-8d target %-8d allocated %s\n",
				sr.Size, sr.Target, format.FormatBytes(sr.Allocated))
		}
	}
	fmt.Fprintf(out, "Total time: %s%s%s (seed %d)\n",
		ui.ColorYellow(), format.FormatExecutionDuration(report.Elapsed), ui.ColorReset(), report.Seed)
}

// FormatResultsTable renders the report as a Size / Algorithm / Time (s) /
// Speedup table. The size is only printed on the first row of its group.
func FormatResultsTable(report benchmark.Report) string {
	theme := ui.GetCurrentTUITheme()
	header := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent).Padding(0, 1)
	cell := lipgloss.NewStyle().Foreground(theme.Text).Padding(0, 1)
	fast := cell.Foreground(theme.Success)
	slow := cell.Foreground(theme.Warning)

	var rows [][]string
	var speedups []float64
	for _, sr := range report.Sizes {
		for i, res := range sr.Results {
			size := ""
			if i == 0 {
				size = strconv.Itoa(sr.Size)
			}
			rows = append(rows, []string{
				size,
				res.Operation.Label(),
				format.FormatSeconds(res.Duration),
				format.FormatSpeedup(res.Speedup),
			})
			speedups = append(speedups, res.Speedup)
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Size", "Algorithm", "Time (s)", "Speedup").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 3 && row >= 0 && row < len(speedups) {
				switch {
				case speedups[row] > 1:
					return fast
				case speedups[row] < 1:
					return slow
				}
			}
			return cell
		})
	return t.String()
}

// DisplayExecutionConfig prints the banner shown before a run.
func DisplayExecutionConfig(cfg config.AppConfig, host sysmon.Host, out io.Writer) {
	fmt.Fprintf(out, "%s--- Execution Configuration ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Sizes: %s%v%s  Repeat: %s%d%s  Timeout: %s%s%s\n",
		ui.ColorMagenta(), cfg.Sizes, ui.ColorReset(),
		ui.ColorMagenta(), cfg.Repeat, ui.ColorReset(),
		ui.ColorMagenta(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Search workers: %s%d%s  Sort budget: %s%d%s  Sort threshold: %s%d%s\n",
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(),
		ui.ColorCyan(), cfg.Budget, ui.ColorReset(),
		ui.ColorCyan(), cfg.Threshold, ui.ColorReset())
	fmt.Fprintf(out, "Host: %s (%d logical / %d physical cores, %s RAM, %s/%s)\n",
		host.CPUModel, host.LogicalCPUs, host.PhysicalCPUs,
		format.FormatBytes(host.TotalMemory), host.GOOS, host.GOARCH)
}

// DisplaySystemLoad prints a one-line CPU and memory usage sample.
func DisplaySystemLoad(stats sysmon.Stats, out io.Writer) {
	fmt.Fprintf(out, "System load: CPU %s%.1f%%%s  Mem %s%.1f%%%s\n",
		ui.ColorYellow(), stats.CPUPercent, ui.ColorReset(),
		ui.ColorYellow(), stats.MemPercent, ui.ColorReset())
}

// DisplayMemoryDelta prints the allocation activity of a whole run.
func DisplayMemoryDelta(d metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "Memory: allocated %s, %d GC cycles, peak heap %s\n",
		format.FormatBytes(d.Allocated), d.GCCycles, format.FormatBytes(d.PeakHeap))
}
