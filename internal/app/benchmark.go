package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/parbench/internal/benchmark"
	"github.com/agbru/parbench/internal/cli"
	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/logging"
	"github.com/agbru/parbench/internal/metrics"
	"github.com/agbru/parbench/internal/sysmon"
	"github.com/agbru/parbench/internal/tui"
)

// runnerOptions assembles the options shared by the CLI and TUI runs.
func (a *Application) runnerOptions() []benchmark.RunnerOption {
	opts := []benchmark.RunnerOption{benchmark.WithLogger(a.Logger)}
	if a.Collector != nil {
		opts = append(opts, benchmark.WithCollector(a.Collector))
	}
	return opts
}

// runBenchmark runs the benchmark with CLI presentation.
func (a *Application) runBenchmark(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	host := sysmon.DescribeHost()
	if !a.Config.Quiet {
		cli.DisplayExecutionConfig(a.Config, host, out)
		cli.DisplaySystemLoad(sysmon.Sample(), out)
	}

	var reporter benchmark.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = benchmark.NullProgressReporter{}
		progressOut = io.Discard
	}

	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()
	report, err := benchmark.NewRunner(a.Config, a.runnerOptions()...).Run(ctx, reporter, progressOut)
	if err != nil {
		if len(report.Sizes) > 0 {
			cli.CLIResultPresenter{}.PresentReport(report, out)
		}
		return apperrors.HandleError(err, out)
	}

	cli.CLIResultPresenter{Verbose: a.Config.Verbose}.PresentReport(report, out)
	if a.Config.Verbose {
		cli.DisplayMemoryDelta(metrics.Delta(before, mem.Snapshot()), out)
	}
	return a.writeReport(report, host, out)
}

// runTUI launches the interactive dashboard, then writes the report file if
// the run completed.
func (a *Application) runTUI(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	report, code := tui.Run(ctx, a.Config, Version, a.runnerOptions()...)
	if report == nil || code != apperrors.ExitSuccess {
		return code
	}
	return a.writeReport(*report, sysmon.DescribeHost(), out)
}

func (a *Application) writeReport(report benchmark.Report, host sysmon.Host, out io.Writer) int {
	if a.Config.OutputFile == "" {
		return apperrors.ExitSuccess
	}
	if err := cli.WriteReport(report, host, a.Config.OutputFile); err != nil {
		a.Logger.Error("failed to write report", err, logging.String("path", a.Config.OutputFile))
		return apperrors.ExitErrorGeneric
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "Report saved to %s\n", a.Config.OutputFile)
	}
	return apperrors.ExitSuccess
}
