// Package tui implements the --tui dashboard: a bubbletea program that runs
// the benchmark in the background and shows its rows as they complete.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/parbench/internal/benchmark"
	"github.com/agbru/parbench/internal/cli"
	"github.com/agbru/parbench/internal/config"
	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/format"
	"github.com/agbru/parbench/internal/sysmon"
)

const (
	tickInterval  = 500 * time.Millisecond
	historyLength = 40
	barWidth      = 30
)

// Model is the root bubbletea model of the dashboard.
type Model struct {
	cfg        config.AppConfig
	version    string
	runnerOpts []benchmark.RunnerOption
	keymap     KeyMap
	spinner    spinner.Model
	ref        *programRef

	parentCtx  context.Context
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64

	startTime   time.Time
	endTime     time.Time
	currentSize int
	fraction    float64
	eta         time.Duration
	rows        []benchmark.OperationResult
	report      *benchmark.Report

	cpu    *history
	mem    *history
	paused bool
	done   bool
	err    error
	code   int
	width  int
}

// NewModel creates the dashboard model. The run starts with Init.
func NewModel(parentCtx context.Context, cfg config.AppConfig, version string, opts ...benchmark.RunnerOption) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	return Model{
		cfg:        cfg,
		version:    version,
		runnerOpts: opts,
		keymap:     DefaultKeyMap(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(titleStyle)),
		ref:        &programRef{},
		parentCtx:  parentCtx,
		ctx:        ctx,
		cancel:     cancel,
		startTime:  time.Now(),
		cpu:        newHistory(historyLength),
		mem:        newHistory(historyLength),
		code:       apperrors.ExitSuccess,
	}
}

// Init starts the run, the sampling ticker and the spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		tickCmd(),
		startRunCmd(m.ref, m.ctx, m.cfg, m.runnerOpts, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SizeStartedMsg:
		if msg.Generation == m.generation {
			m.currentSize = msg.Size
		}
		return m, nil

	case ProgressMsg:
		if msg.Generation == m.generation {
			m.rows = append(m.rows, msg.Result)
			m.fraction = msg.Fraction
			m.eta = msg.ETA
		}
		return m, nil

	case ReportMsg:
		if msg.Generation == m.generation {
			report := msg.Report
			m.report = &report
		}
		return m, nil

	case RunCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.done = true
		m.endTime = time.Now()
		m.err = msg.Err
		m.code = msg.ExitCode
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.cpu.Push(msg.CPUPercent)
		m.mem.Push(msg.MemPercent)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		if !m.done {
			m.code = apperrors.ExitCodeFor(msg.Err)
		}
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.code = apperrors.ExitErrorCanceled
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
		m.startTime = time.Now()
		m.endTime = time.Time{}
		m.currentSize = 0
		m.fraction, m.eta = 0, 0
		m.rows = nil
		m.report = nil
		m.done, m.err = false, nil
		m.code = apperrors.ExitSuccess
		return m, tea.Batch(
			tickCmd(),
			startRunCmd(m.ref, m.ctx, m.cfg, m.runnerOpts, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	sections := []string{
		m.headerView(),
		dimStyle.Render(fmt.Sprintf("sizes %v  workers %d  budget %d  threshold %d  repeat %d",
			m.cfg.Sizes, m.cfg.Workers, m.cfg.Budget, m.cfg.Threshold, m.cfg.Repeat)),
	}
	if len(m.rows) > 0 {
		sections = append(sections, cli.FormatResultsTable(partialReport(m.rows)))
	}
	sections = append(sections, m.progressView(), m.footerView())
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) headerView() string {
	title := "parbench"
	if m.version != "" && m.version != "dev" {
		title += " " + m.version
	}
	end := m.endTime
	if end.IsZero() {
		end = time.Now()
	}
	var status string
	switch {
	case m.done && m.err != nil:
		status = statusErrorStyle.Render("FAILED")
	case m.done:
		status = statusDoneStyle.Render("DONE")
	case m.paused:
		status = statusPausedStyle.Render("PAUSED")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}
	return titleStyle.Render(title) + dimStyle.Render(" | ") +
		elapsedStyle.Render("Elapsed: "+format.FormatExecutionDuration(end.Sub(m.startTime))) +
		dimStyle.Render(" | ") + status
}

func (m Model) progressView() string {
	if m.done {
		if m.err != nil {
			return statusErrorStyle.Render(m.err.Error())
		}
		return statusDoneStyle.Render("All sizes benchmarked.")
	}
	filled := int(min(max(m.fraction, 0), 1) * barWidth)
	bar := barStyle.Render(strings.Repeat("█", filled)) + barEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s size %d %s %5.1f%% ETA %s",
		m.spinner.View(), m.currentSize, bar, m.fraction*100, format.FormatETA(m.eta))
}

func (m Model) footerView() string {
	cpu := fmt.Sprintf("CPU %5.1f%% %s", m.cpu.Last(), cpuSparklineStyle.Render(renderSparkline(m.cpu.Values())))
	mem := fmt.Sprintf("MEM %5.1f%% %s", m.mem.Last(), memSparklineStyle.Render(renderSparkline(m.mem.Values())))
	keys := make([]string, 0, 3)
	for _, b := range []key.Binding{m.keymap.Quit, m.keymap.Pause, m.keymap.Reset} {
		h := b.Help()
		keys = append(keys, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cpu+"  "+mem, strings.Join(keys, "  "))
}

// partialReport groups finished rows per size for rendering.
func partialReport(rows []benchmark.OperationResult) benchmark.Report {
	var report benchmark.Report
	for _, row := range rows {
		n := len(report.Sizes)
		if n == 0 || report.Sizes[n-1].Size != row.Size || len(report.Sizes[n-1].Results) == len(benchmark.Operations) {
			report.Sizes = append(report.Sizes, benchmark.SizeReport{Size: row.Size})
			n++
		}
		report.Sizes[n-1].Results = append(report.Sizes[n-1].Results, row)
	}
	return report
}

// Run starts the dashboard and blocks until the user quits. It returns the
// report of the last run, if it completed, and the exit code.
func Run(ctx context.Context, cfg config.AppConfig, version string, opts ...benchmark.RunnerOption) (*benchmark.Report, int) {
	initTUIStyles()

	model := NewModel(ctx, cfg, version, opts...)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return nil, apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.report, m.code
	}
	return nil, apperrors.ExitSuccess
}

// startRunCmd runs the benchmark and reports through the program.
func startRunCmd(ref *programRef, ctx context.Context, cfg config.AppConfig, opts []benchmark.RunnerOption, gen uint64) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref, generation: gen}
		presenter := &TUIResultPresenter{ref: ref, generation: gen}

		report, err := benchmark.NewRunner(cfg, opts...).Run(ctx, reporter, io.Discard)
		if err == nil {
			presenter.PresentReport(report, io.Discard)
		}
		return RunCompleteMsg{ExitCode: apperrors.ExitCodeFor(err), Err: err, Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}

// watchContextCmd waits for the run context to end.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
