// Package calibration measures the sequential cutover length of the parallel
// merge sort on the current machine and caches the result in a profile file.
package calibration

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agbru/parbench/internal/algo"
	"github.com/agbru/parbench/internal/config"
	"github.com/agbru/parbench/internal/datagen"
	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/format"
	"github.com/agbru/parbench/internal/logging"
	"github.com/agbru/parbench/internal/ui"
)

const (
	// FullCalibrationSize is the dataset length used by --calibrate.
	FullCalibrationSize = 200_000
	// QuickCalibrationSize is the dataset length used by --auto-calibrate.
	QuickCalibrationSize = 50_000
	// calibrationSeed keeps every candidate on the same input.
	calibrationSeed = 0x9e3779b97f4a7c15
)

// Options controls a calibration.
type Options struct {
	Size       int
	Budget     int
	Candidates []int
	Repeat     int
}

// Result is the timing of one candidate threshold.
type Result struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// Calibrate times SortParallel for each candidate threshold and returns the
// results in candidate order along with the fastest threshold. Each candidate
// keeps its best of Repeat runs. The context is checked between runs.
func Calibrate(ctx context.Context, opts Options) ([]Result, int, error) {
	if len(opts.Candidates) == 0 {
		return nil, 0, apperrors.ValidationError{Field: "candidates", Message: "no threshold to calibrate"}
	}
	data := datagen.Generate(max(1, opts.Size), calibrationSeed)
	budget := max(1, opts.Budget)
	repeat := max(1, opts.Repeat)

	results := make([]Result, 0, len(opts.Candidates))
	best, bestDur := 0, time.Duration(math.MaxInt64)
	for _, threshold := range opts.Candidates {
		res := Result{Threshold: threshold, Duration: time.Duration(math.MaxInt64)}
		if threshold < 1 {
			res.Err = fmt.Errorf("invalid threshold %d", threshold)
			results = append(results, res)
			continue
		}
		for range repeat {
			if err := ctx.Err(); err != nil {
				return results, best, err
			}
			start := time.Now()
			algo.SortParallel(data, budget, algo.WithThreshold(threshold))
			res.Duration = min(res.Duration, time.Since(start))
		}
		if res.Duration < bestDur {
			best, bestDur = threshold, res.Duration
		}
		results = append(results, res)
	}
	if best == 0 {
		return results, 0, apperrors.ValidationError{Field: "candidates", Message: "no valid threshold"}
	}
	return results, best, nil
}

// RunCalibration runs the full calibration for --calibrate, prints a summary
// and saves the profile. It returns the process exit code.
func RunCalibration(ctx context.Context, cfg config.AppConfig, out io.Writer, logger logging.Logger) int {
	fmt.Fprintf(out, "%sCalibrating the parallel sort threshold%s (size %d, budget %d)...\n",
		ui.ColorBold(), ui.ColorReset(), FullCalibrationSize, cfg.Budget)

	start := time.Now()
	results, best, err := Calibrate(ctx, Options{
		Size:       FullCalibrationSize,
		Budget:     cfg.Budget,
		Candidates: GenerateSortThresholds(),
		Repeat:     3,
	})
	if err != nil {
		return apperrors.HandleError(err, out)
	}
	elapsed := time.Since(start)

	fmt.Fprintln(out, FormatCalibrationTable(results, best))
	fmt.Fprintf(out, "Optimal threshold: %s%d%s (calibrated in %s)\n",
		ui.ColorGreen(), best, ui.ColorReset(), format.FormatExecutionDuration(elapsed))

	profile := NewProfile()
	profile.OptimalSortThreshold = best
	profile.CalibrationSize = FullCalibrationSize
	profile.CalibrationBudget = cfg.Budget
	profile.CalibrationTime = elapsed.String()
	path := profilePath(cfg)
	if err := profile.SaveProfile(path); err != nil {
		logger.Error("failed to save calibration profile", err, logging.String("path", path))
		return apperrors.ExitErrorGeneric
	}
	logger.Debug("calibration profile saved", logging.String("path", path), logging.Int("threshold", best))
	fmt.Fprintf(out, "Profile saved to %s\n", path)
	return apperrors.ExitSuccess
}

// AutoCalibrate runs a quick calibration when --auto-calibrate is set and the
// threshold was not given explicitly. It returns the updated configuration
// and whether a threshold was applied.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer, logger logging.Logger) (config.AppConfig, bool) {
	if !cfg.AutoCalibrate || cfg.Threshold != 0 {
		return cfg, false
	}
	_, best, err := Calibrate(ctx, Options{
		Size:       QuickCalibrationSize,
		Budget:     cfg.Budget,
		Candidates: GenerateQuickSortThresholds(),
		Repeat:     1,
	})
	if err != nil {
		logger.Error("auto-calibration failed, keeping defaults", err)
		return cfg, false
	}
	cfg.Threshold = best
	if !cfg.Quiet {
		fmt.Fprintf(out, "%sAuto-calibration%s: sort threshold=%s%d%s\n",
			ui.ColorGreen(), ui.ColorReset(), ui.ColorYellow(), best, ui.ColorReset())
	}

	profile := NewProfile()
	profile.OptimalSortThreshold = best
	profile.CalibrationSize = QuickCalibrationSize
	profile.CalibrationBudget = cfg.Budget
	if err := profile.SaveProfile(profilePath(cfg)); err != nil {
		logger.Debug("auto-calibration profile not saved", logging.Err(err))
	}
	return cfg, true
}

// LoadCachedCalibration applies the threshold of a cached profile when the
// threshold is still unresolved and the profile matches this machine.
func LoadCachedCalibration(cfg config.AppConfig, logger logging.Logger) (config.AppConfig, bool) {
	if cfg.Threshold != 0 {
		return cfg, false
	}
	path := profilePath(cfg)
	profile, loaded := LoadOrCreateProfile(path)
	if !loaded {
		return cfg, false
	}
	if !profile.IsValid() || profile.IsStale(DefaultMaxProfileAge) {
		logger.Debug("ignoring calibration profile", logging.String("path", path))
		return cfg, false
	}
	cfg.Threshold = profile.OptimalSortThreshold
	logger.Debug("using cached calibration",
		logging.String("path", path),
		logging.Int("threshold", cfg.Threshold))
	return cfg, true
}

func profilePath(cfg config.AppConfig) string {
	if cfg.CalibrationProfile != "" {
		return cfg.CalibrationProfile
	}
	return GetDefaultProfilePath()
}

// FormatCalibrationTable renders calibration results, marking the optimum.
func FormatCalibrationTable(results []Result, best int) string {
	theme := ui.GetCurrentTUITheme()
	cell := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.Text)
	rows := make([][]string, 0, len(results))
	for _, res := range results {
		duration := "N/A"
		if res.Err == nil {
			duration = format.FormatExecutionDuration(res.Duration)
		}
		mark := ""
		if res.Err == nil && res.Threshold == best {
			mark = "(Optimal)"
		}
		rows = append(rows, []string{fmt.Sprintf("%d", res.Threshold), duration, mark})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Threshold", "Execution Time", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return cell.Bold(true).Foreground(theme.Accent)
			}
			return cell
		}).
		String()
}
