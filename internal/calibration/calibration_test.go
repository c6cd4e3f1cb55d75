package calibration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/agbru/parbench/internal/algo"
	"github.com/agbru/parbench/internal/config"
	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/logging"
	"github.com/agbru/parbench/internal/ui"
)

var discardLogger = logging.NewLogger(io.Discard, "calibration")

func TestThresholdListsByCPUCount(t *testing.T) {
	t.Parallel()
	for _, n := range []int{1, 2, 4, 8, 16, 64} {
		full := sortThresholdsFor(n)
		quick := quickSortThresholdsFor(n)
		if len(full) == 0 || len(quick) == 0 {
			t.Fatalf("numCPU=%d: empty threshold list", n)
		}
		if !slices.IsSorted(full) || !slices.IsSorted(quick) {
			t.Errorf("numCPU=%d: thresholds should be ascending", n)
		}
		if len(quick) > len(full) {
			t.Errorf("numCPU=%d: quick list longer than full list", n)
		}
		for _, th := range full {
			if th < 1 {
				t.Errorf("numCPU=%d: non-positive threshold %d", n, th)
			}
		}
	}
	if got := sortThresholdsFor(1); !slices.Equal(got, []int{algo.DefaultSortThreshold}) {
		t.Errorf("single core thresholds = %v", got)
	}
	if len(sortThresholdsFor(16)) <= len(sortThresholdsFor(4)) {
		t.Error("more cores should test more thresholds")
	}
	if GenerateSortThresholds() == nil || GenerateQuickSortThresholds() == nil {
		t.Error("generated lists should not be nil")
	}
	if EstimateOptimalSortThreshold() < 1 {
		t.Error("estimated threshold should be positive")
	}
}

func TestCalibrate(t *testing.T) {
	t.Parallel()
	candidates := []int{64, 1000, 4096}
	results, best, err := Calibrate(context.Background(), Options{Size: 5000, Budget: 4, Candidates: candidates, Repeat: 1})
	if err != nil {
		t.Fatalf("Calibrate failed: %v", err)
	}
	if len(results) != len(candidates) {
		t.Fatalf("got %d results, want %d", len(results), len(candidates))
	}
	for i, res := range results {
		if res.Threshold != candidates[i] {
			t.Errorf("result %d threshold = %d, want %d", i, res.Threshold, candidates[i])
		}
		if res.Err != nil {
			t.Errorf("result %d error: %v", i, res.Err)
		}
	}
	if !slices.Contains(candidates, best) {
		t.Errorf("best threshold %d is not a candidate", best)
	}
}

func TestCalibrateInvalidCandidates(t *testing.T) {
	t.Parallel()
	_, _, err := Calibrate(context.Background(), Options{Size: 100, Budget: 2})
	var ve apperrors.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("empty candidates: err = %v, want ValidationError", err)
	}

	results, best, err := Calibrate(context.Background(), Options{Size: 100, Budget: 2, Candidates: []int{0, -5}})
	if !errors.As(err, &ve) {
		t.Errorf("invalid candidates: err = %v, want ValidationError", err)
	}
	if best != 0 || len(results) != 2 || results[0].Err == nil {
		t.Errorf("invalid candidates: results=%+v best=%d", results, best)
	}
}

func TestCalibrateCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Calibrate(ctx, Options{Size: 100, Budget: 2, Candidates: []int{10}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestAutoCalibrateAndCache(t *testing.T) {
	t.Parallel()
	cfg := config.AppConfig{
		Budget:             2,
		AutoCalibrate:      true,
		Quiet:              true,
		CalibrationProfile: filepath.Join(t.TempDir(), "profile.json"),
	}

	updated, applied := AutoCalibrate(context.Background(), cfg, io.Discard, discardLogger)
	if !applied || updated.Threshold < 1 {
		t.Fatalf("AutoCalibrate: applied=%v threshold=%d", applied, updated.Threshold)
	}

	cached, ok := LoadCachedCalibration(cfg, discardLogger)
	if !ok {
		t.Fatal("expected the saved profile to be loaded")
	}
	if cached.Threshold != updated.Threshold {
		t.Errorf("cached threshold = %d, want %d", cached.Threshold, updated.Threshold)
	}

	cfg.Threshold = 77
	if got, ok := LoadCachedCalibration(cfg, discardLogger); ok || got.Threshold != 77 {
		t.Errorf("explicit threshold overridden: ok=%v threshold=%d", ok, got.Threshold)
	}
	if _, ok := AutoCalibrate(context.Background(), cfg, io.Discard, discardLogger); ok {
		t.Error("AutoCalibrate should not run with an explicit threshold")
	}
}

func TestLoadCachedCalibrationMissingProfile(t *testing.T) {
	t.Parallel()
	cfg := config.AppConfig{CalibrationProfile: filepath.Join(t.TempDir(), "none.json")}
	if _, ok := LoadCachedCalibration(cfg, discardLogger); ok {
		t.Error("missing profile should not apply")
	}
}

func TestFormatCalibrationTable(t *testing.T) {
	ui.InitTheme(true)
	defer ui.InitTheme(false)

	out := FormatCalibrationTable([]Result{
		{Threshold: 512, Duration: 3000000},
		{Threshold: 1000, Duration: 2000000},
		{Threshold: 0, Err: errors.New("invalid")},
	}, 1000)
	for _, want := range []string{"Threshold", "Execution Time", "512", "3ms", "2ms", "(Optimal)", "N/A"} {
		if !strings.Contains(out, want) {
			t.Errorf("table does not contain %q:\n%s", want, out)
		}
	}
	if strings.Count(out, "(Optimal)") != 1 {
		t.Error("exactly one row should be marked optimal")
	}
}

func TestRunCalibrationCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	cfg := config.AppConfig{Budget: 2, CalibrationProfile: filepath.Join(t.TempDir(), "p.json")}
	if code := RunCalibration(ctx, cfg, &buf, discardLogger); code != apperrors.ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorCanceled)
	}
}
