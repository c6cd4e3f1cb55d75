package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/logging"
)

func newTestApp(t *testing.T, args ...string) *Application {
	t.Helper()
	profile := filepath.Join(t.TempDir(), "profile.json")
	full := append([]string{"parbench", "-calibration-profile", profile, "-no-color"}, args...)
	app, err := New(full, io.Discard, WithLogger(logging.NewLogger(io.Discard, "test")))
	require.NoError(t, err)
	return app
}

func TestNewAppliesFlags(t *testing.T) {
	app := newTestApp(t, "-sizes", "100,200", "-w", "3", "-seed", "5")
	assert.Equal(t, []int{100, 200}, app.Config.Sizes)
	assert.Equal(t, 3, app.Config.Workers)
	assert.Equal(t, uint64(5), app.Config.Seed)
	assert.Zero(t, app.Config.Threshold, "threshold stays unresolved until Run")
}

func TestNewErrors(t *testing.T) {
	_, err := New([]string{"parbench", "-h"}, io.Discard)
	assert.True(t, IsHelpError(err))

	_, err = New([]string{"parbench", "-workers", "0"}, io.Discard)
	var ve apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.False(t, IsHelpError(err))
}

func TestRunQuietBenchmark(t *testing.T) {
	app := newTestApp(t, "-sizes", "100,1000", "-seed", "11", "-q")

	var out bytes.Buffer
	code := app.Run(context.Background(), &out)
	require.Equal(t, apperrors.ExitSuccess, code, out.String())

	s := out.String()
	for _, want := range []string{"Linear Search Single", "Linear Search Multi", "Merge Sort Single", "Merge Sort Multi", "1.00x", "seed 11"} {
		assert.Contains(t, s, want)
	}
	assert.NotContains(t, s, "Execution Configuration")
	assert.Equal(t, 1000, app.Config.Threshold)
}

func TestRunVerboseBenchmarkWritesReport(t *testing.T) {
	report := filepath.Join(t.TempDir(), "out", "report.json")
	app := newTestApp(t, "-sizes", "500", "-seed", "2", "-v", "-o", report)

	var out bytes.Buffer
	code := app.Run(context.Background(), &out)
	require.Equal(t, apperrors.ExitSuccess, code, out.String())

	s := out.String()
	assert.Contains(t, s, "Execution Configuration")
	assert.Contains(t, s, "Memory: allocated")
	assert.Contains(t, s, "Report saved to")

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	var decoded struct {
		Seed    uint64           `json:"seed"`
		Results []map[string]any `json:"results"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, uint64(2), decoded.Seed)
	assert.Len(t, decoded.Results, 4)
}

func TestRunWithMetricsServer(t *testing.T) {
	app := newTestApp(t, "-sizes", "200", "-q", "-metrics-addr", "127.0.0.1:0")

	code := app.Run(context.Background(), io.Discard)
	assert.Equal(t, apperrors.ExitSuccess, code)
	assert.NotNil(t, app.Collector)
}

func TestRunInvalidLogLevel(t *testing.T) {
	app := newTestApp(t, "-log-level", "chatty")
	assert.Equal(t, apperrors.ExitErrorConfig, app.Run(context.Background(), io.Discard))
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	app := newTestApp(t, "-sizes", "100", "-q")
	var out bytes.Buffer
	assert.Equal(t, apperrors.ExitErrorCanceled, app.Run(ctx, &out))
	assert.Contains(t, out.String(), "Canceled")

	calib := newTestApp(t, "-calibrate")
	assert.Equal(t, apperrors.ExitErrorCanceled, calib.Run(ctx, io.Discard))
}

func TestRunUsesCachedCalibration(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "profile.json")
	quiet := logging.NewLogger(io.Discard, "test")

	first, err := New([]string{"parbench", "-calibration-profile", profile, "-auto-calibrate", "-sizes", "100", "-q"}, io.Discard, WithLogger(quiet))
	require.NoError(t, err)
	require.Equal(t, apperrors.ExitSuccess, first.Run(context.Background(), io.Discard))
	calibrated := first.Config.Threshold
	require.Positive(t, calibrated)

	second, err := New([]string{"parbench", "-calibration-profile", profile, "-sizes", "100"}, io.Discard, WithLogger(quiet))
	require.NoError(t, err)
	assert.Equal(t, calibrated, second.Config.Threshold)
}

func TestVersion(t *testing.T) {
	assert.True(t, HasVersionFlag([]string{"-q", "--version"}))
	assert.False(t, HasVersionFlag([]string{"-v"}))

	var buf bytes.Buffer
	PrintVersion(&buf)
	assert.Contains(t, buf.String(), "parbench dev")
}

func TestExitCodeForStartup(t *testing.T) {
	_, err := New([]string{"parbench", "-sizes", "abc"}, io.Discard)
	require.Error(t, err)
	assert.Equal(t, apperrors.ExitErrorConfig, ExitCodeForStartup(err))

	_, err = New([]string{"parbench", "-repeat", "0"}, io.Discard)
	assert.Equal(t, apperrors.ExitErrorConfig, ExitCodeForStartup(err))
}
