// Package app wires configuration, calibration, metrics and the presentation
// layers into the parbench command.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/parbench/internal/calibration"
	"github.com/agbru/parbench/internal/config"
	apperrors "github.com/agbru/parbench/internal/errors"
	"github.com/agbru/parbench/internal/logging"
	"github.com/agbru/parbench/internal/metrics"
	"github.com/agbru/parbench/internal/ui"
)

// Application represents the parbench application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger
	Collector *metrics.Collector
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the stderr logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates an Application by parsing command-line arguments. args[0] is
// the program name. A cached calibration profile supplies the sort threshold
// when neither a flag, the environment nor the config file did.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}

	programName := "parbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = logging.NewLogger(errWriter, "parbench")
	}

	if cfgWithProfile, loaded := calibration.LoadCachedCalibration(app.Config, app.Logger); loaded {
		app.Config = cfgWithProfile
	}
	return app, nil
}

// Run executes the application in the configured mode and returns the exit
// code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	level, err := logging.ParseLevel(a.Config.LogLevel)
	if err != nil {
		fmt.Fprintln(a.ErrWriter, err)
		return apperrors.ExitErrorConfig
	}
	if a.Config.Verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Calibrate {
		return calibration.RunCalibration(ctx, a.Config, out, a.Logger)
	}

	if updated, ok := calibration.AutoCalibrate(ctx, a.Config, out, a.Logger); ok {
		a.Config = updated
	}
	a.Config = config.ApplyDefaultThreshold(a.Config)

	if a.Config.MetricsAddr != "" {
		stop := a.serveMetrics(ctx)
		defer stop()
	}

	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}
	return a.runBenchmark(ctx, out)
}

// serveMetrics exposes the collector until the returned function is called.
func (a *Application) serveMetrics(ctx context.Context) func() {
	if a.Collector == nil {
		a.Collector = metrics.NewCollector()
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.Logger.Info("serving metrics", logging.String("addr", a.Config.MetricsAddr))
		if err := a.Collector.Serve(ctx, a.Config.MetricsAddr); err != nil {
			a.Logger.Error("metrics server stopped", err, logging.String("addr", a.Config.MetricsAddr))
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// ExitCodeForStartup maps an error returned by New to an exit code. Flag
// parsing errors count as configuration errors.
func ExitCodeForStartup(err error) int {
	if code := apperrors.ExitCodeFor(err); code != apperrors.ExitErrorGeneric {
		return code
	}
	return apperrors.ExitErrorConfig
}
