// Package config holds the application configuration and its resolution
// from command-line flags, PARBENCH_* environment variables and an optional
// YAML or JSON config file.
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/parbench/internal/algo"
	apperrors "github.com/agbru/parbench/internal/errors"
)

// EnvPrefix is prepended to every environment variable read by the
// configuration layer.
const EnvPrefix = "PARBENCH_"

// DefaultSizes are the dataset sizes benchmarked when none are configured.
var DefaultSizes = []int{1000, 10000, 100000}

// DefaultTimeout bounds a whole benchmark run.
const DefaultTimeout = 5 * time.Minute

// AppConfig aggregates the parameters of one parbench invocation.
type AppConfig struct {
	// Sizes are the dataset sizes benchmarked, in order.
	Sizes []int
	// Workers is the number of chunks used by the parallel search.
	Workers int
	// Budget is the initial worker budget of the parallel sort.
	Budget int
	// Threshold is the sequential cutover length of the parallel sort.
	// Zero means "resolve automatically" (calibration profile or default).
	Threshold int
	// Seed drives dataset generation. Zero picks a time-based seed.
	Seed uint64
	// Repeat is the number of timed runs per operation; the fastest is kept.
	Repeat int
	// Timeout bounds the whole run.
	Timeout time.Duration

	OutputFile         string
	ConfigFile         string
	CalibrationProfile string
	Calibrate          bool
	AutoCalibrate      bool
	TUI                bool
	Quiet              bool
	Verbose            bool
	NoColor            bool
	LogLevel           string
	MetricsAddr        string
}

// sizeList is a flag.Value parsing a comma-separated list of sizes.
type sizeList []int

func (s *sizeList) String() string {
	if s == nil {
		return ""
	}
	parts := make([]string, len(*s))
	for i, v := range *s {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (s *sizeList) Set(v string) error {
	sizes, err := ParseSizes(v)
	if err != nil {
		return err
	}
	*s = sizes
	return nil
}

// ParseSizes parses a comma-separated list of dataset sizes such as
// "1000,10000,100000". Underscores are accepted as digit separators.
func ParseSizes(v string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(strings.ReplaceAll(part, "_", ""))
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q", part)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes in %q", v)
	}
	return sizes, nil
}

// ParseConfig parses the command-line arguments and resolves the final
// configuration. Priority: CLI flags > environment variables > config file >
// defaults. A --help request returns flag.ErrHelp.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	config := AppConfig{Sizes: append([]int(nil), DefaultSizes...)}
	sizes := sizeList(config.Sizes)

	fs.Var(&sizes, "sizes", "Comma-separated dataset sizes to benchmark.")
	fs.IntVar(&config.Workers, "workers", algo.DefaultWorkers, "Number of workers for the parallel search.")
	fs.IntVar(&config.Workers, "w", algo.DefaultWorkers, "Number of workers (shorthand).")
	fs.IntVar(&config.Budget, "budget", algo.DefaultBudget, "Initial worker budget for the parallel sort.")
	fs.IntVar(&config.Budget, "b", algo.DefaultBudget, "Worker budget (shorthand).")
	fs.IntVar(&config.Threshold, "threshold", 0, "Sequential cutover length of the parallel sort (0 = auto).")
	fs.Uint64Var(&config.Seed, "seed", 0, "Seed for dataset generation (0 = time-based).")
	fs.IntVar(&config.Repeat, "repeat", 1, "Timed runs per operation; the fastest is reported.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum duration of the whole run.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the report to this file (.json, .yaml, .csv).")
	fs.StringVar(&config.OutputFile, "o", "", "Report file (shorthand).")
	fs.StringVar(&config.ConfigFile, "config", "", "Load settings from a YAML or JSON file.")
	fs.StringVar(&config.CalibrationProfile, "calibration-profile", "", "Path of the calibration profile.")
	fs.BoolVar(&config.Calibrate, "calibrate", false, "Calibrate the sort threshold and exit.")
	fs.BoolVar(&config.AutoCalibrate, "auto-calibrate", false, "Run a quick calibration before benchmarking.")
	fs.BoolVar(&config.TUI, "tui", false, "Show the interactive dashboard.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Only print the results table.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Print memory statistics and debug logs.")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.LogLevel, "log-level", "info", "Log level (debug, info, warn, error).")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address during the run.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	config.Sizes = sizes

	if config.ConfigFile != "" {
		fc, err := LoadFile(config.ConfigFile)
		if err != nil {
			return AppConfig{}, apperrors.NewConfigError("%v", err)
		}
		if err := fc.apply(&config, fs); err != nil {
			return AppConfig{}, apperrors.NewConfigError("%v", err)
		}
	}
	applyEnvOverrides(&config, fs)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errWriter, err)
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the preconditions of the configuration.
func (c AppConfig) Validate() error {
	if len(c.Sizes) == 0 {
		return apperrors.ValidationError{Field: "sizes", Message: "at least one size is required"}
	}
	for _, s := range c.Sizes {
		if s < 1 {
			return apperrors.ValidationError{Field: "sizes", Message: fmt.Sprintf("size %d must be positive", s)}
		}
	}
	if c.Workers < 1 {
		return apperrors.ValidationError{Field: "workers", Message: fmt.Sprintf("must be at least 1, got %d", c.Workers)}
	}
	if c.Budget < 1 {
		return apperrors.ValidationError{Field: "budget", Message: fmt.Sprintf("must be at least 1, got %d", c.Budget)}
	}
	if c.Threshold < 0 {
		return apperrors.ValidationError{Field: "threshold", Message: "must not be negative"}
	}
	if c.Repeat < 1 {
		return apperrors.ValidationError{Field: "repeat", Message: fmt.Sprintf("must be at least 1, got %d", c.Repeat)}
	}
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	}
	return nil
}
