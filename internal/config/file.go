package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileConfig is the layout of a parbench config file.
//
//	benchmark:
//	  sizes: [1000, 10000, 100000]
//	  workers: 4
//	  budget: 4
//	  threshold: 1000
//	  seed: 42
//	  repeat: 3
//	  timeout: 2m
//	output:
//	  file: report.yaml
//	  quiet: false
//	  verbose: false
//	log_level: info
//	metrics_addr: ":9090"
type FileConfig struct {
	Benchmark   BenchmarkSection `yaml:"benchmark" json:"benchmark"`
	Output      OutputSection    `yaml:"output" json:"output"`
	LogLevel    string           `yaml:"log_level" json:"log_level"`
	MetricsAddr string           `yaml:"metrics_addr" json:"metrics_addr"`
}

// BenchmarkSection holds the algorithm parameters of a config file.
type BenchmarkSection struct {
	Sizes     []int  `yaml:"sizes" json:"sizes"`
	Workers   int    `yaml:"workers" json:"workers"`
	Budget    int    `yaml:"budget" json:"budget"`
	Threshold int    `yaml:"threshold" json:"threshold"`
	Seed      uint64 `yaml:"seed" json:"seed"`
	Repeat    int    `yaml:"repeat" json:"repeat"`
	Timeout   string `yaml:"timeout" json:"timeout"`
}

// OutputSection holds the reporting parameters of a config file.
type OutputSection struct {
	File    string `yaml:"file" json:"file"`
	Quiet   bool   `yaml:"quiet" json:"quiet"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// LoadFile reads a config file, choosing the decoder from its extension.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	return &fc, nil
}

// apply copies every non-zero file setting into config unless the matching
// flag was set explicitly.
func (f *FileConfig) apply(config *AppConfig, fs *flag.FlagSet) error {
	given := explicitFlags(fs)
	b := f.Benchmark
	if len(b.Sizes) > 0 && !given["sizes"] {
		config.Sizes = append([]int(nil), b.Sizes...)
	}
	if b.Workers != 0 && !(given["workers"] || given["w"]) {
		config.Workers = b.Workers
	}
	if b.Budget != 0 && !(given["budget"] || given["b"]) {
		config.Budget = b.Budget
	}
	if b.Threshold != 0 && !given["threshold"] {
		config.Threshold = b.Threshold
	}
	if b.Seed != 0 && !given["seed"] {
		config.Seed = b.Seed
	}
	if b.Repeat != 0 && !given["repeat"] {
		config.Repeat = b.Repeat
	}
	if b.Timeout != "" && !given["timeout"] {
		d, err := time.ParseDuration(b.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout: %w", err)
		}
		config.Timeout = d
	}

	o := f.Output
	if o.File != "" && !(given["output"] || given["o"]) {
		config.OutputFile = o.File
	}
	if o.Quiet && !(given["quiet"] || given["q"]) {
		config.Quiet = true
	}
	if o.Verbose && !(given["verbose"] || given["v"]) {
		config.Verbose = true
	}
	if f.LogLevel != "" && !given["log-level"] {
		config.LogLevel = f.LogLevel
	}
	if f.MetricsAddr != "" && !given["metrics-addr"] {
		config.MetricsAddr = f.MetricsAddr
	}
	return nil
}
