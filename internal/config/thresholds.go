package config

import "github.com/agbru/parbench/internal/algo"

// Threshold resolution chain (highest priority first):
//   1. CLI flag --threshold
//   2. Environment variable PARBENCH_THRESHOLD
//   3. Config file benchmark.threshold
//   4. Cached calibration profile (~/.parbench_calibration.json)
//   5. algo.DefaultSortThreshold (this file)

// ApplyDefaultThreshold fills a zero threshold with the package default. It
// is called once the calibration profile had its chance to supply a value.
func ApplyDefaultThreshold(cfg AppConfig) AppConfig {
	if cfg.Threshold == 0 {
		cfg.Threshold = algo.DefaultSortThreshold
	}
	return cfg
}

// AlgoOptions translates the configuration into options for the parallel
// kernels.
func (c AppConfig) AlgoOptions(extra ...algo.Option) []algo.Option {
	opts := []algo.Option{algo.WithThreshold(c.Threshold)}
	return append(opts, extra...)
}
