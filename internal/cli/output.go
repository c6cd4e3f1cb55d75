// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
//   - Write* functions write data to files on the filesystem.

package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/agbru/parbench/internal/benchmark"
	"github.com/agbru/parbench/internal/format"
	"github.com/agbru/parbench/internal/sysmon"
)

// reportRow is one line of a saved report. The speedup is kept as text
// because "∞x" has no JSON number representation.
type reportRow struct {
	Size      int     `json:"size" yaml:"size"`
	Algorithm string  `json:"algorithm" yaml:"algorithm"`
	Operation string  `json:"operation" yaml:"operation"`
	Seconds   float64 `json:"seconds" yaml:"seconds"`
	Speedup   string  `json:"speedup" yaml:"speedup"`
}

type reportHost struct {
	CPUModel    string `json:"cpu_model" yaml:"cpu_model"`
	LogicalCPUs int    `json:"logical_cpus" yaml:"logical_cpus"`
	TotalMemory uint64 `json:"total_memory" yaml:"total_memory"`
	GOOS        string `json:"goos" yaml:"goos"`
	GOARCH      string `json:"goarch" yaml:"goarch"`
}

type reportFile struct {
	Seed           uint64      `json:"seed" yaml:"seed"`
	Workers        int         `json:"workers" yaml:"workers"`
	Budget         int         `json:"budget" yaml:"budget"`
	Threshold      int         `json:"threshold" yaml:"threshold"`
	Repeat         int         `json:"repeat" yaml:"repeat"`
	ElapsedSeconds float64     `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	Host           reportHost  `json:"host" yaml:"host"`
	Results        []reportRow `json:"results" yaml:"results"`
}

func newReportFile(report benchmark.Report, host sysmon.Host) reportFile {
	rf := reportFile{
		Seed:           report.Seed,
		Workers:        report.Workers,
		Budget:         report.Budget,
		Threshold:      report.Threshold,
		Repeat:         report.Repeat,
		ElapsedSeconds: report.Elapsed.Seconds(),
		Host: reportHost{
			CPUModel:    host.CPUModel,
			LogicalCPUs: host.LogicalCPUs,
			TotalMemory: host.TotalMemory,
			GOOS:        host.GOOS,
			GOARCH:      host.GOARCH,
		},
	}
	for _, sr := range report.Sizes {
		for _, res := range sr.Results {
			rf.Results = append(rf.Results, reportRow{
				Size:      res.Size,
				Algorithm: res.Operation.Label(),
				Operation: string(res.Operation),
				Seconds:   res.Duration.Seconds(),
				Speedup:   format.FormatSpeedup(res.Speedup),
			})
		}
	}
	return rf
}

// WriteReport saves the report to path. The format follows the extension:
// .json, .yaml/.yml or .csv. An empty path writes nothing.
func WriteReport(report benchmark.Report, host sysmon.Host, path string) error {
	if path == "" {
		return nil
	}
	var encode func(io.Writer, reportFile) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		encode = encodeJSON
	case ".yaml", ".yml":
		encode = encodeYAML
	case ".csv":
		encode = encodeCSV
	default:
		return fmt.Errorf("unsupported report format %q (use .json, .yaml or .csv)", ext)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := encode(f, newReportFile(report, host)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	return f.Close()
}

func encodeJSON(w io.Writer, rf reportFile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rf)
}

func encodeYAML(w io.Writer, rf reportFile) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rf); err != nil {
		return err
	}
	return enc.Close()
}

func encodeCSV(w io.Writer, rf reportFile) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"size", "algorithm", "operation", "seconds", "speedup"}); err != nil {
		return err
	}
	for _, row := range rf.Results {
		record := []string{
			strconv.Itoa(row.Size),
			row.Algorithm,
			row.Operation,
			strconv.FormatFloat(row.Seconds, 'f', 9, 64),
			row.Speedup,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
