// Package sysmon provides system-wide CPU and memory usage sampling and a
// description of the host a benchmark runs on.
package sysmon

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Stats holds a single snapshot of system-wide resource usage.
type Stats struct {
	CPUPercent float64 // 0.0 .. 100.0
	MemPercent float64 // 0.0 .. 100.0
}

// Host describes the machine, printed in report headers so that timings
// from different machines are not compared blindly.
type Host struct {
	CPUModel     string
	LogicalCPUs  int
	PhysicalCPUs int
	TotalMemory  uint64
	GOOS         string
	GOARCH       string
}

// Sample collects a single system-wide CPU and memory snapshot.
// CPU uses interval=0 (delta since last call). Returns zero values on error.
func Sample() Stats {
	var s Stats
	cpuPcts, err := cpu.Percent(0, false)
	if err == nil && len(cpuPcts) > 0 {
		s.CPUPercent = cpuPcts[0]
	}
	vmem, err := mem.VirtualMemory()
	if err == nil && vmem != nil {
		s.MemPercent = vmem.UsedPercent
	}
	return s
}

// DescribeHost gathers static host information. Fields gopsutil cannot read
// fall back to what the Go runtime knows.
func DescribeHost() Host {
	h := Host{
		LogicalCPUs:  runtime.NumCPU(),
		PhysicalCPUs: runtime.NumCPU(),
		GOOS:         runtime.GOOS,
		GOARCH:       runtime.GOARCH,
	}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		h.LogicalCPUs = n
	}
	if n, err := cpu.Counts(false); err == nil && n > 0 {
		h.PhysicalCPUs = n
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
	}
	if h.CPUModel == "" {
		h.CPUModel = "unknown"
	}
	if vmem, err := mem.VirtualMemory(); err == nil && vmem != nil {
		h.TotalMemory = vmem.Total
	}
	return h
}
