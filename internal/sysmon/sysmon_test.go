package sysmon

import "testing"

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestSample_MemPercentNonZero(t *testing.T) {
	s := Sample()
	if s.MemPercent == 0 {
		t.Error("expected non-zero MemPercent on a running system")
	}
}

func TestDescribeHost(t *testing.T) {
	h := DescribeHost()
	if h.LogicalCPUs < 1 {
		t.Errorf("LogicalCPUs = %d, want >= 1", h.LogicalCPUs)
	}
	if h.PhysicalCPUs < 1 {
		t.Errorf("PhysicalCPUs = %d, want >= 1", h.PhysicalCPUs)
	}
	if h.CPUModel == "" {
		t.Error("CPUModel should never be empty")
	}
	if h.GOOS == "" || h.GOARCH == "" {
		t.Errorf("GOOS/GOARCH not set: %q/%q", h.GOOS, h.GOARCH)
	}
}
