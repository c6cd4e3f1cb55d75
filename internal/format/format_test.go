package format

import (
	"math"
	"testing"
	"time"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{42 * time.Millisecond, "42ms"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.in); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSpeedup(t *testing.T) {
	t.Parallel()
	if got := Speedup(2*time.Second, time.Second); got != 2 {
		t.Errorf("Speedup = %v, want 2", got)
	}
	if got := Speedup(time.Second, 0); !math.IsInf(got, 1) {
		t.Errorf("Speedup with zero parallel time = %v, want +Inf", got)
	}
}

func TestFormatSpeedup(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1.00x"},
		{2.314, "2.31x"},
		{0.5, "0.50x"},
		{math.Inf(1), "∞x"},
	}
	for _, tt := range tests {
		if got := FormatSpeedup(tt.in); got != tt.want {
			t.Errorf("FormatSpeedup(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	t.Parallel()
	if got := FormatSeconds(1234567 * time.Microsecond); got != "1.234567" {
		t.Errorf("FormatSeconds = %q", got)
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 << 20, "3.0 MiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProgress(t *testing.T) {
	t.Parallel()
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }
	p := newProgressWithClock(4, clock)

	if f, eta := p.Snapshot(); f != 0 || eta != 0 {
		t.Fatalf("initial snapshot = (%v, %v), want (0, 0)", f, eta)
	}

	now = now.Add(2 * time.Second)
	f, eta := p.Advance()
	if f != 0.25 {
		t.Errorf("fraction = %v, want 0.25", f)
	}
	if eta != 6*time.Second {
		t.Errorf("eta = %v, want 6s", eta)
	}

	for range 5 {
		f, eta = p.Advance()
	}
	if f != 1 || eta != 0 {
		t.Errorf("after overshoot = (%v, %v), want (1, 0)", f, eta)
	}
}

func TestNewProgressClampsTotal(t *testing.T) {
	t.Parallel()
	p := NewProgress(0)
	if f, _ := p.Advance(); f != 1 {
		t.Errorf("fraction = %v, want 1", f)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	if got := FormatETA(0); got != "--" {
		t.Errorf("FormatETA(0) = %q", got)
	}
	if got := FormatETA(1400 * time.Millisecond); got != "1s" {
		t.Errorf("FormatETA(1.4s) = %q", got)
	}
}
