package format

import (
	"sync"
	"time"
)

// Progress tracks completed steps out of a known total and estimates the
// remaining time from the average step duration so far.
type Progress struct {
	mu    sync.Mutex
	total int
	done  int
	start time.Time
	now   func() time.Time
}

// NewProgress creates a tracker for total steps. A total below 1 is
// treated as 1.
func NewProgress(total int) *Progress {
	return newProgressWithClock(total, time.Now)
}

func newProgressWithClock(total int, now func() time.Time) *Progress {
	if total < 1 {
		total = 1
	}
	return &Progress{total: total, start: now(), now: now}
}

// Advance records one finished step and returns the completed fraction and
// the estimated time remaining.
func (p *Progress) Advance() (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done < p.total {
		p.done++
	}
	return p.snapshotLocked()
}

// Snapshot returns the current fraction and ETA without advancing.
func (p *Progress) Snapshot() (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

func (p *Progress) snapshotLocked() (float64, time.Duration) {
	fraction := float64(p.done) / float64(p.total)
	if p.done == 0 {
		return 0, 0
	}
	elapsed := p.now().Sub(p.start)
	perStep := elapsed / time.Duration(p.done)
	return fraction, perStep * time.Duration(p.total-p.done)
}

// FormatETA renders an ETA for progress lines.
func FormatETA(d time.Duration) string {
	if d <= 0 {
		return "--"
	}
	return d.Round(time.Second).String()
}
