package report

// A fault is frozen exactly once, at interception time.
// Counters and samples are projections of frozen records.
// Never reinterpret, never recompute.

import (
	"sync"
	"time"
)

// Sample is the lightweight projection of a Record kept for debugging.
// Instant root cause without log diving.
type Sample struct {
	ID       string         `json:"id"`
	Category string         `json:"category"`
	Message  string         `json:"message"`
	Context  map[string]any `json:"context"`
	Duration float64        `json:"duration_seconds"`
	Time     time.Time      `json:"time"`
}

// RecentLog maintains a ring buffer of the last N intercepted faults.
type RecentLog struct {
	samples []Sample
	maxSize int
	mu      sync.RWMutex
}

var globalRecent = NewRecentLog(50) // keep last 50 faults

// GlobalRecent returns the process-wide recent-fault log.
func GlobalRecent() *RecentLog {
	return globalRecent
}

// NewRecentLog creates a recent-fault log with a fixed capacity.
func NewRecentLog(maxSize int) *RecentLog {
	if maxSize < 1 {
		maxSize = 1
	}
	return &RecentLog{
		samples: make([]Sample, 0, maxSize),
		maxSize: maxSize,
	}
}

// Record adds a sample projected from a frozen Record. Ring buffer: when
// full, the oldest sample is dropped.
func (l *RecentLog) Record(r *Record) {
	sample := Sample{
		ID:       r.ID,
		Category: r.Category,
		Message:  r.Message,
		Context:  r.Context,
		Duration: r.Duration.Seconds(),
		Time:     r.EndTime,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.samples) >= l.maxSize {
		l.samples = l.samples[1:]
	}
	l.samples = append(l.samples, sample)
}

// GetRecent returns up to n samples, newest last.
func (l *RecentLog) GetRecent(n int) []Sample {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > len(l.samples) {
		n = len(l.samples)
	}

	out := make([]Sample, n)
	copy(out, l.samples[len(l.samples)-n:])
	return out
}

// Len returns the number of stored samples.
func (l *RecentLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.samples)
}
