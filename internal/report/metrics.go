package report

// A fault is frozen exactly once, at interception time.
// Counters and samples are projections of frozen records.
// Never reinterpret, never recompute.

import (
	"sync"
	"sync/atomic"
)

// Metrics are boring counters only. No histograms, no percentiles, no
// interpretation. Every counter must be explainable by looking at a
// single record or success notification.
type Metrics struct {
	// Call lifecycle
	CallsStarted   atomic.Uint64 // incremented when a supervised call begins
	CallsCompleted atomic.Uint64 // incremented when a supervised call ends, either way

	// Outcomes
	CallsSucceeded    atomic.Uint64 // completed without an intercepted unwind
	FaultsIntercepted atomic.Uint64 // completed with an intercepted unwind

	mu         sync.RWMutex
	byCategory map[string]uint64
}

var globalMetrics = NewMetrics()

// Global returns the process-wide metrics instance.
func Global() *Metrics {
	return globalMetrics
}

// NewMetrics creates an empty metrics set. Tests and embedded supervisors
// use their own instance; everything else shares Global().
func NewMetrics() *Metrics {
	return &Metrics{byCategory: make(map[string]uint64)}
}

// IncrStarted increments the calls-started counter.
func (m *Metrics) IncrStarted() {
	m.CallsStarted.Add(1)
}

// RecordSuccess counts a supervised call that completed normally.
func (m *Metrics) RecordSuccess() {
	m.CallsCompleted.Add(1)
	m.CallsSucceeded.Add(1)
}

// RecordFault updates all fault counters from a single frozen Record.
// This is the ONLY way fault counters move.
func (m *Metrics) RecordFault(r *Record) {
	m.CallsCompleted.Add(1)
	m.FaultsIntercepted.Add(1)

	m.mu.Lock()
	m.byCategory[r.Category]++
	m.mu.Unlock()
}

// Snapshot returns current counter values.
func (m *Metrics) Snapshot() map[string]uint64 {
	return map[string]uint64{
		"calls_started":      m.CallsStarted.Load(),
		"calls_completed":    m.CallsCompleted.Load(),
		"calls_succeeded":    m.CallsSucceeded.Load(),
		"faults_intercepted": m.FaultsIntercepted.Load(),
	}
}

// ByCategory returns a copy of the per-category fault counts.
func (m *Metrics) ByCategory() map[string]uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string]uint64, len(m.byCategory))
	for k, v := range m.byCategory {
		out[k] = v
	}
	return out
}
