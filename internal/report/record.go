package report

// A fault is frozen exactly once, at interception time.
// Counters and samples are projections of frozen records.
// Never reinterpret, never recompute.

import (
	"time"

	"github.com/google/uuid"

	"github.com/RocketLaunchpad/faultguard/internal/sysinfo"
	"github.com/RocketLaunchpad/faultguard/pkg/fault"
)

// Record is immutable interception-level truth. Set once, never change.
// This is the source of truth for all counters and samples.
type Record struct {
	// Identity
	ID       string `json:"id"`
	Category string `json:"category"`

	// Payload (immutable)
	Message string         `json:"message"`
	Context map[string]any `json:"context"`

	// Timing of the guarded call (immutable)
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration_ns"`

	// Host at interception time (best effort)
	Host sysinfo.Snapshot `json:"host"`
}

// NewRecord freezes one intercepted fault. The StructuredError already
// owns independent copies of its data, so the record needs no further
// defensive copying.
func NewRecord(err *fault.StructuredError, start, end time.Time) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Category:  err.Category(),
		Message:   err.Message(),
		Context:   err.Context(),
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
		Host:      sysinfo.Capture(),
	}
}
