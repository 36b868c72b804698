// Package supervise wraps the guard with reporting. The guard itself stays
// silent; the supervisor is where interceptions become frozen records,
// counters, samples, and (optionally) log lines.
package supervise

import (
	"log"
	"time"

	"github.com/RocketLaunchpad/faultguard/internal/report"
	"github.com/RocketLaunchpad/faultguard/pkg/guard"
)

// Supervisor runs units of work under the guard and records the outcome.
// It never swallows a fault and never retries: the error it returns is the
// same StructuredError the guard produced, untouched.
type Supervisor struct {
	metrics *report.Metrics
	recent  *report.RecentLog
	logger  *log.Logger
}

// New creates a supervisor reporting into the process-wide metrics and
// recent-fault log.
func New() *Supervisor {
	return NewWith(report.Global(), report.GlobalRecent())
}

// NewWith creates a supervisor reporting into the given sinks. Used by
// embedded servers and tests that need isolated counters.
func NewWith(metrics *report.Metrics, recent *report.RecentLog) *Supervisor {
	return &Supervisor{metrics: metrics, recent: recent}
}

// SetLogger enables a one-line summary per intercepted fault. The guard
// path itself never logs; nil (the default) keeps the supervisor silent
// too.
func (s *Supervisor) SetLogger(l *log.Logger) {
	s.logger = l
}

// Run executes an Action under supervision. A nil return means the work
// completed normally.
func (s *Supervisor) Run(work guard.Action) error {
	_, err := Result(s, func() struct{} {
		work()
		return struct{}{}
	})
	return err
}

// Result executes a Function under supervision. Free function rather than
// a method because Go methods cannot introduce type parameters.
//
// On an intercepted fault the record is frozen and counted before the
// error is re-surfaced; the caller sees exactly the failure the guard
// produced.
func Result[T any](s *Supervisor, work guard.Function[T]) (T, error) {
	s.metrics.IncrStarted()

	start := time.Now()
	out := guard.RunFunction(work)
	end := time.Now()

	if out.Ok() {
		s.metrics.RecordSuccess()
		return out.Value(), nil
	}

	rec := report.NewRecord(out.Err(), start, end)
	s.metrics.RecordFault(rec)
	s.recent.Record(rec)

	if s.logger != nil {
		s.logger.Printf("FAULT %s | category=%s | reason=%s | runtime=%.3fs",
			rec.ID, rec.Category, rec.Message, rec.Duration.Seconds())
	}

	var zero T
	return zero, out.Err()
}
