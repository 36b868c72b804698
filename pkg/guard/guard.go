// Package guard runs caller-supplied units of work under a capture scope
// and converts an intercepted unwind into a fault.StructuredError.
//
// The guard does exactly one thing on the abnormal path: it translates the
// unwind into an error value, once. It does not run cleanup for the
// interrupted work, does not restore invariants the unwound code left
// broken, does not retry, and does not log. Deferred functions inside the
// work run as the runtime already guarantees; everything else the work left
// half-done stays half-done. Callers must treat a failure as terminal for
// the surrounding operation, not as something to recover from in detail.
package guard

import "github.com/RocketLaunchpad/faultguard/pkg/fault"

// Action is a unit of work with side effects and no produced value.
// Owned only for the duration of one invocation.
type Action func()

// Function is a unit of work producing a value of type T.
// Owned only for the duration of one invocation.
type Function[T any] func() T

// Outcome is the invocation result. Exactly one side is populated:
// either the success value or the intercepted fault.
type Outcome[T any] struct {
	value T
	err   *fault.StructuredError
}

// Ok reports whether the invocation completed without an intercepted
// unwind.
func (o Outcome[T]) Ok() bool {
	return o.err == nil
}

// Value returns the produced value. Zero value of T on failure.
func (o Outcome[T]) Value() T {
	return o.value
}

// Err returns the intercepted fault, or nil on success.
func (o Outcome[T]) Err() *fault.StructuredError {
	return o.err
}

func success[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

func failure[T any](err *fault.StructuredError) Outcome[T] {
	return Outcome[T]{err: err}
}

// RunAction executes work on the calling goroutine, blocking until it
// completes or unwinds. A completed Action always yields success,
// regardless of the side effects it performed; an intercepted unwind
// yields failure carrying the translated fault.
func RunAction(work Action) Outcome[struct{}] {
	return RunFunction(func() struct{} {
		work()
		return struct{}{}
	})
}

// RunFunction executes work on the calling goroutine under a capture
// scope. On normal completion the produced value is returned as success.
// If work unwinds, the first intercepted payload is translated inside the
// scope and returned as failure; no retry is attempted.
//
// A second unwind raised while translating the first is not intercepted
// again: it propagates as an ordinary uncaught panic.
func RunFunction[T any](work Function[T]) (out Outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			out = failure[T](fault.Translate(r))
		}
	}()
	out = success(work())
	return out
}

// Run executes an Action and surfaces an intercepted unwind through the
// ordinary error channel. A nil return means work completed normally.
// The returned error, when non-nil, is always a *fault.StructuredError.
func Run(work Action) error {
	if out := RunAction(work); !out.Ok() {
		return out.Err()
	}
	return nil
}

// Result executes a Function and returns its produced value. On an
// intercepted unwind it returns the zero value of T and the translated
// fault; a partially constructed value is never surfaced.
func Result[T any](work Function[T]) (T, error) {
	out := RunFunction(work)
	if !out.Ok() {
		var zero T
		return zero, out.Err()
	}
	return out.Value(), nil
}
