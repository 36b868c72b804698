// Package fault defines the raisable fault payload and its translated,
// safe-to-propagate form.
//
// A Fault signals an unrecoverable condition: it unwinds the stack and is
// only useful to a caller sitting behind a guard (see pkg/guard). Expected,
// validatable failures must use ordinary error returns and never this path.
package fault

import "fmt"

// Fault is the native unwind payload understood by the guard layer.
// Name identifies the fault kind, Reason is the human-readable explanation,
// Context carries optional key/value metadata.
type Fault struct {
	Name    string
	Reason  string
	Context map[string]any
}

// New creates a Fault with no context.
func New(name, reason string) Fault {
	return Fault{Name: name, Reason: reason}
}

// WithContext returns a copy of f carrying the given context entries.
// The map is copied so later mutation by the caller does not leak into
// the raised fault.
func (f Fault) WithContext(ctx map[string]any) Fault {
	f.Context = copyContext(ctx)
	return f
}

// Raise unwinds with f. It never returns.
func Raise(f Fault) {
	panic(f)
}

// Raisef unwinds with a Fault built from a format string. It never returns.
func Raisef(name, format string, args ...any) {
	Raise(Fault{Name: name, Reason: fmt.Sprintf(format, args...)})
}
