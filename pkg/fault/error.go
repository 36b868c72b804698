package fault

import "fmt"

// StructuredError is the translated, immutable form of an intercepted
// unwind. Set once, never change.
//
// It holds no reference to anything the unwound code owned, so it stays
// valid even though the state of the interrupted call is not guaranteed
// consistent anymore.
type StructuredError struct {
	category string
	message  string
	context  map[string]any
}

func newStructuredError(category, message string, ctx map[string]any) *StructuredError {
	return &StructuredError{
		category: category,
		message:  message,
		context:  copyContext(ctx),
	}
}

// Category identifies the fault kind. Never empty.
func (e *StructuredError) Category() string {
	return e.category
}

// Message is the human-readable reason. Empty string if the fault
// carried none.
func (e *StructuredError) Message() string {
	return e.message
}

// Context returns a copy of the fault's context metadata. The result is
// never nil; a fault without context yields an empty map. Mutating the
// returned map does not affect the error.
func (e *StructuredError) Context() map[string]any {
	return copyContext(e.context)
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.message == "" {
		return e.category
	}
	return fmt.Sprintf("%s: %s", e.category, e.message)
}

// copyContext shallow-copies a context map. The mapping itself is owned by
// the copy; values are retained as provided by the raiser.
func copyContext(ctx map[string]any) map[string]any {
	out := make(map[string]any, len(ctx))
	for k, v := range ctx {
		out[k] = v
	}
	return out
}
