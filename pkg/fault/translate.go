package fault

import (
	"fmt"
	"runtime"
)

// Categories assigned to payloads that are not Faults. A raised Fault
// keeps its own Name as the category.
const (
	// CategoryFault is the fallback for a Fault raised with an empty Name.
	CategoryFault = "Fault"
	// CategoryRuntimeError covers runtime faults (nil dereference, index
	// out of range, integer divide by zero, ...).
	CategoryRuntimeError = "RuntimeError"
	// CategoryError covers ordinary error values used as panic payloads.
	CategoryError = "Error"
	// CategoryPanic covers everything else.
	CategoryPanic = "Panic"
)

// Translate converts a recovered unwind payload into a StructuredError.
// It is total over well-formed payloads and substitutes sentinels for
// missing fields: empty string for a missing reason, empty map for a
// missing context.
//
// Translate performs no interception of its own. If reading the payload
// unwinds again (an Error method that panics, a Stringer that panics),
// that secondary fault propagates uncaught. Recovery semantics for a
// fault-during-translation are deliberately not defined.
func Translate(recovered any) *StructuredError {
	switch v := recovered.(type) {
	case Fault:
		return fromFault(v)
	case *Fault:
		if v == nil {
			return newStructuredError(CategoryFault, "", nil)
		}
		return fromFault(*v)
	case runtime.Error:
		return newStructuredError(CategoryRuntimeError, v.Error(), nil)
	case error:
		return newStructuredError(CategoryError, v.Error(), nil)
	default:
		return newStructuredError(CategoryPanic, fmt.Sprintf("%v", v), nil)
	}
}

func fromFault(f Fault) *StructuredError {
	category := f.Name
	if category == "" {
		category = CategoryFault
	}
	return newStructuredError(category, f.Reason, f.Context)
}
