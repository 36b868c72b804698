// Package middleware provides HTTP middleware around the guard layer.
package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/RocketLaunchpad/faultguard/pkg/fault"
	"github.com/RocketLaunchpad/faultguard/pkg/supervise"
)

// FaultResponse is the JSON body written when a handler unwinds.
type FaultResponse struct {
	Category string         `json:"category"`
	Message  string         `json:"message"`
	Context  map[string]any `json:"context"`
}

// Recovery converts handler panics into structured 500 responses instead
// of dead connections. Each request runs under the supervisor, so every
// interception is also recorded and counted.
//
// Best effort only: if the handler already wrote response headers before
// unwinding, the status and body cannot be unwritten. State the handler
// left half-done stays half-done; the middleware surfaces the fault, it
// does not roll anything back.
func Recovery(s *supervise.Supervisor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := s.Run(func() {
				next.ServeHTTP(w, r)
			})
			if err == nil {
				return
			}

			serr, ok := err.(*fault.StructuredError)
			if !ok {
				// Supervisor only returns StructuredErrors; keep a plain
				// fallback anyway rather than panic in the error path.
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(FaultResponse{
				Category: serr.Category(),
				Message:  serr.Message(),
				Context:  serr.Context(),
			})
		})
	}
}
