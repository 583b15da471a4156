// internal/middleware/recover.go
//
// Panic boundary for the HTTP surface.
//
// Context
//   Nothing may throw past the endpoint boundary: an unhandled fault is
//   logged with its stack and reported to the client as an opaque JSON 500.
//   No stack or internal detail ever leaves the process.
//

package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// Recover converts a downstream panic into a generic 500 response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				zap.S().Errorw("handler panic",
					"path", r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
