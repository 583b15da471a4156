// Package middleware holds small, composable HTTP wrappers.
package middleware

import (
	"net/http"
	"strings"
)

// ForceHTTPS wraps h.  When enabled and the request is plain HTTP from a
// non-localhost host, the wrapper issues a 308 Permanent Redirect to the
// HTTPS version of the same URL.  Otherwise it calls the next handler
// unchanged.  Paid-traffic links occasionally arrive as http://, and the
// lead buyer requires the landing page URL to be the canonical HTTPS one.
func ForceHTTPS(enabled bool, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !enabled || r.TLS != nil || stripPort(r.Host) == "localhost" {
			h.ServeHTTP(w, r)
			return
		}

		target := "https://" + r.Host + r.URL.RequestURI()
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
	})
}

// stripPort removes the :port suffix from Host when present.
func stripPort(h string) string {
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
