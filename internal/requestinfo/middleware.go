// internal/requestinfo/middleware.go
//
// HTTP middleware that enriches each request with *RequestInfo.
//
/*
Context
--------
Sits high in the chain, before attribution capture and the route handlers.
For every request it:

  1. Parses the User-Agent header.
  2. Extracts the first usable client IP from X-Forwarded-For or
     X-Real-Ip, falling back to `r.RemoteAddr`.
  3. Performs a GeoLite2 lookup when the city database is loaded.
  4. Stores a `*RequestInfo` value in `request.Context` under an
     unexported key, so the intake handler can build the buyer payload
     without reparsing headers.

Instrumentation
---------------
At debug level each invocation logs client IP, country, browser family,
device class, bot flag, and path.

Notes
-----
  • All look-ups are read-only, so the middleware is safe under heavy
    concurrency.
  • Oxford commas, two spaces after periods.
*/
package requestinfo

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

/*──────────────────────────── middleware ───────────────────────────────────*/

// Enrich wraps an http.Handler, attaches *RequestInfo, and forwards.
func Enrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)

		info := &RequestInfo{
			UA:        parseUA(r.UserAgent()),
			Geo:       lookupGeo(ip),
			URL:       r.URL, // pointer copy; safe for read-only access
			Timestamp: time.Now().UTC(),
		}

		zap.S().Debugw("request info",
			"ip", info.Geo.IP,
			"country", info.Geo.CountryISO,
			"browser", info.UA.Browser,
			"device", info.UA.Device,
			"bot", info.UA.IsBot,
			"path", r.URL.Path,
		)

		ctx := context.WithValue(r.Context(), ctxKey{}, info)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

/*──────────────────────────── client IP helper ─────────────────────────────*/

// clientIP extracts the first parseable address from X-Forwarded-For or
// X-Real-Ip, falling back to r.RemoteAddr ("ip:port").
func clientIP(r *http.Request) net.IP {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip
			}
		}
	}
	if xrip := r.Header.Get("X-Real-Ip"); xrip != "" {
		if ip := net.ParseIP(strings.TrimSpace(xrip)); ip != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return nil
}
