// internal/tracking/tracking.go
//
// First-touch attribution capture.
//
// Context
//   Paid traffic lands with utm_source / utm_id / utm_s1 query parameters.
//   Those values are opaque pass-through fields for the lead buyer, carried
//   as subid1/2/3 cookies with a 30-day lifetime.  Attribution is
//   first-touch: once a subid cookie exists, later visits with different
//   parameters do not overwrite it.
//
// Workflow
//   •  Capture – middleware, sits early in the chain on every page route.
//   •  Read    – returns the current triple for the intake payload.
//
//------------------------------------------------------------------------------

package tracking

import (
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Cookie names consumed by the intake endpoint and the buyer payload.
const (
	CookieSubID1 = "subid1"
	CookieSubID2 = "subid2"
	CookieSubID3 = "subid3"
)

// maxAge keeps attribution across the typical consideration window.
const maxAge = 30 * 24 * time.Hour

// paramToCookie maps inbound query parameters to attribution cookies.
var paramToCookie = map[string]string{
	"utm_source": CookieSubID1,
	"utm_id":     CookieSubID2,
	"utm_s1":     CookieSubID3,
}

// IDs is the attribution triple; empty strings mean "absent".
type IDs struct {
	SubID1 string
	SubID2 string
	SubID3 string
}

// Capture wraps next and persists attribution parameters into cookies.
func Capture(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		for param, cookie := range paramToCookie {
			v := q.Get(param)
			if v == "" {
				continue
			}
			// First touch wins.
			if c, err := r.Cookie(cookie); err == nil && c.Value != "" {
				continue
			}
			http.SetCookie(w, &http.Cookie{
				Name:     cookie,
				Value:    url.QueryEscape(v),
				Path:     "/",
				MaxAge:   int(maxAge.Seconds()),
				Secure:   r.TLS != nil,
				SameSite: http.SameSiteLaxMode,
			})
			zap.S().Debugw("attribution captured", "cookie", cookie, "param", param)
		}
		next.ServeHTTP(w, r)
	})
}

// Read returns the attribution triple from the request cookies.
func Read(r *http.Request) IDs {
	return IDs{
		SubID1: cookieValue(r, CookieSubID1),
		SubID2: cookieValue(r, CookieSubID2),
		SubID3: cookieValue(r, CookieSubID3),
	}
}

func cookieValue(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	if v, err := url.QueryUnescape(c.Value); err == nil {
		return v
	}
	return c.Value
}
