// internal/middleware/middleware_test.go
//
// Unit-tests for the HTTP wrappers: security headers, HTTPS enforcement,
// and the panic boundary.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurity_SetsHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	Security(okHandler()).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	for _, h := range []string{
		"Strict-Transport-Security",
		"Content-Security-Policy",
		"X-Frame-Options",
		"X-Content-Type-Options",
		"Referrer-Policy",
		"Permissions-Policy",
	} {
		if rr.Header().Get(h) == "" {
			t.Errorf("%s not set", h)
		}
	}
	if !strings.Contains(rr.Header().Get("Content-Security-Policy"), "api.trustedform.com") {
		t.Error("CSP does not allow the certification vendor script")
	}
}

func TestForceHTTPS_Redirects(t *testing.T) {
	req := httptest.NewRequest("GET", "http://funnel.example/form?x=1", nil)
	rr := httptest.NewRecorder()

	ForceHTTPS(true, okHandler()).ServeHTTP(rr, req)

	if rr.Code != http.StatusPermanentRedirect {
		t.Fatalf("status = %d, want 308", rr.Code)
	}
	if loc := rr.Header().Get("Location"); loc != "https://funnel.example/form?x=1" {
		t.Fatalf("location = %q", loc)
	}
}

func TestForceHTTPS_SkipsLocalhostAndDisabled(t *testing.T) {
	req := httptest.NewRequest("GET", "http://localhost:8080/form", nil)
	rr := httptest.NewRecorder()
	ForceHTTPS(true, okHandler()).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("localhost redirected: %d", rr.Code)
	}

	req = httptest.NewRequest("GET", "http://funnel.example/form", nil)
	rr = httptest.NewRecorder()
	ForceHTTPS(false, okHandler()).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("disabled wrapper redirected: %d", rr.Code)
	}
}

func TestRecover_OpaqueJSON500(t *testing.T) {
	boom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("secret internal detail")
	})

	rr := httptest.NewRecorder()
	Recover(boom).ServeHTTP(rr, httptest.NewRequest("POST", "/submit-form", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if got := rr.Body.String(); got != `{"error":"Internal server error"}` {
		t.Fatalf("body = %q", got)
	}
	if strings.Contains(rr.Body.String(), "secret") {
		t.Fatal("panic detail leaked to client")
	}
}
