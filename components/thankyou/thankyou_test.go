// components/thankyou/thankyou_test.go
package thankyou

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/BrightPathCover/leadfunnel/internal/grant"
)

func getThankyou(t *testing.T, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/thankyou", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	r := chi.NewRouter()
	(&Comp{}).Routes(r)
	r.ServeHTTP(rec, req)
	return rec
}

func TestNoCookieRedirectsHome(t *testing.T) {
	rec := getThankyou(t, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q", loc)
	}
}

func TestForgedCookieRedirectsHome(t *testing.T) {
	rec := getThankyou(t, &http.Cookie{Name: grant.CookieName, Value: "not-a-real-token"})
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestValidGrantRendersConfirmation(t *testing.T) {
	g, err := grant.Mint()
	if err != nil {
		t.Fatal(err)
	}
	rec := getThankyou(t, &http.Cookie{Name: grant.CookieName, Value: g.Token})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Thank you") {
		t.Error("confirmation content missing")
	}
}
