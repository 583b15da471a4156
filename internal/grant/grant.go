// internal/grant/grant.go
//
// Short-lived access grants for the confirmation page.
//
// Context
//   After the external buyer reports a terminal status, the intake endpoint
//   mints a grant and sends it to the browser as an HTTP-only cookie.  The
//   thank-you page will only render while a verifiable grant is present.
//   We implement a *stateless* token so no server-side session store is
//   required:
//
//      base64url( nonce | expiresAt | HMAC_SHA256(secret, nonce+expiresAt) )
//
//   •  nonce – 16 random bytes.  Makes every grant unique.
//   •  expiresAt – milliseconds since Unix epoch, 8 bytes, big-endian.
//   •  HMAC – authenticity.  Verification is constant time and also checks
//      the embedded expiry, so a replayed cookie dies at the same moment
//      the browser would have discarded it.
//
// Workflow
//   •  Mint()          → Grant{Token, ExpiresAt} valid for TTL.
//   •  Verify(tok)     → false on bad encoding, bad signature, or expiry.
//   •  SetCookie / ReadCookie – transport helpers.
//
//------------------------------------------------------------------------------

package grant

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"net/http"
	"os"
	"sync"
	"time"
)

const (
	// CookieName carries the token to the gated page.
	CookieName = "thankyou_access"

	// TTL is the fixed grant lifetime; the cookie max-age matches it so
	// transport expiry and token expiry agree.
	TTL = 10 * time.Minute

	tokenBytes   = 16 + 8 + sha256.Size // nonce + expiry + sig
	secretEnvKey = "FUNNEL_GRANT_KEY"   // 32-byte base64url key suggested
)

var (
	secretOnce sync.Once
	secretKey  []byte
)

// Grant is one minted access token plus its absolute expiry.
type Grant struct {
	Token     string
	ExpiresAt time.Time
}

// Mint creates a grant expiring TTL from now.
func Mint() (Grant, error) {
	return mintAt(time.Now())
}

func mintAt(now time.Time) (Grant, error) {
	sec := fetchSecret()

	nonce := make([]byte, 16)
	if _, err := rand.Read(nonce); err != nil {
		return Grant{}, err
	}

	expiresAt := now.Add(TTL)
	exp := make([]byte, 8)
	binary.BigEndian.PutUint64(exp, uint64(expiresAt.UnixMilli()))

	mac := hmac.New(sha256.New, sec)
	mac.Write(nonce)
	mac.Write(exp)
	sig := mac.Sum(nil)

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, exp...)
	buf = append(buf, sig...)

	return Grant{
		Token:     base64.RawURLEncoding.EncodeToString(buf),
		ExpiresAt: expiresAt,
	}, nil
}

// Verify reports whether tok is authentic and unexpired.
func Verify(tok string) bool {
	return verifyAt(tok, time.Now())
}

func verifyAt(tok string, now time.Time) bool {
	sec := fetchSecret()

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}

	nonce := raw[:16]
	expBytes := raw[16:24]
	sig := raw[24:]

	expiresAt := time.UnixMilli(int64(binary.BigEndian.Uint64(expBytes)))
	if now.After(expiresAt) {
		return false
	}

	mac := hmac.New(sha256.New, sec)
	mac.Write(nonce)
	mac.Write(expBytes)
	want := mac.Sum(nil)

	return hmac.Equal(sig, want)
}

// SetCookie attaches g to the response.  The cookie is HTTP-only and
// SameSite=Strict; secure forces the Secure flag regardless of how the
// current hop was reached (set it when running behind TLS termination).
func SetCookie(w http.ResponseWriter, r *http.Request, g Grant, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    g.Token,
		Path:     "/",
		MaxAge:   int(TTL.Seconds()),
		HttpOnly: true,
		Secure:   secure || r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
}

// ReadCookie returns the raw token from r, or "" when absent.
func ReadCookie(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return ""
	}
	return c.Value
}

// fetchSecret returns the process-wide signing key, loading (or generating)
// it exactly once.  In production set FUNNEL_GRANT_KEY to a 32-byte
// base64url string; the random fallback invalidates outstanding grants on
// restart, which for a ten-minute token is acceptable.
func fetchSecret() []byte {
	secretOnce.Do(func() {
		if env := os.Getenv(secretEnvKey); env != "" {
			if b, err := base64.RawURLEncoding.DecodeString(env); err == nil && len(b) >= 32 {
				secretKey = b
				return
			}
		}
		secretKey = make([]byte, 32)
		_, _ = rand.Read(secretKey)
		os.Stderr.WriteString("[leadfunnel] WARNING: FUNNEL_GRANT_KEY not set – using random key\n")
	})
	return secretKey
}
