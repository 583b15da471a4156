// components/lead/lead.go
//
// Lead Component – the intake form and the submission endpoint.
//
// Context
//   GET  /            renders the application form (ZIP pre-filled from
//                     the visitor's last session where available).
//   POST /submit-form validates presence of the seven required fields,
//                     enriches the payload with tracking identifiers and
//                     request metadata, sells the lead to the configured
//                     buyer, and on any terminal buyer status mints the
//                     access grant that unlocks /thankyou.
//
// Notes
//   •  Buyer credentials come from process configuration only; request
//      input can never influence them.
//   •  Handlers never leak internals: the only 500 body is a generic
//      error object.
//
//------------------------------------------------------------------------------

package lead

import (
	"context"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BrightPathCover/leadfunnel/internal/component"
	"github.com/BrightPathCover/leadfunnel/internal/config"
	"github.com/BrightPathCover/leadfunnel/internal/grant"
	"github.com/BrightPathCover/leadfunnel/internal/leadprosper"
	"github.com/BrightPathCover/leadfunnel/internal/metrics"
	"github.com/BrightPathCover/leadfunnel/internal/requestinfo"
	"github.com/BrightPathCover/leadfunnel/internal/tracking"
	"github.com/BrightPathCover/leadfunnel/internal/validate"
	"github.com/BrightPathCover/leadfunnel/internal/view"
)

//go:embed static/*
var staticFS embed.FS

// compile-time assertion
var _ component.Component = (*Comp)(nil)

// buyerClient is what the handler needs from the LeadProsper client;
// narrowed for tests.
type buyerClient interface {
	Submit(ctx context.Context, l leadprosper.Lead) (leadprosper.Status, error)
}

// Comp implements component.Component.
type Comp struct {
	cfg      func() *config.Config
	newBuyer func(config.Buyer) buyerClient
	secure   func(cfg *config.Config) bool
}

// New builds the component with its production wiring.
func New() *Comp {
	return &Comp{
		cfg: config.Get,
		newBuyer: func(b config.Buyer) buyerClient {
			return leadprosper.New(b)
		},
		secure: func(cfg *config.Config) bool { return cfg.HTTP.SecureCookies },
	}
}

func (c *Comp) Name() string { return "lead" }

func (c *Comp) Routes(r chi.Router) {
	r.Get("/", c.getForm)
	r.Post("/submit-form", c.postSubmit)
	r.Handle("/static/*", http.StripPrefix("/static/",
		http.FileServer(http.FS(staticDir()))))
}

/*──────────────────────────── GET / ────────────────────────────*/

type formData struct {
	FirstName string
	LastName  string
	Gender    string
	ZipCode   string
}

func (c *Comp) getForm(w http.ResponseWriter, r *http.Request) {
	if err := view.Render(w, r, "form", formData{}, view.CacheDefault); err != nil {
		zap.S().Errorw("render form", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal server error"})
	}
}

/*──────────────────────── POST /submit-form ────────────────────────*/

// submission is the inbound JSON contract.
type submission struct {
	FirstName          string `json:"firstName"`
	LastName           string `json:"lastName"`
	Gender             string `json:"gender"`
	DateOfBirth        string `json:"dateOfBirth"`
	ZipCode            string `json:"zipCode"`
	PhoneNumber        string `json:"phoneNumber"`
	Email              string `json:"email"`
	TrustedFormCertURL string `json:"trustedformCertUrl"`
}

// missingFields enumerates absent required fields in form order.  Phone
// counts only the digits that survive stripping.
func (s *submission) missingFields() []string {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check("firstName", s.FirstName)
	check("lastName", s.LastName)
	check("gender", s.Gender)
	check("dateOfBirth", s.DateOfBirth)
	check("zipCode", s.ZipCode)
	check("phoneNumber", validate.Digits(s.PhoneNumber))
	check("email", s.Email)
	return missing
}

func (c *Comp) postSubmit(w http.ResponseWriter, r *http.Request) {
	metrics.SubmissionsTotal.Inc()

	var sub submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid request body"})
		return
	}

	if missing := sub.missingFields(); len(missing) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":         "All fields are required",
			"missingFields": missing,
		})
		return
	}

	cfg := c.cfg()
	ids := tracking.Read(r)
	ri := requestinfo.FromContext(r.Context())

	lead := leadprosper.Lead{
		CampaignID: cfg.Buyer.CampaignID,
		SupplierID: cfg.Buyer.SupplierID,
		Key:        cfg.Buyer.APIKey,
		SubID1:     ids.SubID1,
		SubID2:     ids.SubID2,
		SubID3:     ids.SubID3,

		FirstName:   strings.TrimSpace(sub.FirstName),
		LastName:    strings.TrimSpace(sub.LastName),
		Email:       strings.TrimSpace(sub.Email),
		Gender:      sub.Gender,
		DateOfBirth: sub.DateOfBirth,
		ZipCode:     strings.TrimSpace(sub.ZipCode),
		PhoneNumber: validate.Digits(sub.PhoneNumber),

		IPAddress:          ri.ClientIP(),
		UserAgent:          r.UserAgent(),
		LandingPageURL:     r.Referer(),
		TrustedFormCertURL: sub.TrustedFormCertURL,
	}

	// Incomplete buyer setup degrades to success so local environments
	// can exercise the whole funnel without credentials.
	if !cfg.Buyer.Configured() {
		zap.S().Infow("buyer not configured, skipping outbound call")
		c.succeed(w, r, cfg, "SKIPPED")
		return
	}

	status, err := c.newBuyer(cfg.Buyer).Submit(r.Context(), lead)
	if err != nil {
		metrics.SubmissionErrorsTotal.Inc()
		zap.S().Errorw("buyer call failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal server error"})
		return
	}
	metrics.BuyerStatusTotal.WithLabelValues(string(status)).Inc()

	if !status.Terminal() {
		zap.S().Warnw("lead not taken", "status", status)
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success":           false,
			"error":             "Lead submission failed",
			"leadProsperStatus": status,
		})
		return
	}

	zap.S().Infow("lead sold", "status", status, "lead", lead.Redacted())
	c.succeed(w, r, cfg, string(status))
}

// succeed mints the access grant, sets its cookie, and writes the 200
// body the client uses for its own bookkeeping.
func (c *Comp) succeed(w http.ResponseWriter, r *http.Request, cfg *config.Config, status string) {
	g, err := grant.Mint()
	if err != nil {
		metrics.SubmissionErrorsTotal.Inc()
		zap.S().Errorw("mint grant", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal server error"})
		return
	}
	metrics.GrantsMintedTotal.Inc()
	grant.SetCookie(w, r, g, c.secure(cfg))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"message":           "Lead submitted successfully",
		"leadProsperStatus": status,
		"accessToken":       g.Token,
		"expiresAt":         g.ExpiresAt.UnixMilli(),
	})
}

/*──────────────────────────── helpers ────────────────────────────*/

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.S().Errorw("write response", "error", err)
	}
}

// staticDir strips the embed prefix so assets serve at /static/<file>.
func staticDir() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Register component at package init.
func init() {
	component.Register(New())
}
