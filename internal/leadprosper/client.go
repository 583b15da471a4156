// internal/leadprosper/client.go
//
// LeadProsper buyer client.
//
// Context
//   The funnel sells each submitted application to one external buyer via
//   a single JSON POST.  The buyer's contract is lenient in an unusual
//   way: a response body that fails to parse as JSON still means the lead
//   was taken, so parse failure defaults to ACCEPTED rather than erroring.
//   Only a transport-level failure surfaces as an error; the caller turns
//   that into its generic 500.
//
// Workflow
//   •  New(cfg)            – one client per process; no retries by design.
//   •  Submit(ctx, lead)   – one in-flight request, returns the buyer
//      Status.
//   •  Status.Terminal()   – the policy switch for which statuses mint an
//      access grant (see DESIGN.md on ERROR).
//
//------------------------------------------------------------------------------

package leadprosper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/BrightPathCover/leadfunnel/internal/config"
)

// Status is the buyer's verdict on one lead.
type Status string

const (
	StatusAccepted   Status = "ACCEPTED"
	StatusDuplicated Status = "DUPLICATED"
	StatusError      Status = "ERROR"
)

// Terminal reports whether the lead was consumed by the buyer.  ERROR is
// intentionally terminal: the buyer has taken (and will not re-take) the
// lead, so the funnel still shows the confirmation page.
func (s Status) Terminal() bool {
	switch s {
	case StatusAccepted, StatusDuplicated, StatusError:
		return true
	}
	return false
}

// Lead is the enriched payload posted to the buyer.  Field names follow
// the buyer's wire contract exactly.
type Lead struct {
	CampaignID string `json:"lp_campaign_id"`
	SupplierID string `json:"lp_supplier_id"`
	Key        string `json:"lp_key"`
	SubID1     string `json:"lp_subid1,omitempty"`
	SubID2     string `json:"lp_subid2,omitempty"`
	SubID3     string `json:"lp_subid3,omitempty"`

	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
	ZipCode     string `json:"zip_code"`
	PhoneNumber string `json:"phone_number"`

	IPAddress          string `json:"ip_address"`
	UserAgent          string `json:"user_agent"`
	LandingPageURL     string `json:"landing_page_url"`
	TrustedFormCertURL string `json:"trustedform_cert_url"`
}

// Redacted returns a copy safe for logging.
func (l Lead) Redacted() Lead {
	if l.Key != "" {
		l.Key = "[REDACTED]"
	}
	return l
}

// Client posts leads to the configured buyer endpoint.
type Client struct {
	url   string
	httpc *http.Client
}

// New builds a Client for the buyer block.  Callers must check
// cfg.Configured() first; New does not.
func New(cfg config.Buyer) *Client {
	return &Client{
		url: cfg.URL,
		// One attempt, bounded well under the server write timeout.
		httpc: &http.Client{Timeout: 10 * time.Second},
	}
}

// Submit posts one lead and interprets the buyer's answer.  The returned
// error is transport-level only; any readable response maps to a Status.
func (c *Client) Submit(ctx context.Context, lead Lead) (Status, error) {
	body, err := json.Marshal(lead)
	if err != nil {
		return "", fmt.Errorf("marshal lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build buyer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("post lead: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read buyer response: %w", err)
	}

	var parsed struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		// Lenient contract: a malformed body still means the lead was taken.
		zap.S().Debugw("buyer response not JSON, assuming accepted",
			"http_status", resp.StatusCode, "body_len", len(raw))
		return StatusAccepted, nil
	}

	// A parseable body with no status field is NOT the lenient case; the
	// empty status flows to the caller's failure branch.
	return Status(parsed.Status), nil
}
