// components/thankyou/thankyou.go
//
// Thankyou Component – the gated confirmation page.
//
// Context
//   The page only means something right after a sold lead, so it is
//   gated on the access grant minted by the submission endpoint.  An
//   absent, expired, or forged grant bounces the visitor back to the
//   form; the grant itself is verified, not just present, so validity
//   never depends on the browser honoring cookie max-age.
//
//------------------------------------------------------------------------------

package thankyou

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BrightPathCover/leadfunnel/internal/component"
	"github.com/BrightPathCover/leadfunnel/internal/grant"
	"github.com/BrightPathCover/leadfunnel/internal/metrics"
	"github.com/BrightPathCover/leadfunnel/internal/view"
)

// compile-time assertion
var _ component.Component = (*Comp)(nil)

// Comp implements component.Component; stateless.
type Comp struct{}

func (c *Comp) Name() string { return "thankyou" }

func (c *Comp) Routes(r chi.Router) {
	r.Get("/thankyou", c.getThankyou)
}

type pageData struct {
	FirstName string
}

func (c *Comp) getThankyou(w http.ResponseWriter, r *http.Request) {
	tok := grant.ReadCookie(r)
	if tok == "" || !grant.Verify(tok) {
		metrics.ThankyouRedirectTotal.Inc()
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	metrics.ThankyouAllowedTotal.Inc()
	if err := view.Render(w, r, "thankyou", pageData{}, view.CacheDefault); err != nil {
		zap.S().Errorw("render thankyou", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Register component at package init.
func init() {
	component.Register(&Comp{})
}
