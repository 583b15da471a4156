// internal/config/model.go
//
// Typed configuration model for the lead funnel.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `conf/.env`                     – dotenv values,
//   • `conf/global.yaml`                       – primary static file,
//   • `FUNNEL_`-prefixed environment overrides – highest precedence.
//
// Any value whose string begins with the prefix `vault:` is resolved
// through the Vault client *after* unmarshalling, so the model never
// stores Vault URIs beyond load time—only plain strings.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.  The buyer block is the one deliberate
// exception: its four values are optional AS A UNIT, because an
// unconfigured buyer downgrades the intake endpoint to a local-dev
// success path instead of blocking startup.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`—Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`

	// SecureCookies forces the Secure flag on every cookie the funnel
	// sets, for deployments behind a TLS-terminating proxy where r.TLS
	// is always nil.
	SecureCookies bool `koanf:"secure_cookies"`
}

//
// Buyer section
//

// Buyer holds the external lead-buyer endpoint and credentials.  The
// credential values are provisioned out of band and never echoed to the
// client; api_key is typically a `vault:` reference in production.
type Buyer struct {
	URL        string `koanf:"url"`
	CampaignID string `koanf:"campaign_id"`
	SupplierID string `koanf:"supplier_id"`
	APIKey     string `koanf:"api_key"`
}

// Configured reports whether every buyer value is present.  When false the
// intake endpoint short-circuits to a success response without an outbound
// call, so incomplete setups degrade instead of erroring.
func (b Buyer) Configured() bool {
	return b.URL != "" && b.CampaignID != "" && b.SupplierID != "" && b.APIKey != ""
}

//
// Geo section
//

// Geo points at an optional GeoLite2-City database used to annotate lead
// metadata.  Empty disables the lookup entirely.
type Geo struct {
	CityDB string `koanf:"city_db"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime—never set in YAML or env.  The loader
// discovers `Root` (repo root or FUNNEL_ROOT override) so later code can
// build absolute file paths (logs, zip store).
type Paths struct {
	Root string // FUNNEL_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached in an
// atomic.Pointer for lock-free reads throughout the app lifetime.
type Config struct {
	HTTP  HTTP  `koanf:"http"`
	Buyer Buyer `koanf:"buyer"`
	Geo   Geo   `koanf:"geo"`
	Paths Paths `koanf:"-"` // not loaded from config files
}
