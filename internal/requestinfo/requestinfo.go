//
//  internal/requestinfo/requestinfo.go
//
//  Per-request metadata forwarded with every lead: parsed user-agent,
//  client address with best-effort geolocation, URL, and timestamp.
//  These structs are inert.  They hold no handles or large buffers, so
//  they are safe to log or JSON-encode.
//
//  Dependencies
//  • github.com/avct/uasurfer          (UA parsing)
//  • github.com/oschwald/geoip2-golang (MaxMind lookup, optional)
//

package requestinfo

import (
	"context"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/avct/uasurfer"
	"github.com/oschwald/geoip2-golang"
)

//
//  -----------------------------
//  Struct definitions
//  -----------------------------
//

// UA holds the parsed user-agent properties the buyer payload and the
// funnel logs care about.
type UA struct {
	Raw       string // Entire User-Agent header
	Browser   string // "Chrome", "Firefox", "Safari", ...
	Version   string // "124.0.6367"
	OS        string // "macOS", "Windows", "Android", "iOS", ...
	OSVersion string // "14.5", "11", "10.0"
	Device    string // "Desktop", "Phone", "Tablet", ...
	IsBot     bool   // True when the UA matches a crawler signature
}

// Geo holds IP-based geolocation hints.  Best effort; empty when the city
// database is not configured or has no match.
type Geo struct {
	IP         net.IP // First usable client address from the forwarding chain
	CountryISO string // "US", "CA", ...
	City       string // "Chicago", ...
}

// RequestInfo is stored in the request context by Enrich and read by the
// lead intake handler when it assembles the buyer payload.
type RequestInfo struct {
	UA        UA
	Geo       Geo
	URL       *url.URL // Pointer copy, safe to dereference read-only
	Timestamp time.Time
}

// ClientIP returns the dotted client address, or "unknown" when none could
// be determined.  This is the exact value forwarded to the buyer.
func (ri *RequestInfo) ClientIP() string {
	if ri == nil || ri.Geo.IP == nil {
		return "unknown"
	}
	return ri.Geo.IP.String()
}

//
//  -----------------------------
//  Package-level state
//  -----------------------------
//

// geoReader is a singleton MaxMind handle; nil when no database was
// configured.  Safe for concurrent reads, which is all we perform.
var geoReader *geoip2.Reader

// InitGeo opens the GeoLite2-City database.  Call from main() when
// geo.city_db is configured; the funnel runs fine without it.
func InitGeo(dbPath string) error {
	r, err := geoip2.Open(dbPath)
	if err != nil {
		return err
	}
	geoReader = r
	return nil
}

//
//  -----------------------------
//  Public helper: FromContext
//  -----------------------------
//

type ctxKey struct{} // unexported, collision-proof

// FromContext returns the pointer previously stored by Enrich, or nil when
// the middleware has not run.
func FromContext(ctx context.Context) *RequestInfo {
	v, _ := ctx.Value(ctxKey{}).(*RequestInfo)
	return v
}

//
//  -----------------------------
//  Internal helpers
//  -----------------------------
//

// parseUA converts a raw header into our UA struct using uasurfer.
func parseUA(uaHeader string) UA {
	u := uasurfer.Parse(uaHeader)

	br := strings.TrimPrefix(u.Browser.Name.String(), "Browser")

	osName := strings.TrimPrefix(u.OS.Name.String(), "OS")
	if osName == "MacOSX" {
		osName = "macOS"
	}

	return UA{
		Raw:       uaHeader,
		Browser:   br,
		Version:   trimVersion(u.Browser.Version),
		OS:        osName,
		OSVersion: trimVersion(u.OS.Version),
		Device:    deviceTypeToString(u.DeviceType),
		IsBot:     u.IsBot(),
	}
}

// trimVersion builds "major.minor.patch" and removes trailing ".0".
func trimVersion(v uasurfer.Version) string {
	out := strings.Join([]string{
		strconv.Itoa(v.Major),
		strconv.Itoa(v.Minor),
		strconv.Itoa(v.Patch),
	}, ".")
	out = strings.TrimSuffix(out, ".0")
	out = strings.TrimSuffix(out, ".0")
	if out == "" {
		return "0"
	}
	return out
}

// deviceTypeToString maps uasurfer.DeviceType to a user-friendly string.
func deviceTypeToString(dt uasurfer.DeviceType) string {
	switch dt {
	case uasurfer.DeviceComputer:
		return "Desktop"
	case uasurfer.DevicePhone:
		return "Phone"
	case uasurfer.DeviceTablet:
		return "Tablet"
	case uasurfer.DeviceConsole:
		return "Console"
	case uasurfer.DeviceWearable:
		return "Wearable"
	case uasurfer.DeviceTV:
		return "TV"
	default:
		return "Unknown"
	}
}

// lookupGeo returns best-effort Geo data using the global reader.
func lookupGeo(ip net.IP) Geo {
	if geoReader == nil || ip == nil {
		return Geo{IP: ip}
	}
	rec, err := geoReader.City(ip)
	if err != nil {
		return Geo{IP: ip}
	}
	return Geo{
		IP:         ip,
		CountryISO: rec.Country.IsoCode,
		City:       rec.City.Names["en"],
	}
}
