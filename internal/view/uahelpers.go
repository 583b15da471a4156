// internal/view/uahelpers.go
//
// User-Agent template helpers.  Pages receive the enriched request info
// in their data and can branch on device class, e.g. to swap the phone
// field for a tel: link on mobile.
package view

import (
	"html/template"

	"github.com/BrightPathCover/leadfunnel/internal/requestinfo"
)

// uaFuncMap returns helpers keyed off *requestinfo.RequestInfo.
func uaFuncMap() template.FuncMap {
	return template.FuncMap{
		"browser":        func(ri *requestinfo.RequestInfo) string { return ri.UA.Browser },
		"browserVersion": func(ri *requestinfo.RequestInfo) string { return ri.UA.Version },
		"os":             func(ri *requestinfo.RequestInfo) string { return ri.UA.OS },
		"osVersion":      func(ri *requestinfo.RequestInfo) string { return ri.UA.OSVersion },
		"device":         func(ri *requestinfo.RequestInfo) string { return ri.UA.Device },
		"isBot":          func(ri *requestinfo.RequestInfo) bool { return ri.UA.IsBot },
	}
}
