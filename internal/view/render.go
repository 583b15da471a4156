// internal/view/render.go
//
// View engine: template lookup, func-map injection, and an LRU of parsed
// *template.Template sets.
//
// Public helpers
// --------------
//   - Render         – write a rendered page to an http.ResponseWriter.
//   - RenderToString – return template.HTML (e-mails, snippets).
//
// Templates are embedded at build time; a page and its partials live in
// templates/ and are parsed as one set, so sub-templates
// ({{ template "trustedform" . }}) work out-of-the-box.  Parsed sets are
// cached in an LRU keyed by page name.
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package view

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/BrightPathCover/leadfunnel/internal/cache"
)

//go:embed templates/*.html
var templateFS embed.FS

//
// cache definitions
//

// CachePolicy hints how the caller wants this template cached.
type CachePolicy int

const (
	CacheDefault CachePolicy = iota // cache parsed sets
	CacheSkip                       // re-parse every request (dev)
)

// Parsed template sets; the funnel has a handful of pages, so a small
// capacity is plenty.
var tmplLRU = cache.New(64)

//
// public helpers
//

// Render executes the named page template and streams it to w.
//
// The whole templates/ directory is parsed as one set, then the concrete
// template chosen by execName() runs.  This allows both:
//
//   - A simple file "form.html" with no {{ define }} block.
//   - A file that wraps markup in {{ define "form" }} … {{ end }} and
//     relies on that root template name.
func Render(w http.ResponseWriter, r *http.Request, name string, data any, policy CachePolicy) error {
	t, err := load(r, name, policy)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.ExecuteTemplate(w, execName(t, name), data)
}

// RenderToString executes and returns HTML.  It mirrors Render, but
// writes to a buffer instead of w.
func RenderToString(r *http.Request, name string, data any) (template.HTML, error) {
	t, err := load(r, name, CacheDefault)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, execName(t, name), data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

//
// internal: load
//

// load parses (or fetches from cache) the embedded template set for the
// given page name.
func load(r *http.Request, name string, policy CachePolicy) (*template.Template, error) {
	if policy != CacheSkip {
		if v, ok := tmplLRU.Get(name); ok {
			return v.(*template.Template), nil
		}
	}

	t, err := template.New(name).Funcs(buildFuncMap(r)).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	if policy != CacheSkip {
		tmplLRU.Add(name, t)
	}
	return t, nil
}

//
// func-map builders
//

func buildFuncMap(r *http.Request) template.FuncMap {
	fm := template.FuncMap{
		"dict": dict,
	}
	for k, v := range uaFuncMap() {
		fm[k] = v
	}
	return fm
}

//
// helpers
//

// execName picks the template name to execute.
//
// Priority:
//  1. If the set has "<name>.html" (file-based template), run that.
//  2. Otherwise, fall back to "<name>" (root template defined in code).
func execName(t *template.Template, name string) string {
	if tmpl := t.Lookup(name + ".html"); tmpl != nil {
		return name + ".html"
	}
	return name
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}
