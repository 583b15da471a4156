// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  The web entrypoint asks
// every component to attach its Routes() to the shared router and, before
// serving, invokes Init() when the component implements the Initializer
// interface.

package component

import (
	"sync"

	"github.com/go-chi/chi/v5"
)

// Initializer is optional.  If a Component implements it, the web
// entrypoint calls Init(deps) once before the router is mounted.
type Initializer interface {
	Init(Deps) error
}

// Component contract.
//
// Routes() attaches BOTH page and API endpoints to the shared router, e.g:
//
//	func (c *Comp) Routes(r chi.Router) {
//		r.Get("/thankyou", getThankyou)
//		r.Post("/submit-form", postSubmit)
//	}
type Component interface {
	Name() string
	Routes(chi.Router)
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component in arbitrary order.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	return out
}
