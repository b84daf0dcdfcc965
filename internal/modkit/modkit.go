// Package modkit wires service and API modules: shared deps, build options and the mountable Base
package modkit

import (
	"net/http"

	"lawsearch/internal/modkit/httpkit"
	"lawsearch/internal/modkit/module"
	str "lawsearch/internal/platform/strings"
)

// Module is the common surface for API modules
type Module = module.Module

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module

// Base is embedded by API modules, it owns name, prefix, middleware and ports
type Base struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	ports  any
	routes []func(httpkit.Router)
}

// NewBase turns Built options into a Base
// routes mounts first, a WithRegister hook after it
func NewBase(b Built, routes func(httpkit.Router)) Base {
	base := Base{name: b.Name, prefix: b.Prefix, mws: b.Mw, ports: b.Ports}
	if routes != nil {
		base.routes = append(base.routes, routes)
	}
	if b.Register != nil {
		base.routes = append(base.routes, b.Register)
	}
	return base
}

// MountRoutes mounts the module under its prefix with its own middleware
func (m *Base) MountRoutes(r httpkit.Router) {
	r.Route(m.Prefix(), func(rr httpkit.Router) {
		if len(m.mws) > 0 {
			rr.Use(m.mws...)
		}
		for _, fn := range m.routes {
			fn(rr)
		}
	})
}

// Name panics when the module was built without one
func (m *Base) Name() string { return str.MustString(m.name, "module name") }

// Prefix panics on a blank or root prefix
func (m *Base) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports returns whatever the module exposes for cross wiring
func (m *Base) Ports() any { return m.ports }

// SetPorts replaces the exposed port set
func (m *Base) SetPorts(p any) { m.ports = p }
