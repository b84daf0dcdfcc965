package modkit

import (
	"net/http"

	"lawsearch/internal/modkit/httpkit"
)

// Built is the resolved option set a module constructor reads
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(httpkit.Router)
}

// Build applies the module's defaults, then the caller's opts on top
func Build(defaults []Option, opts ...Option) Built {
	var c buildCfg
	for _, o := range append(append([]Option(nil), defaults...), opts...) {
		o(&c)
	}
	b := Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
	if b.Register == nil {
		b.Register = func(httpkit.Router) {}
	}
	return b
}
