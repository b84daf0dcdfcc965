// Package module mounts the search endpoints
package module

import (
	"lawsearch/internal/modkit"
	"lawsearch/internal/modkit/httpkit"
	searchhttp "lawsearch/internal/services/api/search/http"
	"lawsearch/internal/services/search/domain"
)

// Ports the module consumes, pass them with modkit.WithPorts
type Ports struct {
	Service domain.ServicePort
}

// Module is the search API module
type Module struct {
	modkit.Base
}

// New constructs the search API module under /search
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{
		modkit.WithName("api-search"),
		modkit.WithPrefix("/search"),
	}, opts...)

	ports, ok := b.Ports.(Ports)
	if !ok || ports.Service == nil {
		panic("api search module: expected WithPorts(api/search/module.Ports)")
	}
	return &Module{Base: modkit.NewBase(b, func(r httpkit.Router) {
		searchhttp.Register(r, ports.Service)
	})}
}
