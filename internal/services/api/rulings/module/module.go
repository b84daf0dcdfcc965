// Package module mounts the ruling endpoints
package module

import (
	"lawsearch/internal/modkit"
	"lawsearch/internal/modkit/httpkit"
	rulingshttp "lawsearch/internal/services/api/rulings/http"
	"lawsearch/internal/services/rulings/domain"
)

// Ports the module consumes, pass them with modkit.WithPorts
type Ports struct {
	Service domain.ServicePort
}

// Module is the rulings API module
type Module struct {
	modkit.Base
}

// New constructs the rulings API module under /rulings
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{
		modkit.WithName("api-rulings"),
		modkit.WithPrefix("/rulings"),
	}, opts...)

	ports, ok := b.Ports.(Ports)
	if !ok || ports.Service == nil {
		panic("api rulings module: expected WithPorts(api/rulings/module.Ports)")
	}
	return &Module{Base: modkit.NewBase(b, func(r httpkit.Router) {
		rulingshttp.Register(r, ports.Service)
	})}
}
