// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"lawsearch/internal/modkit"
	"lawsearch/internal/modkit/httpkit"

	metahttp "lawsearch/internal/services/api/meta/http"
)

// ServiceName is reported by health and version
const ServiceName = "lawsearch-api"

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)

	m := &Module{startedAt: time.Now()}
	hd := metahttp.Deps{ServiceName: ServiceName, StartedAt: m.startedAt}
	// typed nils would read as wired
	if deps.PG != nil {
		hd.PG = deps.PG
	}
	if deps.CH != nil {
		hd.CH = deps.CH
	}
	if deps.Search != nil {
		hd.Search = deps.Search.Names
	}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) { metahttp.Register(r, hd) })
	return m
}
