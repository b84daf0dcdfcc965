// Package module implements the search service module
package module

import (
	"lawsearch/internal/modkit"
	"lawsearch/internal/modkit/httpkit"
	rdomain "lawsearch/internal/services/rulings/domain"
	"lawsearch/internal/services/search/domain"
	"lawsearch/internal/services/search/repo"
	"lawsearch/internal/services/search/service"
)

// Needs are the ports the search module consumes, pass them with modkit.WithPorts
type Needs struct {
	Rulings rdomain.Reader
	// Hooks is optional, when set and sync on write is on every store write is indexed
	Hooks interface {
		SetNotifier(n rdomain.ChangeNotifier)
	}
}

// Ports exposed by the search module
type Ports struct {
	Service  domain.ServicePort
	Observer Observers
}

// Observers lets later modules watch executed queries
type Observers interface {
	SetObserver(o domain.QueryObserver)
}

// Module implements the search service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the search module over deps.Search
func New(deps modkit.Deps, opts Options, mopts ...modkit.Option) *Module {
	b := modkit.Build([]modkit.Option{modkit.WithName("search")}, mopts...)

	needs, ok := b.Ports.(Needs)
	if !ok || needs.Rulings == nil {
		panic("search module: expected WithPorts(search/module.Needs) with a ruling Reader")
	}
	if deps.Search == nil {
		panic("search module: Deps.Search engine is nil")
	}

	svc := service.New(repo.New(deps.Search, opts.Index), needs.Rulings, service.Options{
		BatchSize:     opts.BatchSize,
		EngineTimeout: opts.EngineTimeout,
		MaxFailures:   opts.MaxFailures,
		SyncOnWrite:   opts.SyncOnWrite,
	})
	if opts.SyncOnWrite && needs.Hooks != nil {
		needs.Hooks.SetNotifier(svc)
	}
	return &Module{deps: deps, ports: Ports{Service: svc, Observer: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "search" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module, HTTP lives in services/api/search
func (m *Module) MountRoutes(httpkit.Router) {}
