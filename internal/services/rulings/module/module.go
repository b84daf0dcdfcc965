// Package module implements the rulings service module
package module

import (
	"lawsearch/internal/modkit"
	"lawsearch/internal/modkit/httpkit"
	"lawsearch/internal/modkit/repokit"
	"lawsearch/internal/services/rulings/domain"
	"lawsearch/internal/services/rulings/repo"
	"lawsearch/internal/services/rulings/service"
)

// Ports exposed by the rulings module
type Ports struct {
	Service domain.ServicePort
	Reader  domain.Reader
	Hooks   Hooks
}

// Hooks lets later modules subscribe to writes
type Hooks interface {
	SetNotifier(n domain.ChangeNotifier)
}

// Module implements the rulings service module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the rulings module. Writes run with a server side statement timeout
func New(deps modkit.Deps, opts Options) *Module {
	db := repokit.WithBeginHooks(deps.PG, repokit.StatementTimeout(opts.StoreTimeout))
	svc := service.New(db, repo.NewPG(), service.Options{
		StoreTimeout: opts.StoreTimeout,
		MaxPage:      opts.MaxPage,
	})
	return &Module{deps: deps, ports: Ports{Service: svc, Reader: svc, Hooks: svc}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "rulings" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module, HTTP lives in services/api/rulings
func (m *Module) MountRoutes(httpkit.Router) {}
