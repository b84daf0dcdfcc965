// Package module wires the query log and exposes its ports
package module

import (
	"context"

	"lawsearch/internal/modkit"
	"lawsearch/internal/modkit/httpkit"
	"lawsearch/internal/services/querylog/domain"
	"lawsearch/internal/services/querylog/repo"
	"lawsearch/internal/services/querylog/service"
	sdomain "lawsearch/internal/services/search/domain"
)

// Ports exposed by the query log module
type Ports struct {
	Recorder domain.RecorderPort
	Observer sdomain.QueryObserver
}

// Module is the query log module, a no-op without ClickHouse
type Module struct {
	deps  modkit.Deps
	ports Ports
	repo  *repo.CH
}

// New constructs the module. Without ClickHouse every port is a no-op
func New(deps modkit.Deps, opts Options) (*Module, error) {
	m := &Module{deps: deps}
	if !deps.HasCH() {
		m.ports = Ports{Recorder: service.Nop{}, Observer: service.Nop{}}
		return m, nil
	}
	r, err := repo.NewCH(deps.CH, opts.Table)
	if err != nil {
		return nil, err
	}
	svc := service.New(r, service.Config{
		Buffer:     opts.Buffer,
		Batch:      opts.Batch,
		FlushEvery: opts.FlushEvery,
	})
	m.repo = r
	m.ports = Ports{Recorder: svc, Observer: svc}
	return m, nil
}

// Enabled reports whether entries reach ClickHouse
func (m *Module) Enabled() bool { return m.repo != nil }

// Bootstrap creates the table when ClickHouse is wired
func (m *Module) Bootstrap(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.EnsureTable(ctx)
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "querylog" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
