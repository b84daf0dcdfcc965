// Package api provides the HTTP API for the application
package api

import (
	"context"
	"fmt"

	"lawsearch/internal/platform/config"
	phttp "lawsearch/internal/platform/net/http"
	"lawsearch/internal/platform/net/middleware"
	"lawsearch/internal/platform/searchidx"
	"lawsearch/internal/platform/store"

	"lawsearch/internal/modkit"
	"lawsearch/internal/modkit/httpkit"
	"lawsearch/internal/modkit/module"
	"lawsearch/internal/modkit/swaggerkit"

	metamod "lawsearch/internal/services/api/meta/module"
	apirulings "lawsearch/internal/services/api/rulings/module"
	apisearch "lawsearch/internal/services/api/search/module"

	qldom "lawsearch/internal/services/querylog/domain"
	qlmod "lawsearch/internal/services/querylog/module"
	rulingsmod "lawsearch/internal/services/rulings/module"
	searchdom "lawsearch/internal/services/search/domain"
	searchmod "lawsearch/internal/services/search/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Engine         *searchidx.Engine
	EnableSwagger  bool
	EnableProfiler bool
}

// Runtime is what main keeps running next to the HTTP server
type Runtime struct {
	Search   searchdom.ServicePort
	QueryLog qldom.RecorderPort
	// Bootstrap prepares optional sinks, call once before serving
	Bootstrap func(ctx context.Context) error
}

// Mount builds the service modules, wires their ports and mounts the API onto r
func Mount(r phttp.Router, opt Options) (Runtime, error) {
	deps := modkit.Deps{
		Cfg:    opt.Config,
		PG:     opt.Store.PG,
		CH:     opt.Store.CH,
		Search: opt.Engine,
	}

	// service modules first, the API modules only see their ports
	rulings := rulingsmod.New(deps, rulingsmod.FromConfig(deps.Cfg))
	rp := module.MustPortsOf[rulingsmod.Ports](rulings)

	search := searchmod.New(deps, searchmod.FromConfig(deps.Cfg),
		modkit.WithPorts(searchmod.Needs{Rulings: rp.Reader, Hooks: rp.Hooks}))
	sp := module.MustPortsOf[searchmod.Ports](search)

	qlog, err := qlmod.New(deps, qlmod.FromConfig(deps.Cfg))
	if err != nil {
		return Runtime{}, fmt.Errorf("querylog: %w", err)
	}
	qp := module.MustPortsOf[qlmod.Ports](qlog)
	sp.Observer.SetObserver(qp.Observer)

	mods := []module.Module{
		rulings,
		search,
		qlog,
		metamod.New(deps),
		apisearch.New(deps, modkit.WithPorts(apisearch.Ports{Service: sp.Service})),
		apirulings.New(deps, modkit.WithPorts(apirulings.Ports{Service: rp.Service})),
	}

	ac := deps.Cfg.Prefix("CORE_API_")
	stack := httpkit.CommonStack(httpkit.StackOptions{
		RequestTimeout: ac.MayDuration("REQUEST_TIMEOUT", 0),
		MaxInFlight:    ac.MayInt("MAX_IN_FLIGHT", 0),
		CORS: middleware.CORSOptions{
			AllowedOrigins: ac.MayCSV("CORS_ORIGINS", nil),
		},
	})

	swaggerkit.Mount(r, swaggerkit.Options{Enabled: opt.EnableSwagger})
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	return Runtime{
		Search:    sp.Service,
		QueryLog:  qp.Recorder,
		Bootstrap: qlog.Bootstrap,
	}, nil
}
