package main

import (
	"context"

	"lawsearch/internal/modkit"
	"lawsearch/internal/modkit/module"
	"lawsearch/internal/platform/config"
	"lawsearch/internal/platform/logger"
	"lawsearch/internal/platform/searchidx"
	"lawsearch/internal/platform/store"

	rdomain "lawsearch/internal/services/rulings/domain"
	rulingsmod "lawsearch/internal/services/rulings/module"
	sdomain "lawsearch/internal/services/search/domain"
	searchmod "lawsearch/internal/services/search/module"

	"github.com/urfave/cli/v2"
)

// indexUse says what a command needs from the search engine
type indexUse int

const (
	// indexScratch commands work on an in-memory index, it is rebuilt from the store per run
	indexScratch indexUse = iota
	// indexPersistent commands only make sense when the index outlives the process
	indexPersistent
)

// checkIndexDir refuses index maintenance against an index that dies with the process
func checkIndexDir(cmd string, use indexUse, opts searchidx.Options) error {
	if use == indexPersistent && !opts.Persistent() {
		return cli.Exit("CORE_SEARCH_DIR is not set, "+cmd+" would only touch an in-memory index discarded at exit", 2)
	}
	return nil
}

// session holds the backends and services one CLI invocation uses
type session struct {
	st      *store.Store
	eng     *searchidx.Engine
	rulings rdomain.ServicePort
	search  sdomain.ServicePort
}

// open connects postgres and the engine and wires the same modules the API uses
// the query log stays off, CLI searches are not user traffic
func open(ctx context.Context, root config.Conf, cmd string, use indexUse) (*session, error) {
	l := logger.Get()

	eopts := searchidx.OptionsFromConfig(root)
	if err := checkIndexDir(cmd, use, eopts); err != nil {
		return nil, err
	}
	if !eopts.Persistent() {
		l.Warn().Str("command", cmd).Msg("CORE_SEARCH_DIR is not set, using a throwaway in-memory index")
	}

	root.Prefix("SERVICE_PGSQL_").Require("DBURL")
	cfg := store.ConfigFromEnv(root, "lawsearch")
	cfg.CH.Enabled = false

	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		return nil, err
	}
	if err := st.Guard(ctx); err != nil {
		_ = st.Close(ctx)
		return nil, err
	}

	eng := searchidx.New(eopts)
	deps := modkit.Deps{Log: *l, Cfg: root, PG: st.PG, Search: eng}
	return wire(deps, st), nil
}

func wire(deps modkit.Deps, st *store.Store) *session {
	rulings := rulingsmod.New(deps, rulingsmod.FromConfig(deps.Cfg))
	rp := module.MustPortsOf[rulingsmod.Ports](rulings)

	sm := searchmod.New(deps, searchOptions(deps),
		modkit.WithPorts(searchmod.Needs{Rulings: rp.Reader, Hooks: rp.Hooks}))
	sp := module.MustPortsOf[searchmod.Ports](sm)

	return &session{st: st, eng: deps.Search, rulings: rp.Service, search: sp.Service}
}

// searchOptions turns sync on write off when the index is in memory,
// indexing each imported ruling into it would be thrown away
func searchOptions(deps modkit.Deps) searchmod.Options {
	o := searchmod.FromConfig(deps.Cfg)
	if deps.Search == nil || !deps.Search.Persistent() {
		o.SyncOnWrite = false
	}
	return o
}

func (s *session) close() {
	l := logger.Get()
	if err := s.eng.Close(); err != nil {
		l.Error().Err(err).Msg("failed to close search engine")
	}
	if err := s.st.Close(context.Background()); err != nil {
		l.Error().Err(err).Msg("failed to close store")
	}
}
