// @title         Lawsearch API
// @version       0.1.0
// @description   Keyword search over Korean court rulings

package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"lawsearch/internal/platform/config"
	"lawsearch/internal/platform/logger"
	phttp "lawsearch/internal/platform/net/http"
	"lawsearch/internal/platform/net/middleware"
	"lawsearch/internal/platform/searchidx"
	"lawsearch/internal/platform/store"

	"lawsearch/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	config.LoadDotenv()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// postgres is the source of truth, clickhouse only when SERVICE_CLICKHOUSE_ENABLED
	root.Prefix("SERVICE_PGSQL_").Require("DBURL")
	stCfg := store.ConfigFromEnv(root, "lawsearch-api")
	st, err := store.Open(ctx, stCfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if err := st.Guard(ctx); err != nil {
		l.Panic().Err(err).Msg("store guard failed")
	}

	eng := searchidx.New(searchidx.OptionsFromConfig(root))
	defer func() {
		if err := eng.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close search engine")
		}
	}()

	// http server (reads CORE_API_PORT / CORE_API_SHUTDOWN_GRACE)
	slow := apiCfg.MayDuration("SLOW_REQUEST", 750*time.Millisecond)
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) { m.Use(middleware.Defaults(slow)...) })

	rt, err := api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Engine:         eng,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	})
	if err != nil {
		l.Panic().Err(err).Msg("api.Mount failed")
	}
	if err := rt.Bootstrap(ctx); err != nil {
		l.Panic().Err(err).Msg("bootstrap failed")
	}

	logDone := make(chan struct{})
	go func() {
		defer close(logDone)
		if err := rt.QueryLog.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			l.Error().Err(err).Msg("query log stopped")
		}
	}()

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
	stop()
	<-logDone
	l.Info().Msg("bye")
}
