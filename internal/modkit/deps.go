package modkit

import (
	"lawsearch/internal/modkit/repokit"
	"lawsearch/internal/platform/config"
	"lawsearch/internal/platform/logger"
	"lawsearch/internal/platform/searchidx"
	"lawsearch/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// constructed once in main and shared read only
type Deps struct {
	Log    logger.Logger
	Cfg    config.Conf
	PG     repokit.TxRunner
	CH     store.Clickhouse
	Search *searchidx.Engine
}

// HasCH reports whether a ClickHouse handle is wired
func (d Deps) HasCH() bool { return d.CH != nil }
