package module

import (
	"time"

	"lawsearch/internal/platform/config"
	"lawsearch/internal/services/querylog/repo"
)

// Options holds configuration settings for the query log module
type Options struct {
	Table      string
	Buffer     int
	Batch      int
	FlushEvery time.Duration
}

// FromConfig reads CORE_QUERYLOG_*
func FromConfig(cfg config.Conf) Options {
	qc := cfg.Prefix("CORE_QUERYLOG_")
	return Options{
		Table:      qc.MayString("TABLE", repo.DefaultTable),
		Buffer:     qc.MayPositiveInt("BUFFER", 1024),
		Batch:      qc.MayPositiveInt("BATCH", 500),
		FlushEvery: qc.MayDuration("FLUSH_EVERY", 2*time.Second),
	}
}
