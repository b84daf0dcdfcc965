package module

import (
	"time"

	"lawsearch/internal/platform/config"
)

// Options holds configuration settings for the search module
type Options struct {
	Index         string
	BatchSize     int
	EngineTimeout time.Duration
	MaxFailures   int
	SyncOnWrite   bool
}

// FromConfig reads CORE_SEARCH_*
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SEARCH_")
	return Options{
		Index:         sc.MayString("INDEX", "law"),
		BatchSize:     sc.MayPositiveInt("BATCH_SIZE", 1000),
		EngineTimeout: sc.MayDuration("ENGINE_TIMEOUT", 10*time.Second),
		MaxFailures:   sc.MayPositiveInt("MAX_FAILURES", 100),
		SyncOnWrite:   sc.MayBool("SYNC_ON_WRITE", true),
	}
}
