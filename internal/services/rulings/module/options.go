package module

import (
	"time"

	"lawsearch/internal/platform/config"
)

// Options holds configuration settings for the rulings module
type Options struct {
	StoreTimeout time.Duration
	MaxPage      int
}

// FromConfig reads CORE_SEARCH_STORE_TIMEOUT and CORE_RULINGS_MAX_PAGE
func FromConfig(cfg config.Conf) Options {
	return Options{
		StoreTimeout: cfg.Prefix("CORE_SEARCH_").MayDuration("STORE_TIMEOUT", 10*time.Second),
		MaxPage:      cfg.Prefix("CORE_RULINGS_").MayPositiveInt("MAX_PAGE", 10000),
	}
}
