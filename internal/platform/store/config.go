package store

import (
	"time"

	"lawsearch/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures the ruling store connection
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // ping attempts before Open gives up
	PingTimeout    time.Duration // per attempt
}

// CHConfig configures the query log sink connection
type CHConfig struct {
	Enabled    bool
	URL        string
	ClientName string
	ClientTag  string
}

// ConfigFromEnv reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_*
func ConfigFromEnv(cfg config.Conf, appName string) Config {
	pg := cfg.Prefix("SERVICE_PGSQL_")
	ch := cfg.Prefix("SERVICE_CLICKHOUSE_")
	return Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:        pg.MayBool("ENABLED", true),
			URL:            pg.MayString("DBURL", ""),
			MaxConns:       int32(pg.MayPositiveInt("MAX_CONNS", 8)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 250),
			ConnectRetries: pg.MayPositiveInt("CONNECT_RETRIES", 6),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled:    ch.MayBool("ENABLED", false),
			URL:        ch.MayString("DBURL", ""),
			ClientName: appName,
			ClientTag:  ch.MayString("CLIENT_TAG", "dev"),
		},
	}
}
