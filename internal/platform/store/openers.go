package store

import (
	"context"
	"fmt"
	"time"

	chx "lawsearch/internal/platform/store/ch"
	"lawsearch/internal/platform/store/pg"
)

// sleep is a seam so retry tests do not wait
var sleep = time.Sleep

// openPG opens the pool and publishes the adapter once a ping succeeds
// pings go to the pool directly so they never show up in the SQL trace
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.PG.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		SlowMs:   cfg.PG.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer, nil)
	if err != nil {
		return nil, err
	}

	ping := func(ctx context.Context) error { return p.Pool.Ping(ctx) }
	if err := retryPing(ctx, ping, cfg.PG.ConnectRetries, cfg.PG.PingTimeout); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

// retryPing calls ping up to attempts times with capped exponential backoff
func retryPing(ctx context.Context, ping func(context.Context) error, attempts int, timeout time.Duration) error {
	if attempts < 1 {
		attempts = 1
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	const ceiling = 2 * time.Second
	backoff := 150 * time.Millisecond

	var last error
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		last = ping(pctx)
		cancel()
		if last == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i < attempts-1 {
			sleep(backoff)
			backoff = min(backoff*2, ceiling)
		}
	}
	return fmt.Errorf("ping failed after %d attempts: %w", attempts, last)
}

func openCH(ctx context.Context, cfg Config, _ *Store) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:        cfg.CH.URL,
		ClientName: cfg.CH.ClientName,
		ClientTag:  cfg.CH.ClientTag,
	})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
