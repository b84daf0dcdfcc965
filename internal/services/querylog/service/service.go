// Package service buffers search events and flushes them to the query log in batches
package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"lawsearch/internal/platform/logger"
	"lawsearch/internal/services/querylog/domain"
	sdomain "lawsearch/internal/services/search/domain"

	"github.com/google/uuid"
)

// Config tunes the recorder
type Config struct {
	// Buffer is the channel capacity, entries beyond it are dropped
	Buffer int
	// Batch flushes early once this many entries are pending
	Batch int
	// FlushEvery is the ticker period
	FlushEvery time.Duration
	// WriteTimeout bounds one batch write
	WriteTimeout time.Duration
}

// Svc implements domain.RecorderPort and the search QueryObserver
type Svc struct {
	w   domain.Writer
	cfg Config
	in  chan domain.Entry
	// full is signalled once a batch worth of entries is pending
	full chan struct{}

	mu      sync.Mutex // serializes drains between Run and Flush
	dropped atomic.Uint64
	warned  atomic.Int64
	now     func() time.Time
	newID   func() string
}

// New constructs a recorder over w
func New(w domain.Writer, cfg Config) *Svc {
	if w == nil {
		panic("querylog.Service requires a non nil Writer")
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = 1024
	}
	if cfg.Batch <= 0 {
		cfg.Batch = 500
	}
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = 2 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}
	return &Svc{
		w:     w,
		cfg:   cfg,
		in:    make(chan domain.Entry, cfg.Buffer),
		full:  make(chan struct{}, 1),
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
}

// Observe queues one search event without blocking
// a full buffer drops the entry, the warning is rate limited to one per second
func (s *Svc) Observe(_ context.Context, ev sdomain.QueryEvent) {
	e := domain.Entry{
		ID:        s.newID(),
		At:        ev.At,
		Query:     ev.Query,
		Tokens:    ev.Tokens,
		Limit:     ev.Limit,
		Offset:    ev.Offset,
		Total:     ev.Total,
		Reindexed: ev.Reindexed,
		ElapsedMs: ev.Took.Milliseconds(),
		RequestID: ev.RequestID,
	}
	if ev.Err != nil {
		e.Err = ev.Err.Error()
	}
	select {
	case s.in <- e:
		if len(s.in) >= s.cfg.Batch {
			select {
			case s.full <- struct{}{}:
			default:
			}
		}
	default:
		n := s.dropped.Add(1)
		now := s.now().Unix()
		if last := s.warned.Load(); now > last && s.warned.CompareAndSwap(last, now) {
			logger.Named("querylog").Warn().Uint64("dropped_total", n).Msg("query log buffer full, dropping entries")
		}
	}
}

// Dropped returns how many entries were lost to a full buffer
func (s *Svc) Dropped() uint64 { return s.dropped.Load() }

// Run flushes on every tick and whenever a batch fills, until ctx ends
// pending entries get one last flush on a fresh deadline
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("querylog")
	t := time.NewTicker(s.cfg.FlushEvery)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.WriteTimeout)
			err := s.Flush(fctx)
			cancel()
			if err != nil {
				log.Error().Err(err).Msg("final query log flush failed")
			}
			return ctx.Err()
		case <-t.C:
		case <-s.full:
		}
		if err := s.Flush(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("query log flush failed")
		}
	}
}

// Flush drains everything queued so far in Batch sized writes
// a failed write drops that batch, the log is best effort
func (s *Svc) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for {
		batch := s.take()
		if len(batch) == 0 {
			return errors.Join(errs...)
		}
		wctx, cancel := context.WithTimeout(ctx, s.cfg.WriteTimeout)
		err := s.w.WriteBatch(wctx, batch)
		cancel()
		if err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil {
				return errors.Join(errs...)
			}
		}
	}
}

func (s *Svc) take() []domain.Entry {
	var out []domain.Entry
	for len(out) < s.cfg.Batch {
		select {
		case e := <-s.in:
			out = append(out, e)
		default:
			return out
		}
	}
	return out
}

// Nop is the recorder used when ClickHouse is disabled
type Nop struct{}

// Observe implements search QueryObserver
func (Nop) Observe(context.Context, sdomain.QueryEvent) {}

// Run blocks until ctx ends
func (Nop) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

// Flush implements domain.RecorderPort
func (Nop) Flush(context.Context) error { return nil }

// Dropped implements domain.RecorderPort
func (Nop) Dropped() uint64 { return 0 }
