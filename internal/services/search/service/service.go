// Package service runs index bootstrap, indexing and retrieval over the ruling store
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"lawsearch/internal/core/textclean"
	perr "lawsearch/internal/platform/errors"
	"lawsearch/internal/platform/logger"
	"lawsearch/internal/platform/net/http/bind"
	"lawsearch/internal/platform/searchidx"
	rdomain "lawsearch/internal/services/rulings/domain"
	"lawsearch/internal/services/search/domain"
)

// Service defines the search service contract
type Service interface {
	domain.ServicePort
}

// Options tune the service
type Options struct {
	// BatchSize is the reindex page size when the caller passes zero
	BatchSize int
	// EngineTimeout bounds each index call other than bulk writes
	EngineTimeout time.Duration
	// MaxFailures caps the failure list kept on a ReindexResult
	MaxFailures int
	// SyncOnWrite makes RulingChanged index the written ruling
	SyncOnWrite bool
}

// Svc implements the search service
type Svc struct {
	index    domain.Index
	rulings  rdomain.Reader
	opts     Options
	observer domain.QueryObserver
	now      func() time.Time
}

// New constructs a search service
func New(index domain.Index, rulings rdomain.Reader, opts Options) *Svc {
	if index == nil {
		panic("search.Service requires a non nil Index")
	}
	if rulings == nil {
		panic("search.Service requires a non nil ruling Reader")
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1000
	}
	if opts.EngineTimeout <= 0 {
		opts.EngineTimeout = 10 * time.Second
	}
	if opts.MaxFailures <= 0 {
		opts.MaxFailures = 100
	}
	return &Svc{index: index, rulings: rulings, opts: opts, now: time.Now}
}

// SetObserver installs the query observer, call it before serving traffic
func (s *Svc) SetObserver(o domain.QueryObserver) { s.observer = o }

// IndexName returns the name of the backing index
func (s *Svc) IndexName() string { return s.index.Name() }

func (s *Svc) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opts.EngineTimeout)
}

// EnsureIndex creates the index when it is missing
// losing a creation race to another caller counts as success
func (s *Svc) EnsureIndex(ctx context.Context) error {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	ok, err := s.index.Exists(ctx)
	if err != nil {
		return perr.FromSearch(err, "check search index")
	}
	if ok {
		return nil
	}
	err = s.index.Create(ctx)
	if errors.Is(err, searchidx.ErrIndexExists) {
		return nil
	}
	if err != nil {
		return perr.FromSearch(err, "create search index")
	}
	logger.C(ctx).Info().Str("index", s.index.Name()).Msg("search index created")
	return nil
}

// ReindexAll copies every stored ruling into the index in keyset pages
// rejected documents are counted and logged, they do not stop later pages
func (s *Svc) ReindexAll(ctx context.Context, batchSize int) (domain.ReindexResult, error) {
	if batchSize <= 0 {
		batchSize = s.opts.BatchSize
	}
	res := domain.ReindexResult{Index: s.index.Name()}
	start := s.now()

	if err := s.EnsureIndex(ctx); err != nil {
		return res, err
	}

	log := logger.C(ctx)
	var cursor rdomain.Cursor
	for {
		if err := ctx.Err(); err != nil {
			return res, perr.Wrap(err, perr.ErrorCodeUnavailable, "reindex interrupted")
		}
		rows, err := s.rulings.ListAfter(ctx, cursor, batchSize)
		if err != nil {
			return res, err
		}
		if len(rows) == 0 {
			break
		}
		br, err := s.index.Upsert(ctx, fromRulings(rows))
		if err != nil {
			return res, perr.FromSearchf(err, "bulk index batch %d", res.Batches+1)
		}
		res.Batches++
		res.Indexed += br.Indexed
		res.Failed += len(br.Failures)
		for _, f := range br.Failures {
			log.Warn().Str("id", f.ID).Str("reason", f.Reason).Int("batch", res.Batches).Msg("document rejected by search index")
			if len(res.Failures) < s.opts.MaxFailures {
				res.Failures = append(res.Failures, f)
			}
		}
		cursor = rdomain.Next(rows[len(rows)-1])
	}
	res.Took = s.now().Sub(start)

	log.Info().
		Str("index", res.Index).
		Int("indexed", res.Indexed).
		Int("failed", res.Failed).
		Int("batches", res.Batches).
		Dur("took", res.Took).
		Msg("reindex finished")
	return res, nil
}

// IndexOne upserts a single ruling by id
// a missing ruling or a rejected document is reported in the result, not as an error
func (s *Svc) IndexOne(ctx context.Context, id string) (domain.IndexOneResult, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.IndexOneResult{}, perr.WithField(perr.InvalidArgf("id is required"), "id")
	}
	if err := s.EnsureIndex(ctx); err != nil {
		return domain.IndexOneResult{}, err
	}
	r, err := s.rulings.ByID(ctx, id)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return domain.IndexOneResult{Indexed: 0, Detail: domain.DetailNotFound}, nil
	}
	if err != nil {
		return domain.IndexOneResult{}, err
	}
	br, err := s.index.Upsert(ctx, []domain.Document{FromRuling(r)})
	if err != nil {
		return domain.IndexOneResult{}, perr.FromSearchf(err, "index ruling %s", id)
	}
	if len(br.Failures) > 0 {
		return domain.IndexOneResult{Indexed: 0, ID: r.ID, Detail: domain.DetailRejected, Reason: br.Failures[0].Reason}, nil
	}
	return domain.IndexOneResult{Indexed: 1, ID: r.ID}, nil
}

// CountIndexedDocuments returns the index size, zero when the index does not exist
func (s *Svc) CountIndexedDocuments(ctx context.Context) (uint64, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	n, err := s.index.Count(ctx)
	if errors.Is(err, searchidx.ErrIndexNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, perr.FromSearch(err, "count search index")
	}
	return n, nil
}

// Search runs a ranked, offset paginated query
// an empty index is filled from the store first so a cold start still answers
func (s *Svc) Search(ctx context.Context, q domain.Query) (domain.Result, error) {
	if err := bind.Validate(q); err != nil {
		return domain.Result{}, err
	}
	res := domain.Result{Query: q.Q, Limit: q.Limit, Offset: q.Offset, Items: []domain.Hit{}}
	raw := textclean.Normalize(q.Q)
	if raw == "" {
		return res, nil
	}

	ev := domain.QueryEvent{At: s.now(), Query: raw, Limit: q.Limit, Offset: q.Offset, RequestID: logger.RequestID(ctx)}
	defer func() {
		ev.Took = s.now().Sub(ev.At)
		if s.observer != nil {
			s.observer.Observe(ctx, ev)
		}
	}()

	page, err := s.search(ctx, raw, q, &ev)
	if err != nil {
		ev.Err = err
		logger.C(ctx).Error().Err(err).Str("query", raw).Strs("tokens", ev.Tokens).Msg("search failed")
		return domain.Result{}, err
	}
	res.Total = page.Total
	res.Items = append(res.Items, page.Hits...)
	ev.Total = page.Total
	return res, nil
}

func (s *Svc) search(ctx context.Context, raw string, q domain.Query, ev *domain.QueryEvent) (domain.Page, error) {
	if err := s.EnsureIndex(ctx); err != nil {
		return domain.Page{}, err
	}
	n, err := s.CountIndexedDocuments(ctx)
	if err != nil {
		return domain.Page{}, err
	}
	if n == 0 {
		ev.Reindexed = true
		logger.C(ctx).Warn().Str("index", s.index.Name()).Msg("search index is empty, reindexing before query")
		if _, err := s.ReindexAll(ctx, 0); err != nil {
			// the query still runs, it answers from whatever made it in
			logger.C(ctx).Error().Err(err).Msg("self healing reindex failed")
		}
	}

	plan := BuildPlan(raw)
	ev.Tokens = plan.Tokens

	sctx, cancel := s.bounded(ctx)
	defer cancel()
	page, err := s.index.Search(sctx, plan, q.Limit, q.Offset)
	if err != nil {
		return domain.Page{}, perr.FromSearch(err, "search index")
	}
	return page, nil
}

// RulingChanged keeps the index in step with store writes when sync on write is on
// failures are logged only, the next full reindex repairs drift
func (s *Svc) RulingChanged(ctx context.Context, id string) {
	if !s.opts.SyncOnWrite {
		return
	}
	res, err := s.IndexOne(ctx, id)
	log := logger.C(ctx)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("id", id).Msg("sync on write failed")
	case res.Indexed == 0:
		log.Warn().Str("id", id).Str("detail", res.Detail).Str("reason", res.Reason).Msg("sync on write skipped")
	default:
		log.Debug().Str("id", id).Msg("ruling indexed on write")
	}
}
