// Package searchidx owns the bleve indexes behind the search service
// an Engine holds named indexes, in memory or under a data dir, created once and shared
package searchidx

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"lawsearch/internal/platform/config"
	"lawsearch/internal/platform/logger"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	bolt "go.etcd.io/bbolt"
)

const (
	// DefaultBatchTimeout bounds one batch commit when the caller set no deadline
	DefaultBatchTimeout = 30 * time.Second

	// DefaultOpenTimeout bounds the wait for the file lock of an on-disk index
	DefaultOpenTimeout = 5 * time.Second
)

var (
	// ErrIndexExists is returned by Create when the name is taken
	ErrIndexExists = errors.New("search index already exists")

	// ErrIndexNotFound is returned when the named index was never created
	ErrIndexNotFound = errors.New("search index not found")

	// ErrEngineClosed is returned after Close, it matches bleve.ErrorIndexClosed
	ErrEngineClosed = fmt.Errorf("search engine closed: %w", bleve.ErrorIndexClosed)

	// ErrBatchTimeout is returned when a commit outlives its deadline
	ErrBatchTimeout = errors.New("batch commit timeout")

	// ErrIndexBusy is returned when another process holds the index files, it matches bolt.ErrTimeout
	ErrIndexBusy = fmt.Errorf("search index locked by another process: %w", bolt.ErrTimeout)
)

// Options configure an Engine
type Options struct {
	// Dir holds one sub directory per index, empty keeps indexes in memory
	Dir          string
	BatchTimeout time.Duration
	OpenTimeout  time.Duration
}

// OptionsFromConfig reads CORE_SEARCH_DIR, CORE_SEARCH_BATCH_TIMEOUT and CORE_SEARCH_OPEN_TIMEOUT
func OptionsFromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_SEARCH_")
	return Options{
		Dir:          c.MayString("DIR", ""),
		BatchTimeout: c.MayDuration("BATCH_TIMEOUT", DefaultBatchTimeout),
		OpenTimeout:  c.MayDuration("OPEN_TIMEOUT", DefaultOpenTimeout),
	}
}

// Persistent reports whether indexes outlive the process
func (o Options) Persistent() bool { return o.Dir != "" }

// Engine is safe for concurrent use
type Engine struct {
	opts Options

	mu      sync.Mutex
	indexes map[string]bleve.Index
	opening map[string]chan struct{}
	closed  bool
}

// New returns an Engine, nothing is opened until first use
func New(opts Options) *Engine {
	if opts.BatchTimeout <= 0 {
		opts.BatchTimeout = DefaultBatchTimeout
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = DefaultOpenTimeout
	}
	return &Engine{
		opts:    opts,
		indexes: map[string]bleve.Index{},
		opening: map[string]chan struct{}{},
	}
}

// Persistent reports whether this engine keeps its indexes on disk
func (e *Engine) Persistent() bool { return e.opts.Persistent() }

// Doc is one document to upsert
type Doc struct {
	ID   string
	Body any
}

// Failure is one rejected document
type Failure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkResult reports a Bulk call. Indexed counts only committed documents
type BulkResult struct {
	Indexed  int
	Failures []Failure
}

// Failed is the number of rejected documents
func (r BulkResult) Failed() int { return len(r.Failures) }

func (e *Engine) path(name string) string { return filepath.Join(e.opts.Dir, name) }

func (e *Engine) onDisk(name string) bool {
	if e.opts.Dir == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(e.path(name), "index_meta.json"))
	return err == nil
}

// get returns the open index for name, opening it from disk on first use
// one caller opens while the others wait on its guard or give up with ctx
func (e *Engine) get(ctx context.Context, name string) (bleve.Index, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		e.mu.Lock()
		if e.closed {
			e.mu.Unlock()
			return nil, ErrEngineClosed
		}
		if idx, ok := e.indexes[name]; ok {
			e.mu.Unlock()
			return idx, nil
		}
		if wait, ok := e.opening[name]; ok {
			e.mu.Unlock()
			select {
			case <-wait:
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if !e.onDisk(name) {
			e.mu.Unlock()
			return nil, ErrIndexNotFound
		}
		done := make(chan struct{})
		e.opening[name] = done
		e.mu.Unlock()

		idx, err := e.open(ctx, name)

		e.mu.Lock()
		delete(e.opening, name)
		close(done)
		if err == nil && e.closed {
			_ = idx.Close()
			idx, err = nil, ErrEngineClosed
		}
		if err == nil {
			e.indexes[name] = idx
		}
		e.mu.Unlock()
		return idx, err
	}
}

// lockWait is how long bolt may poll for the index file lock
func (e *Engine) lockWait(ctx context.Context) (time.Duration, error) {
	wait := e.opts.OpenTimeout
	if dl, ok := ctx.Deadline(); ok {
		left := time.Until(dl)
		if left <= 0 {
			return 0, context.DeadlineExceeded
		}
		if left < wait {
			wait = left
		}
	}
	return wait, nil
}

func (e *Engine) open(ctx context.Context, name string) (bleve.Index, error) {
	wait, err := e.lockWait(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := bleve.OpenUsing(e.path(name), map[string]interface{}{"bolt_timeout": wait.String()})
	if errors.Is(err, bolt.ErrTimeout) {
		return nil, fmt.Errorf("open index %s after %s: %w", name, wait, ErrIndexBusy)
	}
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", name, err)
	}
	return idx, nil
}

// Exists reports whether the named index has been created
func (e *Engine) Exists(ctx context.Context, name string) (bool, error) {
	_, err := e.get(ctx, name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrIndexNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Create builds the named index with m. The check and the create happen under
// one lock so concurrent callers see exactly one success and ErrIndexExists otherwise.
// An index already on disk counts as existing without being opened
func (e *Engine) Create(ctx context.Context, name string, m mapping.IndexMapping) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("index mapping %s: %w", name, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrEngineClosed
	}
	if _, ok := e.indexes[name]; ok {
		return ErrIndexExists
	}
	if _, ok := e.opening[name]; ok || e.onDisk(name) {
		return ErrIndexExists
	}

	var (
		idx bleve.Index
		err error
	)
	if e.opts.Dir == "" {
		idx, err = bleve.NewMemOnly(m)
	} else {
		if err = os.MkdirAll(e.opts.Dir, 0o755); err != nil {
			return fmt.Errorf("index dir: %w", err)
		}
		idx, err = bleve.New(e.path(name), m)
	}
	if err != nil {
		return fmt.Errorf("create index %s: %w", name, err)
	}
	e.indexes[name] = idx
	logger.Named("searchidx").Info().Str("index", name).Bool("in_memory", e.opts.Dir == "").Msg("index created")
	return nil
}

// Count returns the number of documents in the named index
func (e *Engine) Count(ctx context.Context, name string) (uint64, error) {
	idx, err := e.get(ctx, name)
	if err != nil {
		return 0, err
	}
	return idx.DocCount()
}

// Bulk upserts docs keyed by ID in one batch
// documents the mapping rejects are reported in Failures and left out of the commit
// a failed commit fails every document that was in it
func (e *Engine) Bulk(ctx context.Context, name string, docs []Doc) (BulkResult, error) {
	var res BulkResult
	if len(docs) == 0 {
		return res, nil
	}
	idx, err := e.get(ctx, name)
	if err != nil {
		return res, err
	}

	b := idx.NewBatch()
	staged := make([]string, 0, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			res.Failures = append(res.Failures, Failure{Reason: "empty document id"})
			continue
		}
		if err := b.Index(d.ID, d.Body); err != nil {
			res.Failures = append(res.Failures, Failure{ID: d.ID, Reason: err.Error()})
			continue
		}
		staged = append(staged, d.ID)
	}
	if len(staged) == 0 {
		return res, nil
	}

	if err := e.commit(ctx, idx, b); err != nil {
		if ctx.Err() != nil || errors.Is(err, ErrBatchTimeout) {
			return res, err
		}
		for _, id := range staged {
			res.Failures = append(res.Failures, Failure{ID: id, Reason: err.Error()})
		}
		return res, nil
	}
	res.Indexed = len(staged)
	return res, nil
}

// commit runs the batch under a deadline so a stuck commit cannot hang the caller
func (e *Engine) commit(ctx context.Context, idx bleve.Index, b *bleve.Batch) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.BatchTimeout)
		defer cancel()
	}
	done := make(chan error, 1)
	go func() { done <- idx.Batch(b) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrBatchTimeout, ctx.Err())
	}
}

// Search runs req against the named index, abandoning it when ctx ends
func (e *Engine) Search(ctx context.Context, name string, req *bleve.SearchRequest) (*bleve.SearchResult, error) {
	idx, err := e.get(ctx, name)
	if err != nil {
		return nil, err
	}
	return idx.SearchInContext(ctx, req)
}

// Document returns the stored fields of one document, nil when absent
func (e *Engine) Document(ctx context.Context, name, id string) (map[string]any, error) {
	req := bleve.NewSearchRequestOptions(bleve.NewDocIDQuery([]string{id}), 1, 0, false)
	req.Fields = []string{"*"}
	res, err := e.Search(ctx, name, req)
	if err != nil {
		return nil, err
	}
	if len(res.Hits) == 0 {
		return nil, nil
	}
	return res.Hits[0].Fields, nil
}

// Names lists open and on-disk indexes
func (e *Engine) Names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	seen := map[string]bool{}
	for n := range e.indexes {
		seen[n] = true
	}
	if e.opts.Dir != "" {
		entries, _ := os.ReadDir(e.opts.Dir)
		for _, ent := range entries {
			if ent.IsDir() && e.onDisk(ent.Name()) {
				seen[ent.Name()] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Close closes every open index. Safe to call twice
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	var errs []error
	for n, idx := range e.indexes {
		if err := idx.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", n, err))
		}
		delete(e.indexes, n)
	}
	return errors.Join(errs...)
}
