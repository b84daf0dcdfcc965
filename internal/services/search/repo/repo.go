// Package repo maps the search domain onto a bleve index owned by searchidx
package repo

import (
	"context"
	"sync"

	"lawsearch/internal/platform/searchidx"
	"lawsearch/internal/services/search/domain"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Index implements domain.Index for one named bleve index
type Index struct {
	eng  *searchidx.Engine
	name string

	once    sync.Once
	mapping *mapping.IndexMappingImpl
	mapErr  error
}

// New binds the repo to an engine and an index name
func New(eng *searchidx.Engine, name string) *Index {
	if eng == nil {
		panic("search repo requires a non nil engine")
	}
	return &Index{eng: eng, name: name}
}

// Name returns the index name
func (x *Index) Name() string { return x.name }

// Exists reports whether the index has been created
func (x *Index) Exists(ctx context.Context) (bool, error) { return x.eng.Exists(ctx, x.name) }

// Create builds the index with the ruling mapping
func (x *Index) Create(ctx context.Context) error {
	x.once.Do(func() { x.mapping, x.mapErr = BuildMapping() })
	if x.mapErr != nil {
		return x.mapErr
	}
	return x.eng.Create(ctx, x.name, x.mapping)
}

// Count returns the document count
func (x *Index) Count(ctx context.Context) (uint64, error) { return x.eng.Count(ctx, x.name) }

// Upsert writes docs keyed by their id
func (x *Index) Upsert(ctx context.Context, docs []domain.Document) (domain.BulkResult, error) {
	batch := make([]searchidx.Doc, 0, len(docs))
	for _, d := range docs {
		batch = append(batch, searchidx.Doc{ID: d.ID, Body: body(d)})
	}
	res, err := x.eng.Bulk(ctx, x.name, batch)
	out := domain.BulkResult{Indexed: res.Indexed}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, domain.Failure{ID: f.ID, Reason: f.Reason})
	}
	return out, err
}

// Search runs the compiled plan sorted by score then id
// the id tie break keeps offset pages stable for an unchanged index
func (x *Index) Search(ctx context.Context, plan domain.Plan, limit, offset int) (domain.Page, error) {
	req := bleve.NewSearchRequestOptions(Compile(plan), limit, offset, false)
	req.Fields = []string{"*"}
	req.SortBy([]string{"-_score", "_id"})

	res, err := x.eng.Search(ctx, x.name, req)
	if err != nil {
		return domain.Page{}, err
	}
	page := domain.Page{Total: res.Total, Hits: make([]domain.Hit, 0, len(res.Hits))}
	for _, dm := range res.Hits {
		page.Hits = append(page.Hits, toHit(dm.ID, dm.Score, dm.Fields))
	}
	return page, nil
}
