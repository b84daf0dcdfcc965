package domain

import "context"

// ServicePort is consumed by handlers, the CLI and the rulings write hook
type ServicePort interface {
	EnsureIndex(ctx context.Context) error
	ReindexAll(ctx context.Context, batchSize int) (ReindexResult, error)
	IndexOne(ctx context.Context, id string) (IndexOneResult, error)
	CountIndexedDocuments(ctx context.Context) (uint64, error)
	Search(ctx context.Context, q Query) (Result, error)
	IndexName() string
}

// Index is the search engine side of the service
type Index interface {
	Name() string
	Exists(ctx context.Context) (bool, error)
	// Create returns searchidx.ErrIndexExists when another caller won
	Create(ctx context.Context) error
	// Count returns searchidx.ErrIndexNotFound when the index is absent
	Count(ctx context.Context) (uint64, error)
	Upsert(ctx context.Context, docs []Document) (BulkResult, error)
	Search(ctx context.Context, plan Plan, limit, offset int) (Page, error)
}

// QueryObserver hears about every executed search, it must not block
type QueryObserver interface {
	Observe(ctx context.Context, ev QueryEvent)
}
