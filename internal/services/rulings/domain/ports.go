package domain

import (
	"context"
	"time"
)

// ServicePort is consumed by handlers, the CLI and the search indexer
type ServicePort interface {
	ByID(ctx context.Context, id string) (Ruling, error)
	ByCaseNumber(ctx context.Context, caseNumber string) (Ruling, error)
	ListAfter(ctx context.Context, after Cursor, limit int) ([]Ruling, error)
	Count(ctx context.Context) (int64, error)
	Upsert(ctx context.Context, in UpsertInput) (UpsertResult, error)
}

// Reader is the read side the indexer needs
type Reader interface {
	ByID(ctx context.Context, id string) (Ruling, error)
	ListAfter(ctx context.Context, after Cursor, limit int) ([]Ruling, error)
}

// ChangeNotifier hears about rulings written through the service
// implementations must not fail the write, the next full reindex repairs drift
type ChangeNotifier interface {
	RulingChanged(ctx context.Context, id string)
}

// NotifierFunc adapts a function to ChangeNotifier
type NotifierFunc func(ctx context.Context, id string)

// RulingChanged calls f
func (f NotifierFunc) RulingChanged(ctx context.Context, id string) { f(ctx, id) }

// Row is the normalized write form handed to the repo
type Row struct {
	ID         string
	CaseNumber string
	CaseDate   time.Time
	CaseName   string

	CaseResult         *string
	CaseCourt          *string
	CaseCourtCode      *int
	CaseType           *string
	CaseTypeCode       *int
	CaseResultType     *string
	CaseResultDecision *string
	CaseResultSummary  *string
	Reference          *string
	ReferenceCase      *string
	CasePrecedent      *string
}
