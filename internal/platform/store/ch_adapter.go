package store

import (
	"context"
	"errors"

	"lawsearch/internal/platform/store/ch"
)

// chConn is the part of *ch.CH the adapter uses
type chConn interface {
	Insert(ctx context.Context, table string, rows [][]any) error
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (ch.Rows, error)
	Ping(ctx context.Context) error
	Close() error
}

// clickhouseAdapter adapts the ch client to the Clickhouse seam
type clickhouseAdapter struct {
	inner chConn
}

var _ Clickhouse = (*clickhouseAdapter)(nil)

func newCHAdapter(c chConn) Clickhouse { return &clickhouseAdapter{inner: c} }

func (a *clickhouseAdapter) Insert(ctx context.Context, table string, rows [][]any) error {
	if table == "" {
		return errors.New("store: clickhouse insert needs a table")
	}
	return a.inner.Insert(ctx, table, rows)
}

func (a *clickhouseAdapter) Exec(ctx context.Context, sql string, args ...any) error {
	return a.inner.Exec(ctx, sql, args...)
}

func (a *clickhouseAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := a.inner.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{r: r}, nil
}

func (a *clickhouseAdapter) Ping(ctx context.Context) error {
	if a == nil || a.inner == nil {
		return errors.New("store: nil clickhouse adapter")
	}
	return a.inner.Ping(ctx)
}

func (a *clickhouseAdapter) Close() error { return a.inner.Close() }

// chRows drops the Close error so ch rows satisfy Rows
type chRows struct{ r ch.Rows }

func (r chRows) Next() bool             { return r.r.Next() }
func (r chRows) Scan(dest ...any) error { return r.r.Scan(dest...) }
func (r chRows) Err() error             { return r.r.Err() }
func (r chRows) Close()                 { _ = r.r.Close() }
func (r chRows) Columns() []string      { return r.r.Columns() }
