// Package repokit holds the seams repos and services share: tx runners, binders and begin hooks
package repokit

import (
	"context"

	"lawsearch/internal/platform/store"
)

// store aliases so repos only import repokit
type (
	Queryer    = store.RowQuerier
	TxRunner   = store.TxRunner
	Rows       = store.Rows
	Row        = store.Row
	CommandTag = store.CommandTag
)

// Binder hands out a repo bound to a pool or to an open tx
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// WithTx runs fn in one transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
