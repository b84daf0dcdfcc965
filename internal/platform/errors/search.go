package errors

// search engine helpers: classify bleve failures the same way FromPostgres classifies pgx ones

import (
	"context"
	stderrs "errors"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	bolt "go.etcd.io/bbolt"
)

// SearchErrorCode maps a search engine error to an ErrorCode
// anything the engine returns that is not an availability problem is a rejection
func SearchErrorCode(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	switch {
	case stderrs.Is(err, context.DeadlineExceeded),
		stderrs.Is(err, context.Canceled),
		stderrs.Is(err, bleve.ErrorIndexClosed),
		stderrs.Is(err, bleve.ErrorIndexMetaMissing),
		stderrs.Is(err, bleve.ErrorIndexMetaCorrupt),
		stderrs.Is(err, bolt.ErrTimeout):
		return ErrorCodeUnavailable
	}
	return ErrorCodeSearch
}

// FromSearch wraps a search engine error with a mapped ErrorCode. nil stays nil
func FromSearch(err error, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, SearchErrorCode(err), msg)
}

// FromSearchf is the formatted variant of FromSearch
func FromSearchf(err error, format string, a ...any) error {
	return FromSearch(err, fmt.Sprintf(format, a...))
}
