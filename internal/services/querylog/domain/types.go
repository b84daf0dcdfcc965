// Package domain holds the query log entry and its sink contract
package domain

import (
	"context"
	"time"
)

// Entry is one executed search
type Entry struct {
	ID        string
	At        time.Time
	Query     string
	Tokens    []string
	Limit     int
	Offset    int
	Total     uint64
	Reindexed bool
	ElapsedMs int64
	Err       string
	RequestID string
}

// Writer persists entries in batches
type Writer interface {
	WriteBatch(ctx context.Context, xs []Entry) error
}

// RecorderPort is the running side of the query log
type RecorderPort interface {
	Run(ctx context.Context) error
	Flush(ctx context.Context) error
	Dropped() uint64
}
