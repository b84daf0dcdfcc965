// Package repo writes query log entries to ClickHouse
package repo

import (
	"context"
	"fmt"
	"regexp"

	"lawsearch/internal/platform/store"
	"lawsearch/internal/services/querylog/domain"
)

// DefaultTable receives entries when no table is configured
const DefaultTable = "search_queries"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// CH is the ClickHouse writer
type CH struct {
	ch    store.Clickhouse
	table string
}

// NewCH binds a writer to a table, the name may be database qualified
func NewCH(ch store.Clickhouse, table string) (*CH, error) {
	if ch == nil {
		return nil, fmt.Errorf("querylog: nil clickhouse handle")
	}
	if table == "" {
		table = DefaultTable
	}
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("querylog: invalid table name %q", table)
	}
	return &CH{ch: ch, table: table}, nil
}

// Table returns the target table
func (r *CH) Table() string { return r.table }

// EnsureTable creates the table when it does not exist
func (r *CH) EnsureTable(ctx context.Context) error {
	return r.ch.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS `+r.table+` (
			id          UUID,
			at          DateTime64(3, 'UTC'),
			query       String,
			tokens      Array(String),
			lim         UInt16,
			off         UInt32,
			total       UInt64,
			reindexed   UInt8,
			elapsed_ms  UInt32,
			error       String,
			request_id  String
		)
		ENGINE = MergeTree
		PARTITION BY toYYYYMM(at)
		ORDER BY (at, id)
		TTL toDateTime(at) + INTERVAL 90 DAY`)
}

// WriteBatch implements domain.Writer
func (r *CH) WriteBatch(ctx context.Context, xs []domain.Entry) error {
	if len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for _, e := range xs {
		rows = append(rows, Row(e))
	}
	return r.ch.Insert(ctx, r.table, rows)
}

// Row is the column order of the table
func Row(e domain.Entry) []any {
	tokens := e.Tokens
	if tokens == nil {
		tokens = []string{}
	}
	var reindexed uint8
	if e.Reindexed {
		reindexed = 1
	}
	return []any{
		e.ID,
		e.At.UTC(),
		e.Query,
		tokens,
		uint16(e.Limit),
		uint32(e.Offset),
		e.Total,
		reindexed,
		uint32(max(e.ElapsedMs, 0)),
		e.Err,
		e.RequestID,
	}
}
