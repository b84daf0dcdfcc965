package repo

import (
	"context"
	"strings"
	"testing"
	"time"

	"lawsearch/internal/platform/store"
	"lawsearch/internal/services/querylog/domain"
)

type fakeCH struct {
	table string
	rows  [][]any
	ddl   []string
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	f.table = table
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeCH) Exec(_ context.Context, sql string, _ ...any) error {
	f.ddl = append(f.ddl, sql)
	return nil
}

func (f *fakeCH) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *fakeCH) Close() error                                              { return nil }

func TestNewCHValidatesTable(t *testing.T) {
	if _, err := NewCH(nil, ""); err == nil {
		t.Fatalf("nil handle accepted")
	}
	for _, bad := range []string{"x; drop table y", "a.b.c", "1abc"} {
		if _, err := NewCH(&fakeCH{}, bad); err == nil {
			t.Fatalf("table %q accepted", bad)
		}
	}
	r, err := NewCH(&fakeCH{}, "")
	if err != nil || r.Table() != DefaultTable {
		t.Fatalf("default table = %v, %v", r, err)
	}
	if _, err := NewCH(&fakeCH{}, "analytics.search_queries"); err != nil {
		t.Fatalf("qualified table: %v", err)
	}
}

func TestWriteBatchColumns(t *testing.T) {
	f := &fakeCH{}
	r, _ := NewCH(f, "q")
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.FixedZone("KST", 9*3600))

	if err := r.WriteBatch(context.Background(), nil); err != nil || f.rows != nil {
		t.Fatalf("empty batch should not insert")
	}
	err := r.WriteBatch(context.Background(), []domain.Entry{
		{ID: "00000000-0000-0000-0000-000000000001", At: at, Query: "사기", Limit: 10, Total: 3, Reindexed: true, ElapsedMs: -4},
	})
	if err != nil || f.table != "q" || len(f.rows) != 1 {
		t.Fatalf("insert table=%s rows=%d err=%v", f.table, len(f.rows), err)
	}
	row := f.rows[0]
	if len(row) != 11 {
		t.Fatalf("row has %d columns", len(row))
	}
	if ts := row[1].(time.Time); ts.Location() != time.UTC || !ts.Equal(at) {
		t.Fatalf("at = %v", ts)
	}
	if toks := row[3].([]string); toks == nil {
		t.Fatalf("nil tokens must become an empty array")
	}
	if row[7].(uint8) != 1 || row[8].(uint32) != 0 {
		t.Fatalf("reindexed=%v elapsed=%v", row[7], row[8])
	}
}

func TestEnsureTableDDL(t *testing.T) {
	f := &fakeCH{}
	r, _ := NewCH(f, "logs.q")
	if err := r.EnsureTable(context.Background()); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}
	if len(f.ddl) != 1 || !strings.Contains(f.ddl[0], "CREATE TABLE IF NOT EXISTS logs.q") {
		t.Fatalf("ddl = %v", f.ddl)
	}
}
