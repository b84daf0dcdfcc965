//go:build integration_pg

package pg

import (
	"context"
	"testing"
	"time"

	"lawsearch/internal/platform/testkit/pgtest"

	"github.com/jackc/pgx/v5"
)

func TestOpenAgainstPostgres(t *testing.T) {
	dsn := pgtest.Start(t)
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	p, err := Open(ctx, Config{URL: dsn, MaxConns: 2, AppName: "lawsearch-pg-it"}, nil, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	conn, err := p.Pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, `create temporary table t (case_number text primary key, case_name text)`); err != nil {
		t.Fatalf("create temp table: %v", err)
	}
	if _, err := conn.Exec(ctx, `insert into t values ($1, $2)`, "2020다1234", "손해배상(기)"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	type row struct {
		CaseNumber string
		CaseName   string
	}
	rows, err := conn.Query(ctx, `select case_number, case_name from t`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	got, err := pgx.CollectRows(rows, pgx.RowToStructByPos[row])
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(got) != 1 || got[0].CaseName != "손해배상(기)" {
		t.Fatalf("rows = %#v", got)
	}

	var app string
	if err := conn.QueryRow(ctx, `select current_setting('application_name')`).Scan(&app); err != nil {
		t.Fatalf("app name: %v", err)
	}
	if app != "lawsearch-pg-it" {
		t.Fatalf("application_name = %q", app)
	}
}
