//go:build integration_pg

package repo

import (
	"context"
	"testing"
	"time"

	perr "lawsearch/internal/platform/errors"
	"lawsearch/internal/platform/store"
	"lawsearch/internal/platform/testkit/pgtest"
	"lawsearch/internal/services/rulings/domain"
)

func openRepo(t *testing.T) (Repo, *store.Store) {
	t.Helper()
	dsn := pgtest.Start(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	st, err := store.Open(ctx, store.Config{
		AppName: "lawsearch-rulings-it",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 4, ConnectRetries: 5, PingTimeout: 5 * time.Second},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	if _, err := st.PG.Exec(ctx, Schema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return NewPG().Bind(st.PG), st
}

func row(id, num, day, name string) domain.Row {
	d, _ := time.Parse("2006-01-02", day)
	return domain.Row{ID: id, CaseNumber: num, CaseDate: d, CaseName: name}
}

func TestUpsertByNaturalKey(t *testing.T) {
	r, _ := openRepo(t)
	ctx := context.Background()

	first, err := r.Upsert(ctx, row("a", "2020다1", "2021-01-01", "손해배상"))
	if err != nil || !first.Created || first.ID != "a" {
		t.Fatalf("first upsert = %+v, %v", first, err)
	}

	// same natural key keeps the original id and reports an update
	second, err := r.Upsert(ctx, row("b", "2020다1", "2021-01-01", "부당이득"))
	if err != nil || second.Created || second.ID != "a" {
		t.Fatalf("second upsert = %+v, %v", second, err)
	}
	got, err := r.ByID(ctx, "a")
	if err != nil || got.CaseName != "부당이득" || got.UpdatedAt.Before(got.CreatedAt) {
		t.Fatalf("ByID = %+v, %v", got, err)
	}

	// a different date is a different ruling
	if res, err := r.Upsert(ctx, row("c", "2020다1", "2022-05-05", "항소심")); err != nil || !res.Created {
		t.Fatalf("third upsert = %+v, %v", res, err)
	}
	latest, err := r.ByCaseNumber(ctx, "2020다1")
	if err != nil || latest.ID != "c" {
		t.Fatalf("ByCaseNumber = %+v, %v", latest, err)
	}
	if n, err := r.Count(ctx); err != nil || n != 2 {
		t.Fatalf("Count = %d, %v", n, err)
	}
	if _, err := r.ByID(ctx, "missing"); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("missing err = %v", err)
	}
}

func TestListAfterKeyset(t *testing.T) {
	r, _ := openRepo(t)
	ctx := context.Background()

	for i, id := range []string{"r1", "r2", "r3", "r4", "r5"} {
		day := time.Date(2020, 1, i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		if _, err := r.Upsert(ctx, row(id, "2019가"+id, day, "사건 "+id)); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	seen := map[string]bool{}
	var cur domain.Cursor
	pages := 0
	for {
		batch, err := r.ListAfter(ctx, cur, 2)
		if err != nil {
			t.Fatalf("ListAfter: %v", err)
		}
		if len(batch) == 0 {
			break
		}
		pages++
		for _, x := range batch {
			if seen[x.ID] {
				t.Fatalf("duplicate %s across pages", x.ID)
			}
			seen[x.ID] = true
		}
		cur = domain.Next(batch[len(batch)-1])
	}
	if len(seen) != 5 || pages != 3 {
		t.Fatalf("seen=%d pages=%d", len(seen), pages)
	}
}

func TestUpsertTooLongIsInvalidArgument(t *testing.T) {
	r, _ := openRepo(t)
	long := make([]rune, 300)
	for i := range long {
		long[i] = '가'
	}
	_, err := r.Upsert(context.Background(), row("x", "2020다9", "2021-01-01", string(long)))
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
}
