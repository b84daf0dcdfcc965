package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	perr "lawsearch/internal/platform/errors"
	"lawsearch/internal/platform/searchidx"
	rdomain "lawsearch/internal/services/rulings/domain"
	"lawsearch/internal/services/search/domain"
	"lawsearch/internal/services/search/repo"
)

// memReader serves rulings in created_at, id order like the store does
type memReader struct {
	mu    sync.Mutex
	rows  []rdomain.Ruling
	pages int
}

func (m *memReader) add(r rdomain.Ruling) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Date(2024, 1, 1, 0, 0, len(m.rows), 0, time.UTC)
	}
	m.rows = append(m.rows, r)
	sort.Slice(m.rows, func(i, j int) bool {
		a, b := m.rows[i], m.rows[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

func (m *memReader) ByID(_ context.Context, id string) (rdomain.Ruling, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return rdomain.Ruling{}, perr.NotFoundf("ruling %s not found", id)
}

func (m *memReader) ListAfter(_ context.Context, after rdomain.Cursor, limit int) ([]rdomain.Ruling, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages++
	var out []rdomain.Ruling
	for _, r := range m.rows {
		if !after.IsZero() {
			if r.CreatedAt.Before(after.CreatedAt) || (r.CreatedAt.Equal(after.CreatedAt) && r.ID <= after.ID) {
				continue
			}
		}
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// rejectingIndex fails chosen ids the way the engine reports mapping rejections
type rejectingIndex struct {
	domain.Index
	reject map[string]bool
	bulks  int
}

func (x *rejectingIndex) Upsert(ctx context.Context, docs []domain.Document) (domain.BulkResult, error) {
	x.bulks++
	var keep []domain.Document
	var failed []domain.Failure
	for _, d := range docs {
		if x.reject[d.ID] {
			failed = append(failed, domain.Failure{ID: d.ID, Reason: "mapper_parsing_exception"})
			continue
		}
		keep = append(keep, d)
	}
	res, err := x.Index.Upsert(ctx, keep)
	res.Failures = append(res.Failures, failed...)
	return res, err
}

type recorder struct {
	mu     sync.Mutex
	events []domain.QueryEvent
}

func (r *recorder) Observe(_ context.Context, ev domain.QueryEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func str(s string) *string { return &s }

func ruling(id, name string) rdomain.Ruling {
	return rdomain.Ruling{
		ID:         id,
		CaseNumber: "2020다" + id,
		CaseDate:   time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC),
		CaseName:   name,
	}
}

func newTestSvc(t *testing.T, rd *memReader, opts Options) (*Svc, *repo.Index) {
	t.Helper()
	eng := searchidx.New(searchidx.Options{})
	t.Cleanup(func() { _ = eng.Close() })
	idx := repo.New(eng, "law")
	return New(idx, rd, opts), idx
}

func TestEnsureIndexIdempotent(t *testing.T) {
	s, idx := newTestSvc(t, &memReader{}, Options{})
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := s.EnsureIndex(ctx); err != nil {
			t.Fatalf("EnsureIndex #%d: %v", i+1, err)
		}
	}
	if ok, _ := idx.Exists(ctx); !ok {
		t.Fatalf("index missing after EnsureIndex")
	}
	if n, err := s.CountIndexedDocuments(ctx); err != nil || n != 0 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}

func TestCountWithoutIndexIsZero(t *testing.T) {
	s, _ := newTestSvc(t, &memReader{}, Options{})
	if n, err := s.CountIndexedDocuments(context.Background()); err != nil || n != 0 {
		t.Fatalf("Count = %d, %v", n, err)
	}
}

func TestEmptyQueryShortCircuits(t *testing.T) {
	rd := &memReader{}
	rd.add(ruling("1", "손해배상"))
	s, idx := newTestSvc(t, rd, Options{})
	for _, q := range []string{"", "   "} {
		res, err := s.Search(context.Background(), domain.Query{Q: q, Limit: 10})
		if err != nil || res.Total != 0 || res.Items == nil || len(res.Items) != 0 {
			t.Fatalf("Search(%q) = %+v, %v", q, res, err)
		}
	}
	if ok, _ := idx.Exists(context.Background()); ok || rd.pages != 0 {
		t.Fatalf("empty query touched the index or the store")
	}
}

func TestSearchValidatesPaging(t *testing.T) {
	s, _ := newTestSvc(t, &memReader{}, Options{})
	ctx := context.Background()

	cases := []struct {
		name  string
		q     domain.Query
		field string
	}{
		{"zero limit", domain.Query{Q: "x"}, "limit"},
		{"limit over 100", domain.Query{Q: "x", Limit: 101}, "limit"},
		{"negative offset", domain.Query{Q: "x", Limit: 10, Offset: -1}, "offset"},
		{"offset past window", domain.Query{Q: "x", Limit: 10, Offset: domain.MaxOffset + 1}, "offset"},
		{"offset near max int", domain.Query{Q: "손해배상", Limit: 10, Offset: math.MaxInt - 5}, "offset"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := s.Search(ctx, c.q)
			if e, ok := perr.As(err); !ok || e.Code() != perr.ErrorCodeValidation || e.Field() != c.field {
				t.Fatalf("err = %v", err)
			}
		})
	}
}

func TestSearchDeepestOffset(t *testing.T) {
	rd := &memReader{}
	rd.add(ruling("1", "손해배상 청구"))
	s, _ := newTestSvc(t, rd, Options{})

	res, err := s.Search(context.Background(), domain.Query{Q: "손해배상", Limit: 100, Offset: domain.MaxOffset})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Total != 1 || len(res.Items) != 0 || res.Offset != domain.MaxOffset {
		t.Fatalf("res = %+v", res)
	}
}

func TestSearchSelfHealsEmptyIndex(t *testing.T) {
	rd := &memReader{}
	rd.add(ruling("1", "손해배상 청구"))
	rd.add(ruling("2", "임대차 보증금 반환"))
	s, _ := newTestSvc(t, rd, Options{})
	rec := &recorder{}
	s.SetObserver(rec)

	res, err := s.Search(context.Background(), domain.Query{Q: "손해배상", Limit: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Total != 1 || len(res.Items) != 1 || res.Items[0].ID != "1" {
		t.Fatalf("res = %+v", res)
	}
	if n, _ := s.CountIndexedDocuments(context.Background()); n != 2 {
		t.Fatalf("index holds %d docs after self heal, want 2", n)
	}
	if len(rec.events) != 1 || !rec.events[0].Reindexed || rec.events[0].Total != 1 {
		t.Fatalf("events = %+v", rec.events)
	}

	if _, err := s.Search(context.Background(), domain.Query{Q: "보증금", Limit: 10}); err != nil {
		t.Fatalf("second Search: %v", err)
	}
	if rec.events[1].Reindexed {
		t.Fatalf("a filled index must not reindex again")
	}
}

func TestSearchPagination(t *testing.T) {
	rd := &memReader{}
	for i := 0; i < 15; i++ {
		rd.add(ruling(fmt.Sprintf("r%02d", i), "부당해고 구제 신청"))
	}
	rd.add(ruling("other", "소유권 이전 등기"))
	s, _ := newTestSvc(t, rd, Options{BatchSize: 4})

	ctx := context.Background()
	p1, err := s.Search(ctx, domain.Query{Q: "부당해고", Limit: 10})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	p2, err := s.Search(ctx, domain.Query{Q: "부당해고", Limit: 10, Offset: 10})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if p1.Total != 15 || p2.Total != 15 || p2.Offset != 10 || p2.Query != "부당해고" {
		t.Fatalf("p1=%d p2=%+v", p1.Total, p2)
	}
	seen := map[string]bool{}
	for _, h := range append(p1.Items, p2.Items...) {
		if seen[h.ID] || h.ID == "other" {
			t.Fatalf("unexpected or repeated id %s", h.ID)
		}
		seen[h.ID] = true
	}
	if len(seen) != 15 {
		t.Fatalf("covered %d items, want 15", len(seen))
	}
}

func TestCaseNameOutranksPrecedent(t *testing.T) {
	rd := &memReader{}
	byName := ruling("name", "명예훼손 손해배상")
	byPrecedent := ruling("prec", "약정금")
	byPrecedent.CasePrecedent = str("명예훼손 관련 선례 검토")
	rd.add(byPrecedent)
	rd.add(byName)
	s, _ := newTestSvc(t, rd, Options{})

	res, err := s.Search(context.Background(), domain.Query{Q: "명예훼손", Limit: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Items) != 2 || res.Items[0].ID != "name" {
		t.Fatalf("order = %+v", res.Items)
	}
	if *res.Items[0].Score <= *res.Items[1].Score {
		t.Fatalf("scores %v <= %v", *res.Items[0].Score, *res.Items[1].Score)
	}
}

func TestReindexAllPartialFailure(t *testing.T) {
	rd := &memReader{}
	for i := 0; i < 25; i++ {
		rd.add(ruling(fmt.Sprintf("r%02d", i), "사기"))
	}
	eng := searchidx.New(searchidx.Options{})
	t.Cleanup(func() { _ = eng.Close() })
	idx := &rejectingIndex{Index: repo.New(eng, "law"), reject: map[string]bool{"r03": true, "r21": true}}
	s := New(idx, rd, Options{MaxFailures: 1})

	res, err := s.ReindexAll(context.Background(), 10)
	if err != nil {
		t.Fatalf("ReindexAll: %v", err)
	}
	if res.Batches != 3 || idx.bulks != 3 {
		t.Fatalf("batches = %d bulks = %d", res.Batches, idx.bulks)
	}
	if res.Indexed != 23 || res.Failed != 2 || res.Indexed+res.Failed != 25 {
		t.Fatalf("res = %+v", res)
	}
	if len(res.Failures) != 1 || res.Failures[0].ID != "r03" {
		t.Fatalf("failure list should be capped: %+v", res.Failures)
	}
	if n, _ := s.CountIndexedDocuments(context.Background()); n != 23 {
		t.Fatalf("index count = %d", n)
	}
}

func TestReindexAllIsRepeatable(t *testing.T) {
	rd := &memReader{}
	for i := 0; i < 7; i++ {
		rd.add(ruling(fmt.Sprint(i), "횡령"))
	}
	s, _ := newTestSvc(t, rd, Options{})
	for i := 0; i < 2; i++ {
		res, err := s.ReindexAll(context.Background(), 0)
		if err != nil || res.Indexed != 7 || res.Index != "law" {
			t.Fatalf("run %d = %+v, %v", i, res, err)
		}
	}
	if n, _ := s.CountIndexedDocuments(context.Background()); n != 7 {
		t.Fatalf("count = %d", n)
	}
}

func TestIndexOne(t *testing.T) {
	rd := &memReader{}
	rd.add(ruling("a", "공갈"))
	s, _ := newTestSvc(t, rd, Options{})
	ctx := context.Background()

	res, err := s.IndexOne(ctx, "a")
	if err != nil || res.Indexed != 1 || res.ID != "a" {
		t.Fatalf("IndexOne(a) = %+v, %v", res, err)
	}
	res, err = s.IndexOne(ctx, "missing")
	if err != nil || res.Indexed != 0 || res.Detail != domain.DetailNotFound {
		t.Fatalf("IndexOne(missing) = %+v, %v", res, err)
	}
	if _, err := s.IndexOne(ctx, " "); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("blank id err = %v", err)
	}
	if n, _ := s.CountIndexedDocuments(ctx); n != 1 {
		t.Fatalf("count = %d", n)
	}
}

func TestIndexOneRejected(t *testing.T) {
	rd := &memReader{}
	rd.add(ruling("bad", "위증"))
	eng := searchidx.New(searchidx.Options{})
	t.Cleanup(func() { _ = eng.Close() })
	s := New(&rejectingIndex{Index: repo.New(eng, "law"), reject: map[string]bool{"bad": true}}, rd, Options{})

	res, err := s.IndexOne(context.Background(), "bad")
	if err != nil || res.Indexed != 0 || res.Detail != domain.DetailRejected || !strings.Contains(res.Reason, "mapper") {
		t.Fatalf("IndexOne = %+v, %v", res, err)
	}
}

func TestRulingChangedHonoursSyncOnWrite(t *testing.T) {
	rd := &memReader{}
	rd.add(ruling("w", "배임"))
	ctx := context.Background()

	off, _ := newTestSvc(t, rd, Options{})
	off.RulingChanged(ctx, "w")
	if n, _ := off.CountIndexedDocuments(ctx); n != 0 {
		t.Fatalf("sync off indexed %d docs", n)
	}

	on, _ := newTestSvc(t, rd, Options{SyncOnWrite: true})
	on.RulingChanged(ctx, "w")
	on.RulingChanged(ctx, "gone")
	if n, _ := on.CountIndexedDocuments(ctx); n != 1 {
		t.Fatalf("sync on count = %d", n)
	}
}

func TestSearchEngineFailurePropagates(t *testing.T) {
	rd := &memReader{}
	rd.add(ruling("1", "절도"))
	eng := searchidx.New(searchidx.Options{})
	s := New(repo.New(eng, "law"), rd, Options{})
	rec := &recorder{}
	s.SetObserver(rec)
	ctx := context.Background()
	if _, err := s.ReindexAll(ctx, 0); err != nil {
		t.Fatalf("ReindexAll: %v", err)
	}
	_ = eng.Close()

	_, err := s.Search(ctx, domain.Query{Q: "절도", Limit: 10})
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("closed engine err = %v", err)
	}
	if len(rec.events) != 1 || rec.events[0].Err == nil {
		t.Fatalf("failure not observed: %+v", rec.events)
	}
}
