package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lawsearch/internal/modkit/httpkit"
	phttp "lawsearch/internal/platform/net/http"
	"lawsearch/internal/services/search/domain"

	"github.com/go-chi/chi/v5"
)

type fakeSvc struct {
	lastQuery domain.Query
	lastBatch int
	lastID    string
}

func (f *fakeSvc) EnsureIndex(context.Context) error { return nil }

func (f *fakeSvc) ReindexAll(_ context.Context, n int) (domain.ReindexResult, error) {
	f.lastBatch = n
	return domain.ReindexResult{Indexed: 3, Index: "law", Batches: 1}, nil
}

func (f *fakeSvc) IndexOne(_ context.Context, id string) (domain.IndexOneResult, error) {
	f.lastID = id
	if id == "missing" {
		return domain.IndexOneResult{Detail: domain.DetailNotFound}, nil
	}
	return domain.IndexOneResult{Indexed: 1, ID: id}, nil
}

func (f *fakeSvc) CountIndexedDocuments(context.Context) (uint64, error) { return 42, nil }

func (f *fakeSvc) Search(_ context.Context, q domain.Query) (domain.Result, error) {
	f.lastQuery = q
	if err := httpkit.Validate(q); err != nil {
		return domain.Result{}, err
	}
	score := 1.5
	return domain.Result{Query: q.Q, Limit: q.Limit, Offset: q.Offset, Total: 1, Items: []domain.Hit{
		{Document: domain.Document{ID: "r1", CaseName: "손해배상"}, Score: &score},
	}}, nil
}

func (f *fakeSvc) IndexName() string { return "law" }

func newRouter(f *fakeSvc) stdhttp.Handler {
	mux := chi.NewRouter()
	r := phttp.AdaptChi(mux)
	r.Route("/search", func(sr httpkit.Router) { Register(sr, f) })
	return mux
}

func do(t *testing.T, h stdhttp.Handler, method, target, body string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s %s: %v raw=%s", method, target, err, rec.Body.String())
	}
	return rec.Code, env
}

func TestSearchGet(t *testing.T) {
	f := &fakeSvc{}
	code, env := do(t, newRouter(f), stdhttp.MethodGet, "/search?q=%EC%86%90%ED%95%B4%EB%B0%B0%EC%83%81&offset=10", "")
	if code != 200 {
		t.Fatalf("status = %d env=%v", code, env)
	}
	if f.lastQuery.Q != "손해배상" || f.lastQuery.Limit != domain.DefaultLimit || f.lastQuery.Offset != 10 {
		t.Fatalf("query = %+v", f.lastQuery)
	}
	data := env["data"].(map[string]any)
	items := data["items"].([]any)
	if data["total"].(float64) != 1 || items[0].(map[string]any)["score"].(float64) != 1.5 {
		t.Fatalf("data = %v", data)
	}
}

func TestSearchGetRejectsBadPaging(t *testing.T) {
	f := &fakeSvc{}
	if code, _ := do(t, newRouter(f), stdhttp.MethodGet, "/search?q=x&limit=abc", ""); code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("non numeric limit status = %d", code)
	}
	for _, target := range []string{
		"/search?q=x&limit=500",
		"/search?q=x&limit=0",
		"/search?q=x&offset=10001",
		"/search?q=x&offset=9223372036854775802",
	} {
		if code, env := do(t, newRouter(f), stdhttp.MethodGet, target, ""); code != stdhttp.StatusBadRequest {
			t.Fatalf("%s status = %d env=%v", target, code, env)
		}
	}
	if f.lastQuery.Limit != 10 || f.lastQuery.Offset != 9223372036854775802 {
		t.Fatalf("explicit paging must reach the service unchanged, got %+v", f.lastQuery)
	}
}

func TestSearchPost(t *testing.T) {
	f := &fakeSvc{}
	code, _ := do(t, newRouter(f), stdhttp.MethodPost, "/search", `{"q":"임대차","limit":20}`)
	if code != 200 || f.lastQuery.Q != "임대차" || f.lastQuery.Limit != 20 {
		t.Fatalf("status=%d query=%+v", code, f.lastQuery)
	}
	if code, _ := do(t, newRouter(f), stdhttp.MethodPost, "/search", `{"q":"x","limit":101}`); code != stdhttp.StatusBadRequest {
		t.Fatalf("limit 101 body status = %d", code)
	}
	if code, _ := do(t, newRouter(f), stdhttp.MethodPost, "/search", `{"q":"x"}`); code != 200 || f.lastQuery.Limit != domain.DefaultLimit || f.lastQuery.Offset != 0 {
		t.Fatalf("default paging status=%d query=%+v", code, f.lastQuery)
	}
	if code, _ := do(t, newRouter(f), stdhttp.MethodPost, "/search", `{"q":"x","limit":0}`); code != stdhttp.StatusBadRequest {
		t.Fatalf("explicit zero limit status = %d", code)
	}
	if code, _ := do(t, newRouter(f), stdhttp.MethodPost, "/search", `{"q":"x","offset":20000}`); code != stdhttp.StatusBadRequest {
		t.Fatalf("offset past window status = %d", code)
	}
	if code, _ := do(t, newRouter(f), stdhttp.MethodPost, "/search", `{"query":"x"}`); code != stdhttp.StatusBadRequest {
		t.Fatalf("unknown field status = %d", code)
	}
}

func TestIndexEndpoints(t *testing.T) {
	f := &fakeSvc{}
	h := newRouter(f)

	code, env := do(t, h, stdhttp.MethodPost, "/search/index?batch_size=250", "")
	if code != 200 || f.lastBatch != 250 || env["data"].(map[string]any)["indexed"].(float64) != 3 {
		t.Fatalf("reindex status=%d batch=%d env=%v", code, f.lastBatch, env)
	}

	code, env = do(t, h, stdhttp.MethodPost, "/search/index/missing", "")
	if code != 200 || env["data"].(map[string]any)["detail"] != "not_found" {
		t.Fatalf("index one status=%d env=%v", code, env)
	}

	code, env = do(t, h, stdhttp.MethodGet, "/search/index/count", "")
	data := env["data"].(map[string]any)
	if code != 200 || data["count"].(float64) != 42 || data["index"] != "law" {
		t.Fatalf("count status=%d env=%v", code, env)
	}
	if f.lastID != "missing" {
		t.Fatalf("count must not be routed as an id, got %q", f.lastID)
	}
}
