package module

import (
	"context"
	"testing"
	"time"

	"lawsearch/internal/modkit"
	mmodule "lawsearch/internal/modkit/module"
	"lawsearch/internal/platform/config"
	perr "lawsearch/internal/platform/errors"
	"lawsearch/internal/platform/searchidx"
	kit "lawsearch/internal/platform/testkit"
	rdomain "lawsearch/internal/services/rulings/domain"
)

type oneRuling struct{}

func (oneRuling) ByID(_ context.Context, id string) (rdomain.Ruling, error) {
	if id != "x" {
		return rdomain.Ruling{}, perr.NotFoundf("missing")
	}
	return rdomain.Ruling{ID: "x", CaseNumber: "1", CaseName: "강도", CaseDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}, nil
}

func (oneRuling) ListAfter(context.Context, rdomain.Cursor, int) ([]rdomain.Ruling, error) {
	return nil, nil
}

type hooks struct{ n rdomain.ChangeNotifier }

func (h *hooks) SetNotifier(n rdomain.ChangeNotifier) { h.n = n }

func TestFromConfigDefaults(t *testing.T) {
	t.Setenv("CORE_SEARCH_INDEX", "precedents")
	t.Setenv("CORE_SEARCH_SYNC_ON_WRITE", "false")
	o := FromConfig(config.New())
	if o.Index != "precedents" || o.SyncOnWrite || o.BatchSize != 1000 || o.MaxFailures != 100 || o.EngineTimeout != 10*time.Second {
		t.Fatalf("options = %+v", o)
	}
}

func TestNewWiresNotifier(t *testing.T) {
	eng := searchidx.New(searchidx.Options{})
	t.Cleanup(func() { _ = eng.Close() })
	h := &hooks{}
	m := New(modkit.Deps{Search: eng}, Options{Index: "law", SyncOnWrite: true},
		modkit.WithPorts(Needs{Rulings: oneRuling{}, Hooks: h}))

	if m.Name() != "search" || h.n == nil {
		t.Fatalf("name=%s notifier=%v", m.Name(), h.n)
	}
	h.n.RulingChanged(context.Background(), "x")

	svc := mmodule.MustPortsOf[Ports](m).Service
	if svc.IndexName() != "law" {
		t.Fatalf("index = %s", svc.IndexName())
	}
	if n, err := svc.CountIndexedDocuments(context.Background()); err != nil || n != 1 {
		t.Fatalf("count after write hook = %d, %v", n, err)
	}
}

func TestNewRequiresNeeds(t *testing.T) {
	eng := searchidx.New(searchidx.Options{})
	t.Cleanup(func() { _ = eng.Close() })
	kit.MustPanic(t, func() { New(modkit.Deps{Search: eng}, Options{}) })
	kit.MustPanic(t, func() { New(modkit.Deps{}, Options{}, modkit.WithPorts(Needs{Rulings: oneRuling{}})) })
}
