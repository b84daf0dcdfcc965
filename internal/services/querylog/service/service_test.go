package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	kit "lawsearch/internal/platform/testkit"
	"lawsearch/internal/services/querylog/domain"
	sdomain "lawsearch/internal/services/search/domain"
)

type memWriter struct {
	mu      sync.Mutex
	batches [][]domain.Entry
	err     error
}

func (m *memWriter) WriteBatch(_ context.Context, xs []domain.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.batches = append(m.batches, append([]domain.Entry(nil), xs...))
	return nil
}

func (m *memWriter) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, b := range m.batches {
		n += len(b)
	}
	return n
}

func event(q string) sdomain.QueryEvent {
	return sdomain.QueryEvent{At: time.Now(), Query: q, Tokens: []string{q}, Limit: 10, Took: 12 * time.Millisecond}
}

func TestObserveMapsEvent(t *testing.T) {
	w := &memWriter{}
	s := New(w, Config{Buffer: 4, Batch: 10})
	s.newID = func() string { return "id" }

	ev := event("횡령")
	ev.Err = errors.New("engine down")
	ev.RequestID = "req-1"
	s.Observe(context.Background(), ev)
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(w.batches) != 1 || len(w.batches[0]) != 1 {
		t.Fatalf("batches = %v", w.batches)
	}
	e := w.batches[0][0]
	if e.ID != "id" || e.Query != "횡령" || e.ElapsedMs != 12 || e.Err != "engine down" || e.RequestID != "req-1" {
		t.Fatalf("entry = %+v", e)
	}
}

func TestFullBufferDrops(t *testing.T) {
	w := &memWriter{}
	s := New(w, Config{Buffer: 2, Batch: 100})
	for i := 0; i < 5; i++ {
		s.Observe(context.Background(), event("q"))
	}
	if s.Dropped() != 3 {
		t.Fatalf("dropped = %d", s.Dropped())
	}
	_ = s.Flush(context.Background())
	if w.total() != 2 {
		t.Fatalf("written = %d", w.total())
	}
}

func TestFlushSplitsBatches(t *testing.T) {
	w := &memWriter{}
	s := New(w, Config{Buffer: 10, Batch: 3})
	for i := 0; i < 7; i++ {
		s.Observe(context.Background(), event("q"))
	}
	if err := s.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(w.batches) != 3 || len(w.batches[2]) != 1 {
		t.Fatalf("batch sizes wrong: %d batches", len(w.batches))
	}
}

func TestFlushReportsWriteErrors(t *testing.T) {
	w := &memWriter{err: errors.New("ch down")}
	s := New(w, Config{Buffer: 4, Batch: 2})
	s.Observe(context.Background(), event("q"))
	if err := s.Flush(context.Background()); err == nil {
		t.Fatalf("expected write error")
	}
	if len(s.in) != 0 {
		t.Fatalf("failed batch should not be requeued")
	}
}

func TestRunFlushesOnFullBatchAndOnStop(t *testing.T) {
	w := &memWriter{}
	s := New(w, Config{Buffer: 16, Batch: 2, FlushEvery: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	s.Observe(ctx, event("a"))
	s.Observe(ctx, event("b"))
	kit.Eventually(t, 2*time.Second, func() bool { return w.total() == 2 }, "full batch not flushed")

	s.Observe(ctx, event("c"))
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v", err)
	}
	if w.total() != 3 {
		t.Fatalf("final flush wrote %d entries", w.total())
	}
}

func TestNop(t *testing.T) {
	var n Nop
	n.Observe(context.Background(), event("q"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.Run(ctx); !errors.Is(err, context.Canceled) || n.Flush(ctx) != nil || n.Dropped() != 0 {
		t.Fatalf("nop misbehaved")
	}
}

func TestNewPanicsWithoutWriter(t *testing.T) {
	kit.MustPanic(t, func() { New(nil, Config{}) })
}
