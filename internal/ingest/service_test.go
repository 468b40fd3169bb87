package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"salesdash_backend/internal/events"
	"salesdash_backend/internal/records"
	"salesdash_backend/platform/logger"
)

type fakeSource struct {
	rows []records.SourceRow
	err  error

	// gate, when set, blocks Fetch until closed; started signals that a
	// fetch is in flight.
	gate    chan struct{}
	started chan struct{}
}

func (f *fakeSource) Fetch(context.Context) ([]records.SourceRow, error) {
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	return f.rows, f.err
}

type fakeStore struct {
	mu       sync.Mutex
	replaced [][]records.CallRecord
	runs     []RunInfo
	err      error
}

func (f *fakeStore) ReplaceAll(_ context.Context, run RunInfo, recs []records.CallRecord) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	f.replaced = append(f.replaced, recs)
	f.runs = append(f.runs, run)
	return int64(len(recs)), nil
}

type capturedEvents struct {
	mu     sync.Mutex
	events []events.Event
}

func (c *capturedEvents) record(_ context.Context, e events.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
	return nil
}

func newTestService(src *fakeSource, store *fakeStore) (*Service, *capturedEvents) {
	bus := events.NewInMemoryBus(logger.New("development"))
	captured := &capturedEvents{}
	bus.Subscribe(events.SyncCompleted{}.EventName(), events.HandlerFunc(captured.record))
	bus.Subscribe(events.SyncFailed{}.EventName(), events.HandlerFunc(captured.record))

	builder := records.NewBuilder(records.BuilderOptions{})
	return NewService(src, store, builder, bus, logger.New("development"), "sales_data"), captured
}

func TestRunAdmitsOnlyRowsWithEmail(t *testing.T) {
	src := &fakeSource{rows: []records.SourceRow{
		{"Customer Name": "With Email", "Email": "a@example.com"},
		{"Customer Name": "No Email"},
		{"Customer Name": "Also With", "Email": "b@example.com"},
	}}
	store := &fakeStore{}
	svc, _ := newTestService(src, store)

	result, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Fetched != 3 || result.Inserted != 2 || result.Rejected != 1 {
		t.Fatalf("result = %+v", result)
	}
	if len(store.replaced) != 1 || len(store.replaced[0]) != 2 {
		t.Fatalf("store received %v", store.replaced)
	}
	if len(store.runs) != 1 || store.runs[0].ID != result.RunID {
		t.Fatalf("run audit = %+v, want run %s", store.runs, result.RunID)
	}
	if store.runs[0].Fetched != 3 || store.runs[0].Rejected != 1 {
		t.Fatalf("run audit counts = %+v", store.runs[0])
	}
}

func TestRunCoalescesConcurrentTriggers(t *testing.T) {
	src := &fakeSource{
		rows:    []records.SourceRow{{"Email": "a@example.com"}},
		gate:    make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	store := &fakeStore{}
	svc, _ := newTestService(src, store)

	type outcome struct {
		result SyncResult
		err    error
	}
	first := make(chan outcome, 1)
	go func() {
		r, err := svc.Run(context.Background())
		first <- outcome{r, err}
	}()
	<-src.started

	second := make(chan outcome, 1)
	go func() {
		r, err := svc.Run(context.Background())
		second <- outcome{r, err}
	}()
	// Let the second trigger join the in-flight pass before releasing it.
	time.Sleep(100 * time.Millisecond)
	close(src.gate)

	a, b := <-first, <-second
	if a.err != nil || b.err != nil {
		t.Fatalf("errs = %v, %v", a.err, b.err)
	}
	if len(store.replaced) != 1 {
		t.Fatalf("want one pass against the store, got %d", len(store.replaced))
	}
	if a.result.Coalesced {
		t.Fatalf("initiating trigger marked coalesced: %+v", a.result)
	}
	if !b.result.Coalesced {
		t.Fatalf("joining trigger not marked coalesced: %+v", b.result)
	}
}

func TestRunPublishesSyncCompleted(t *testing.T) {
	src := &fakeSource{rows: []records.SourceRow{{"Email": "a@example.com"}}}
	svc, captured := newTestService(src, &fakeStore{})

	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	waitFor(t, func() bool {
		captured.mu.Lock()
		defer captured.mu.Unlock()
		return len(captured.events) == 1
	})

	completed, ok := captured.events[0].(events.SyncCompleted)
	if !ok {
		t.Fatalf("event = %T", captured.events[0])
	}
	if completed.Table != "sales_data" || completed.Inserted != 1 {
		t.Fatalf("event = %+v", completed)
	}
}

func TestRunStoreFailurePublishesSyncFailed(t *testing.T) {
	src := &fakeSource{rows: []records.SourceRow{{"Email": "a@example.com"}}}
	store := &fakeStore{err: errors.New("connection reset")}
	svc, captured := newTestService(src, store)

	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatal("want error from failing store")
	}

	waitFor(t, func() bool {
		captured.mu.Lock()
		defer captured.mu.Unlock()
		return len(captured.events) == 1
	})

	if _, ok := captured.events[0].(events.SyncFailed); !ok {
		t.Fatalf("event = %T", captured.events[0])
	}
}

func TestRunSourceFailureDoesNotTouchStore(t *testing.T) {
	src := &fakeSource{err: errors.New("upstream down")}
	store := &fakeStore{}
	svc, _ := newTestService(src, store)

	if _, err := svc.Run(context.Background()); err == nil {
		t.Fatal("want source error")
	}
	if len(store.replaced) != 0 {
		t.Fatalf("store should be untouched, got %v", store.replaced)
	}
}

func TestRunIsIdempotentAcrossPasses(t *testing.T) {
	src := &fakeSource{rows: []records.SourceRow{{"Email": "a@example.com"}}}
	store := &fakeStore{}
	svc, _ := newTestService(src, store)

	first, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.Inserted != second.Inserted || first.Rejected != second.Rejected {
		t.Fatalf("passes differ: %+v vs %+v", first, second)
	}
	if len(store.replaced) != 2 {
		t.Fatalf("want two full replacements, got %d", len(store.replaced))
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
