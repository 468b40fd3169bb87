package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"salesdash_backend/internal/events"
	"salesdash_backend/internal/records"
	"salesdash_backend/platform/apperr"
	"salesdash_backend/platform/logger"
)

type fakeRepo struct {
	recs  []records.CallRecord
	err   error
	calls int
}

func (f *fakeRepo) SelectAll(context.Context) ([]records.CallRecord, error) {
	f.calls++
	return f.recs, f.err
}

func newTestService(t *testing.T, repo *fakeRepo) (*Service, events.Bus) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	log := logger.New("development")
	snapshot := NewSnapshot(client, "sales_data", time.Minute, log)
	bus := events.NewInMemoryBus(log)
	svc := NewService(repo, snapshot, log, nil)
	svc.SubscribeInvalidation(bus)
	return svc, bus
}

func TestServiceUsesSnapshotOnRepeatQueries(t *testing.T) {
	repo := &fakeRepo{recs: sampleRecords()}
	svc, _ := newTestService(t, repo)
	ctx := context.Background()

	if _, err := svc.Summary(ctx, Criteria{}); err != nil {
		t.Fatalf("first query: %v", err)
	}
	if _, err := svc.Agents(ctx, Criteria{}); err != nil {
		t.Fatalf("second query: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("repo hit %d times, want 1", repo.calls)
	}
}

func TestServiceInvalidatesOnSyncCompleted(t *testing.T) {
	repo := &fakeRepo{recs: sampleRecords()}
	svc, bus := newTestService(t, repo)
	ctx := context.Background()

	if _, err := svc.Summary(ctx, Criteria{}); err != nil {
		t.Fatalf("warm query: %v", err)
	}

	if err := bus.PublishSync(ctx, events.SyncCompleted{
		BaseEvent: events.NewBaseEvent(),
		Table:     "sales_data",
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if _, err := svc.Summary(ctx, Criteria{}); err != nil {
		t.Fatalf("post-sync query: %v", err)
	}
	if repo.calls != 2 {
		t.Fatalf("repo hit %d times, want 2 after invalidation", repo.calls)
	}
}

func TestServiceRecordsRecomputesFollowUps(t *testing.T) {
	recs := []records.CallRecord{
		{Email: "a@example.com", DateCalled: day(2024, 6, 1), NextFollowUpDate: day(2024, 6, 20), TotalFollowUpCalls: 1},
	}
	repo := &fakeRepo{recs: recs}
	svc, _ := newTestService(t, repo)

	// With the window ending before the follow-up date, the count drops
	// to zero even though the stored value says one.
	got, err := svc.Records(context.Background(), Criteria{EndDate: day(2024, 6, 10)})
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(got) != 1 || got[0].TotalFollowUpCalls != 0 {
		t.Fatalf("got = %+v", got)
	}
}

func TestServiceSurfacesNeverSyncedAsNotFound(t *testing.T) {
	repo := &fakeRepo{err: apperr.Wrap(apperr.KindNotFound, "no synchronized data",
		errors.New(`relation "sales_data" does not exist`))}
	svc, _ := newTestService(t, repo)

	_, err := svc.Summary(context.Background(), Criteria{})
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("err = %v, want not found kind", err)
	}
}

func TestServiceFilterOptions(t *testing.T) {
	repo := &fakeRepo{recs: sampleRecords()}
	svc, _ := newTestService(t, repo)

	options, err := svc.FilterOptions(context.Background())
	if err != nil {
		t.Fatalf("filter options: %v", err)
	}
	if options.Agents[0] != WildcardAll {
		t.Fatalf("agents = %v", options.Agents)
	}
	if len(options.Agents) != 3 || options.Agents[1] != "Marco" || options.Agents[2] != "Priya" {
		t.Fatalf("agents should be sorted distinct, got %v", options.Agents)
	}
	if options.DateRange.Min == nil || options.DateRange.Max == nil {
		t.Fatalf("date range = %+v", options.DateRange)
	}
}
