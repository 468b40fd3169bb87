package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"salesdash_backend/internal/events"
	"salesdash_backend/internal/records"
	"salesdash_backend/internal/source"
	"salesdash_backend/platform/logger"
)

// Store persists a full snapshot of canonical records together with the
// audit row identifying the pass that produced it.
type Store interface {
	ReplaceAll(ctx context.Context, run RunInfo, recs []records.CallRecord) (int64, error)
}

// SyncResult summarizes one synchronization pass.
type SyncResult struct {
	RunID      string  `json:"run_id"`
	Fetched    int     `json:"fetched"`
	Inserted   int     `json:"inserted"`
	Rejected   int     `json:"rejected"`
	Warnings   int     `json:"warnings"`
	DurationMs float64 `json:"duration_ms"`
	// Coalesced is true when this caller joined a pass another trigger had
	// already started, rather than executing its own.
	Coalesced bool `json:"coalesced"`
}

// Service runs full-refresh synchronization passes. Concurrent triggers are
// coalesced: while a pass is in flight, additional callers wait for its
// result instead of starting a second pass against the same table.
type Service struct {
	source  source.Source
	store   Store
	builder *records.Builder
	bus     events.Bus
	log     *logger.Logger
	table   string
	group   singleflight.Group
	now     func() time.Time
}

// NewService creates the synchronization service.
func NewService(src source.Source, store Store, builder *records.Builder, bus events.Bus, log *logger.Logger, table string) *Service {
	return &Service{
		source:  src,
		store:   store,
		builder: builder,
		bus:     bus,
		log:     log,
		table:   table,
		now:     time.Now,
	}
}

// Run executes one synchronization pass, or joins the pass already in
// flight.
func (s *Service) Run(ctx context.Context) (SyncResult, error) {
	// singleflight reports shared=true to the executing caller too, so the
	// closure marks which caller actually ran the pass.
	var ran bool
	value, err, _ := s.group.Do(s.table, func() (any, error) {
		ran = true
		return s.run(ctx)
	})
	if err != nil {
		return SyncResult{}, err
	}
	result := value.(SyncResult)
	result.Coalesced = !ran
	return result, nil
}

func (s *Service) run(ctx context.Context) (SyncResult, error) {
	runID := uuid.New()
	ctx = context.WithValue(ctx, logger.SyncRunIDKey, runID.String())
	log := s.log.WithContext(ctx)
	start := s.now()

	rows, err := s.source.Fetch(ctx)
	if err != nil {
		s.fail(ctx, log, runID, start, err)
		return SyncResult{}, err
	}

	built, warnings := s.builder.BuildAll(rows, s.now())
	for _, w := range warnings {
		log.FieldWarning(w.Row, w.Field, w.Reason)
	}

	// Rows without an email address are not admitted into the store; the
	// address is the only stable identity the upstream sheet provides.
	admitted := make([]records.CallRecord, 0, len(built))
	for _, rec := range built {
		if rec.Email == "" {
			continue
		}
		admitted = append(admitted, rec)
	}
	rejected := len(built) - len(admitted)

	inserted, err := s.store.ReplaceAll(ctx, RunInfo{
		ID:       runID.String(),
		Fetched:  len(rows),
		Rejected: rejected,
	}, admitted)
	if err != nil {
		s.fail(ctx, log, runID, start, err)
		return SyncResult{}, err
	}

	duration := s.now().Sub(start)
	log.SyncEvent(runID.String(), int(inserted), rejected, float64(duration.Milliseconds()), nil)

	s.bus.Publish(ctx, events.SyncCompleted{
		BaseEvent: events.NewBaseEvent(),
		RunID:     runID,
		Table:     s.table,
		Inserted:  int(inserted),
		Rejected:  rejected,
		Duration:  duration,
	})

	return SyncResult{
		RunID:      runID.String(),
		Fetched:    len(rows),
		Inserted:   int(inserted),
		Rejected:   rejected,
		Warnings:   len(warnings),
		DurationMs: float64(duration.Milliseconds()),
	}, nil
}

func (s *Service) fail(ctx context.Context, log *logger.Logger, runID uuid.UUID, start time.Time, err error) {
	duration := s.now().Sub(start)
	log.SyncEvent(runID.String(), 0, 0, float64(duration.Milliseconds()), err)
	s.bus.Publish(ctx, events.SyncFailed{
		BaseEvent: events.NewBaseEvent(),
		RunID:     runID,
		Table:     s.table,
		Reason:    err.Error(),
	})
}
