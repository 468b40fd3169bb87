package reporting

import (
	"context"
	"sort"
	"time"

	"salesdash_backend/internal/events"
	"salesdash_backend/internal/records"
	"salesdash_backend/platform/logger"
)

// RecordSource loads the full synchronized record set.
type RecordSource interface {
	SelectAll(ctx context.Context) ([]records.CallRecord, error)
}

// FilterOptions lists the selectable values for each filter dimension,
// derived from the current record set.
type FilterOptions struct {
	Agents    []string  `json:"agents"`
	Countries []string  `json:"countries"`
	Statuses  []string  `json:"statuses"`
	DateRange DateRange `json:"date_range"`
}

// Service answers reporting queries over the synchronized records.
type Service struct {
	repo            RecordSource
	snapshot        *Snapshot
	log             *logger.Logger
	followUpColumns []string
	now             func() time.Time
}

// NewService creates the reporting service. followUpColumns is the date
// column set the sync side counts follow-ups over; empty means the default.
func NewService(repo RecordSource, snapshot *Snapshot, log *logger.Logger, followUpColumns []string) *Service {
	return &Service{
		repo:            repo,
		snapshot:        snapshot,
		log:             log,
		followUpColumns: followUpColumns,
		now:             time.Now,
	}
}

// SubscribeInvalidation drops the snapshot whenever a sync pass commits.
func (s *Service) SubscribeInvalidation(bus events.Bus) {
	bus.Subscribe(events.SyncCompleted{}.EventName(), events.HandlerFunc(
		func(ctx context.Context, _ events.Event) error {
			s.snapshot.Invalidate(ctx)
			return nil
		}))
}

// load returns the full record set, preferring the snapshot cache.
func (s *Service) load(ctx context.Context) ([]records.CallRecord, error) {
	if recs, ok := s.snapshot.Get(ctx); ok {
		return recs, nil
	}

	recs, err := s.repo.SelectAll(ctx)
	if err != nil {
		return nil, err
	}
	s.snapshot.Set(ctx, recs)
	return recs, nil
}

// Records returns the filtered raw records. Follow-up counts are recomputed
// against the criteria's reference date.
func (s *Service) Records(ctx context.Context, criteria Criteria) ([]records.CallRecord, error) {
	recs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	filtered := criteria.Apply(recs)
	ref := criteria.ReferenceDate(s.now())
	for i := range filtered {
		filtered[i].TotalFollowUpCalls = followUpCount(filtered[i], ref, s.followUpColumns)
	}
	return filtered, nil
}

// Summary returns headline metrics for the filtered record set.
func (s *Service) Summary(ctx context.Context, criteria Criteria) (Summary, error) {
	recs, err := s.load(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(criteria.Apply(recs), criteria.ReferenceDate(s.now()), s.followUpColumns), nil
}

// Agents returns the per-agent breakdown for the filtered record set.
func (s *Service) Agents(ctx context.Context, criteria Criteria) ([]GroupStats, error) {
	recs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return AgentStats(criteria.Apply(recs), criteria.ReferenceDate(s.now()), s.followUpColumns), nil
}

// Countries returns the per-country breakdown for the filtered record set.
func (s *Service) Countries(ctx context.Context, criteria Criteria) ([]GroupStats, error) {
	recs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return CountryStats(criteria.Apply(recs), criteria.ReferenceDate(s.now()), s.followUpColumns), nil
}

// Outcomes returns the call outcome tally for the filtered record set.
func (s *Service) Outcomes(ctx context.Context, criteria Criteria) ([]Count, error) {
	recs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return CountByOutcome(criteria.Apply(recs)), nil
}

// Issues returns the extracted issue tally for the filtered record set.
func (s *Service) Issues(ctx context.Context, criteria Criteria) ([]Count, error) {
	recs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return CountByIssue(criteria.Apply(recs)), nil
}

// FilterOptions derives the selectable filter values from the full record
// set. Each dimension list starts with the wildcard entry.
func (s *Service) FilterOptions(ctx context.Context) (FilterOptions, error) {
	recs, err := s.load(ctx)
	if err != nil {
		return FilterOptions{}, err
	}

	return FilterOptions{
		Agents:    distinct(recs, func(r records.CallRecord) string { return r.Agent }),
		Countries: distinct(recs, func(r records.CallRecord) string { return r.CountryName }),
		Statuses:  distinct(recs, func(r records.CallRecord) string { return r.Status }),
		DateRange: DefaultRange(recs),
	}, nil
}

func distinct(recs []records.CallRecord, keyOf func(records.CallRecord) string) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, rec := range recs {
		key := keyOf(rec)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		values = append(values, key)
	}
	sort.Strings(values)
	return append([]string{WildcardAll}, values...)
}
