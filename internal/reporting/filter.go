package reporting

import (
	"time"

	"salesdash_backend/internal/records"
)

// WildcardAll matches every value for a dimension filter.
const WildcardAll = "All"

// Criteria narrows the record set. String dimensions use exact match with
// WildcardAll (or empty) meaning no restriction; the date range is inclusive
// on both ends and applies to the date_called field.
type Criteria struct {
	Agent     string
	Country   string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
}

// ReferenceDate is the date against which follow-up call counts are
// recomputed: the range end when one is set, otherwise today. A record's
// stored count reflects the sync moment; reporting needs it relative to the
// window being viewed.
func (c Criteria) ReferenceDate(now time.Time) time.Time {
	if c.EndDate != nil {
		return *c.EndDate
	}
	return now
}

// Apply filters the records. Dimension filters are conjunctive; the result
// preserves input order. Records without a date_called value are excluded
// only when a date bound is set.
func (c Criteria) Apply(recs []records.CallRecord) []records.CallRecord {
	out := make([]records.CallRecord, 0, len(recs))
	for _, rec := range recs {
		if !matchDimension(c.Agent, rec.Agent) {
			continue
		}
		if !matchDimension(c.Country, rec.CountryName) {
			continue
		}
		if !matchDimension(c.Status, rec.Status) {
			continue
		}
		if !c.matchDateRange(rec.DateCalled) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchDimension(want, got string) bool {
	return want == "" || want == WildcardAll || want == got
}

func (c Criteria) matchDateRange(called *time.Time) bool {
	if c.StartDate == nil && c.EndDate == nil {
		return true
	}
	if called == nil {
		return false
	}
	day := records.DateOnly(*called)
	if c.StartDate != nil && day.Before(records.DateOnly(*c.StartDate)) {
		return false
	}
	if c.EndDate != nil && day.After(records.DateOnly(*c.EndDate)) {
		return false
	}
	return true
}

// DateRange is the span of date_called values present in a record set.
type DateRange struct {
	Min *time.Time `json:"min"`
	Max *time.Time `json:"max"`
}

// DefaultRange computes the full date_called span of the records. Both
// bounds are nil when no record carries a call date.
func DefaultRange(recs []records.CallRecord) DateRange {
	var r DateRange
	for _, rec := range recs {
		if rec.DateCalled == nil {
			continue
		}
		day := records.DateOnly(*rec.DateCalled)
		if r.Min == nil || day.Before(*r.Min) {
			d := day
			r.Min = &d
		}
		if r.Max == nil || day.After(*r.Max) {
			d := day
			r.Max = &d
		}
	}
	return r
}
