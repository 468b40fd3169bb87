package reporting

import (
	"testing"
	"time"

	"salesdash_backend/internal/records"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleRecords() []records.CallRecord {
	return []records.CallRecord{
		{Agent: "Priya", CountryName: "India", Status: records.StatusAnswered, DateCalled: day(2024, 6, 1), IsInitialCall: true, SalesAmount: 100, SalesStatus: records.SalesFollowUp},
		{Agent: "Priya", CountryName: "Brazil", Status: records.StatusNotAnswered, DateCalled: day(2024, 6, 5), IsInitialCall: true},
		{Agent: "Marco", CountryName: "Brazil", Status: records.StatusAnswered, DateCalled: day(2024, 6, 10), IsInitialCall: true, SalesAmount: 250, SalesStatus: records.SalesConverted},
		{Agent: "Marco", CountryName: "Germany", Status: records.StatusVoicemail, DateCalled: nil},
	}
}

func TestCriteriaApplyDimensions(t *testing.T) {
	recs := sampleRecords()

	if got := (Criteria{Agent: "Priya"}).Apply(recs); len(got) != 2 {
		t.Fatalf("agent filter = %d records", len(got))
	}
	if got := (Criteria{Country: "Brazil"}).Apply(recs); len(got) != 2 {
		t.Fatalf("country filter = %d records", len(got))
	}
	if got := (Criteria{Status: records.StatusAnswered}).Apply(recs); len(got) != 2 {
		t.Fatalf("status filter = %d records", len(got))
	}
	if got := (Criteria{Agent: WildcardAll, Country: WildcardAll, Status: WildcardAll}).Apply(recs); len(got) != len(recs) {
		t.Fatalf("wildcard filter = %d records", len(got))
	}
}

func TestCriteriaApplyDateRangeInclusive(t *testing.T) {
	recs := sampleRecords()

	got := (Criteria{StartDate: day(2024, 6, 1), EndDate: day(2024, 6, 5)}).Apply(recs)
	if len(got) != 2 {
		t.Fatalf("range filter = %d records", len(got))
	}
	// Record without a call date is excluded once a bound is set.
	for _, rec := range got {
		if rec.DateCalled == nil {
			t.Fatal("nil date_called should not pass a bounded range")
		}
	}
}

func TestCriteriaApplyOrderIndependent(t *testing.T) {
	recs := sampleRecords()

	combined := Criteria{Agent: "Marco", Country: "Brazil", Status: records.StatusAnswered}
	byAgentFirst := (Criteria{Status: records.StatusAnswered}).Apply(
		(Criteria{Country: "Brazil"}).Apply(
			(Criteria{Agent: "Marco"}).Apply(recs)))

	got := combined.Apply(recs)
	if len(got) != len(byAgentFirst) {
		t.Fatalf("combined = %d, sequential = %d", len(got), len(byAgentFirst))
	}
	if len(got) != 1 || got[0].Agent != "Marco" {
		t.Fatalf("got = %v", got)
	}
}

func TestReferenceDate(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

	if got := (Criteria{}).ReferenceDate(now); !got.Equal(now) {
		t.Fatalf("open range ref = %v", got)
	}
	end := day(2024, 6, 15)
	if got := (Criteria{EndDate: end}).ReferenceDate(now); !got.Equal(*end) {
		t.Fatalf("bounded range ref = %v", got)
	}
}

func TestDefaultRange(t *testing.T) {
	r := DefaultRange(sampleRecords())
	if r.Min == nil || r.Max == nil {
		t.Fatalf("range = %+v", r)
	}
	if !r.Min.Equal(*day(2024, 6, 1)) || !r.Max.Equal(*day(2024, 6, 10)) {
		t.Fatalf("range = [%v, %v]", r.Min, r.Max)
	}

	empty := DefaultRange([]records.CallRecord{{Agent: "X"}})
	if empty.Min != nil || empty.Max != nil {
		t.Fatalf("empty range = %+v", empty)
	}
}
