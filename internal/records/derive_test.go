package records

import (
	"testing"
	"time"
)

func TestExtractIssue(t *testing.T) {
	cases := []struct {
		tags string
		want string
	}{
		{"customer reports withdrawal complaint again", "Withdrawal complaint"},
		{"LANGUAGE BARRIERS on second call", "Language Barriers"},
		{"wrong number claim; busy", "Wrong number claim"},
		{"pleasant chat, no category", IssueNone},
		{"", IssueNone},
	}
	for _, c := range cases {
		if got := ExtractIssue(c.tags); got != c.want {
			t.Fatalf("ExtractIssue(%q) = %q, want %q", c.tags, got, c.want)
		}
	}
}

func TestCallOutcomeLeftmostMatchWins(t *testing.T) {
	// "Not answered" contains "answered"; the leftmost match starts at 0,
	// so the longer label must win.
	if got := CallOutcome("Not answered"); got != StatusNotAnswered {
		t.Fatalf("CallOutcome(Not answered) = %q", got)
	}
	if got := CallOutcome("Answered"); got != StatusAnswered {
		t.Fatalf("CallOutcome(Answered) = %q", got)
	}
	if got := CallOutcome(""); got != "" {
		t.Fatalf("CallOutcome(empty) = %q", got)
	}
	if got := CallOutcome("escalated"); got != "" {
		t.Fatalf("CallOutcome(escalated) = %q", got)
	}
}

func TestCountryGroup(t *testing.T) {
	cases := map[string]string{
		"India":                GroupSouthAsia,
		"Bangladesh":           GroupSouthAsia,
		"Brazil":               GroupLatinAmerica,
		"United Arab Emirates": GroupMiddleEast,
		"Germany":              GroupOther,
		"":                     GroupOther,
	}
	for in, want := range cases {
		if got := CountryGroup(in); got != want {
			t.Fatalf("CountryGroup(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFollowUpCallCount(t *testing.T) {
	day := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}
	ref := time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)

	dates := []*time.Time{
		day(2024, 6, 10),
		day(2024, 6, 15), // same day as ref counts
		day(2024, 6, 20), // future, excluded
		nil,
	}
	if got := FollowUpCallCount(dates, ref, false); got != 2 {
		t.Fatalf("count = %d, want 2", got)
	}

	duplicated := []*time.Time{day(2024, 6, 10), day(2024, 6, 10)}
	if got := FollowUpCallCount(duplicated, ref, false); got != 2 {
		t.Fatalf("without dedupe count = %d, want 2", got)
	}
	if got := FollowUpCallCount(duplicated, ref, true); got != 1 {
		t.Fatalf("with dedupe count = %d, want 1", got)
	}
}
