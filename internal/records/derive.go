package records

import (
	"regexp"
	"strings"
	"time"
)

// IssueNone is the issues value for records whose tags match no catalog entry.
const IssueNone = "N/A"

// Country group labels.
const (
	GroupSouthAsia    = "South Asia"
	GroupLatinAmerica = "Latin America"
	GroupMiddleEast   = "Middle East"
	GroupOther        = "Other"
)

// issueCatalog is the fixed set of issue labels extracted from free-text
// tags. Matching is case-insensitive, first leftmost match wins.
var issueCatalog = []string{
	"Language Barriers",
	"KYC Issues & Complaints",
	"Bonus or Promotions",
	"Network, Inaudible Conversation",
	"Interested",
	"Spread, Leverage & Platform Concerns",
	"Future Deposit",
	"Withdrawal complaint",
	"Wrong number claim",
	"Busy",
	"Geographical permission needed",
	"VOIP restricted country",
	"Payment method issue",
	"Platform Issue",
	"Answered by Another Person",
	"Explorer",
	"Partners Program",
}

var outcomeCatalog = []string{
	StatusAnswered,
	StatusNotAnswered,
	StatusInvalidNumber,
	StatusVoicemail,
}

var (
	issueRe   = catalogRegexp(issueCatalog)
	outcomeRe = catalogRegexp(outcomeCatalog)
)

var countryGroups = map[string]string{
	"India":                GroupSouthAsia,
	"Pakistan":             GroupSouthAsia,
	"Bangladesh":           GroupSouthAsia,
	"Brazil":               GroupLatinAmerica,
	"Argentina":            GroupLatinAmerica,
	"Colombia":             GroupLatinAmerica,
	"Iraq":                 GroupMiddleEast,
	"Saudi Arabia":         GroupMiddleEast,
	"United Arab Emirates": GroupMiddleEast,
}

func catalogRegexp(labels []string) *regexp.Regexp {
	quoted := make([]string, len(labels))
	for i, label := range labels {
		quoted[i] = regexp.QuoteMeta(label)
	}
	return regexp.MustCompile("(?i)(" + strings.Join(quoted, "|") + ")")
}

// canonicalLabel maps a case-insensitive regex match back to the catalog's
// canonical casing.
func canonicalLabel(match string, labels []string) string {
	for _, label := range labels {
		if strings.EqualFold(match, label) {
			return label
		}
	}
	return match
}

// ExtractIssue returns the first issue-catalog label matched inside the tags
// field, or IssueNone when tags are empty or match nothing.
func ExtractIssue(tags string) string {
	if tags == "" {
		return IssueNone
	}
	match := issueRe.FindString(tags)
	if match == "" {
		return IssueNone
	}
	return canonicalLabel(match, issueCatalog)
}

// CallOutcome returns the first status-vocabulary label matched inside the
// status value, or empty when there is none.
func CallOutcome(status string) string {
	if status == "" {
		return ""
	}
	match := outcomeRe.FindString(status)
	if match == "" {
		return ""
	}
	return canonicalLabel(match, outcomeCatalog)
}

// CountryGroup is a pure function of the country name via a fixed membership
// table; unlisted countries map to Other.
func CountryGroup(countryName string) string {
	if group, ok := countryGroups[countryName]; ok {
		return group
	}
	return GroupOther
}

// FollowUpCallCount counts the follow-up date fields that are set and fall
// on or before the reference date. The reference date must be supplied by
// the caller: "today" during synchronization, the active filter's end date
// during reporting-time recomputation.
func FollowUpCallCount(dates []*time.Time, ref time.Time, dedupe bool) int {
	refDay := DateOnly(ref)
	count := 0
	seen := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		if d == nil {
			continue
		}
		day := DateOnly(*d)
		if day.After(refDay) {
			continue
		}
		if dedupe {
			if _, dup := seen[day]; dup {
				continue
			}
			seen[day] = struct{}{}
		}
		count++
	}
	return count
}

// DateOnly truncates a timestamp to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
