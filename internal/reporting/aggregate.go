package reporting

import (
	"sort"
	"strings"
	"time"

	"salesdash_backend/internal/records"
)

// Summary holds the headline metrics for a filtered record set. Follow-up
// counts are recomputed against the criteria's reference date, so the same
// stored data answers "how many follow-ups had been made by then".
type Summary struct {
	TotalEntries       int     `json:"total_entries"`
	TotalCalls         int     `json:"total_calls"`
	TotalInitialCalls  int     `json:"total_initial_calls"`
	TotalFollowUpCalls int     `json:"total_follow_up_calls"`
	TotalAnsweredCalls int     `json:"total_answered_calls"`
	AnsweredRate       float64 `json:"answered_rate"`
	TotalSales         float64 `json:"total_sales"`
}

// GroupStats holds the per-group breakdown for one agent or country.
type GroupStats struct {
	Key                string  `json:"key"`
	TotalInitialCalls  int     `json:"total_initial_calls"`
	TotalFollowUpCalls int     `json:"total_follow_up_calls"`
	TotalAnsweredCalls int     `json:"total_answered_calls"`
	AnsweredRate       float64 `json:"answered_rate"`
	SalesFollowUpRate  float64 `json:"sales_follow_up_rate"`
	TotalSales         float64 `json:"total_sales"`
	AvgSale            float64 `json:"avg_sale"`
}

// Count is one label with its occurrence count.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// followUpCount recomputes the follow-up calls for one record relative to
// the reference date, over the same column list the sync pass counted.
func followUpCount(rec records.CallRecord, ref time.Time, columns []string) int {
	return records.FollowUpCallCount(rec.FollowUpDates(columns), ref, false)
}

// Summarize computes headline metrics over a filtered record set. An empty
// followUpColumns means the default follow-up column set.
func Summarize(recs []records.CallRecord, ref time.Time, followUpColumns []string) Summary {
	var s Summary
	s.TotalEntries = len(recs)
	for _, rec := range recs {
		if rec.IsInitialCall {
			s.TotalInitialCalls++
		}
		s.TotalFollowUpCalls += followUpCount(rec, ref, followUpColumns)
		if rec.Status == records.StatusAnswered {
			s.TotalAnsweredCalls++
		}
		s.TotalSales += rec.SalesAmount
	}
	s.TotalCalls = s.TotalInitialCalls + s.TotalFollowUpCalls
	if len(recs) > 0 {
		s.AnsweredRate = float64(s.TotalAnsweredCalls) / float64(len(recs)) * 100
	}
	return s
}

// AgentStats computes the per-agent breakdown, sorted by initial calls
// descending. Groups with a blank agent are dropped.
func AgentStats(recs []records.CallRecord, ref time.Time, followUpColumns []string) []GroupStats {
	return groupStats(recs, ref, followUpColumns, func(rec records.CallRecord) string { return rec.Agent }, true)
}

// CountryStats computes the per-country breakdown, sorted by initial calls
// descending.
func CountryStats(recs []records.CallRecord, ref time.Time, followUpColumns []string) []GroupStats {
	return groupStats(recs, ref, followUpColumns, func(rec records.CallRecord) string { return rec.CountryName }, false)
}

func groupStats(recs []records.CallRecord, ref time.Time, followUpColumns []string, keyOf func(records.CallRecord) string, dropBlank bool) []GroupStats {
	type accumulator struct {
		stats        GroupStats
		entries      int
		salesFollows int
	}

	groups := make(map[string]*accumulator)
	order := make([]string, 0)

	for _, rec := range recs {
		key := keyOf(rec)
		if dropBlank && strings.TrimSpace(key) == "" {
			continue
		}
		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{stats: GroupStats{Key: key}}
			groups[key] = acc
			order = append(order, key)
		}
		acc.entries++
		if rec.IsInitialCall {
			acc.stats.TotalInitialCalls++
		}
		acc.stats.TotalFollowUpCalls += followUpCount(rec, ref, followUpColumns)
		if rec.Status == records.StatusAnswered {
			acc.stats.TotalAnsweredCalls++
		}
		if rec.SalesStatus == records.SalesFollowUp {
			acc.salesFollows++
		}
		acc.stats.TotalSales += rec.SalesAmount
	}

	out := make([]GroupStats, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		if acc.entries > 0 {
			acc.stats.AnsweredRate = float64(acc.stats.TotalAnsweredCalls) / float64(acc.entries) * 100
			acc.stats.SalesFollowUpRate = float64(acc.salesFollows) / float64(acc.entries) * 100
			acc.stats.AvgSale = acc.stats.TotalSales / float64(acc.entries)
		}
		out = append(out, acc.stats)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalInitialCalls > out[j].TotalInitialCalls
	})
	return out
}

// CountByOutcome tallies records per call outcome, most frequent first.
// Records with an empty outcome are skipped.
func CountByOutcome(recs []records.CallRecord) []Count {
	return countBy(recs, func(rec records.CallRecord) string { return rec.CallOutcome })
}

// CountByIssue tallies records per extracted issue, most frequent first.
func CountByIssue(recs []records.CallRecord) []Count {
	return countBy(recs, func(rec records.CallRecord) string { return rec.Issues })
}

func countBy(recs []records.CallRecord, keyOf func(records.CallRecord) string) []Count {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, rec := range recs {
		key := keyOf(rec)
		if key == "" {
			continue
		}
		if _, ok := counts[key]; !ok {
			order = append(order, key)
		}
		counts[key]++
	}

	out := make([]Count, 0, len(order))
	for _, key := range order {
		out = append(out, Count{Label: key, Count: counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
