// Package records implements the canonical call-record pipeline: schema
// normalization, controlled-vocabulary mapping, derived-field computation,
// and the total record builder that composes them.
package records

import "time"

// SourceRow is one record as delivered by the external spreadsheet source:
// loosely typed values under arbitrarily cased column names. It only lives
// for the duration of a sync pass.
type SourceRow map[string]any

// CallRecord is the canonical, stable representation of a call/lead,
// independent of source formatting. Optional dates are nil when the source
// value is absent or unparseable; vocabulary fields are empty strings when
// the source value did not map onto the closed vocabulary.
type CallRecord struct {
	Name               string     `json:"name"`
	Email              string     `json:"email"`
	Number             string     `json:"number"`
	CountryName        string     `json:"country_name"`
	CountryGroup       string     `json:"country_group"`
	Remarks            string     `json:"remarks"`
	Agent              string     `json:"agent"`
	FirstCallDate      *time.Time `json:"first_call_date"`
	DateCalled         *time.Time `json:"date_called"`
	IsInitialCall      bool       `json:"is_initial_call"`
	Status             string     `json:"status"`
	CallOutcome        string     `json:"call_outcome"`
	NotesFromCall      string     `json:"notes_from_call"`
	PostCallEmail      string     `json:"post_call_email"`
	Tags               string     `json:"tags"`
	Issues             string     `json:"issues"`
	InterestedCategory string     `json:"interested_category"`
	SalesStatus        string     `json:"sales_status"`
	SalesAmount        float64    `json:"sales_amount"`
	NextFollowUpTime   string     `json:"next_follow_up_time"`
	NextFollowUpDate   *time.Time `json:"next_follow_up_date"`
	CallingStamp       *time.Time `json:"calling_stamp"`
	SignupDate         *time.Time `json:"signup_date"`
	TotalFollowUpCalls int        `json:"total_follow_up_calls"`
}

// DefaultFollowUpDateColumns is the date column set the follow-up counter
// sums over when no other set is configured.
var DefaultFollowUpDateColumns = []string{"next_follow_up_date"}

// DateByColumn resolves a canonical date column name to the record's field.
func (r *CallRecord) DateByColumn(column string) *time.Time {
	switch column {
	case "first_call_date":
		return r.FirstCallDate
	case "next_follow_up_date":
		return r.NextFollowUpDate
	case "calling_stamp":
		return r.CallingStamp
	case "signup_date":
		return r.SignupDate
	}
	return nil
}

// FollowUpDates returns the scheduling dates that participate in the
// follow-up call count, resolved from the same column list the builder
// counted at sync time. An empty list means the default set.
func (r *CallRecord) FollowUpDates(columns []string) []*time.Time {
	if len(columns) == 0 {
		columns = DefaultFollowUpDateColumns
	}
	dates := make([]*time.Time, 0, len(columns))
	for _, column := range columns {
		dates = append(dates, r.DateByColumn(column))
	}
	return dates
}

// Warning describes a recoverable per-field problem encountered while
// normalizing a source row. The row still yields a record; the warning is
// for operator visibility only.
type Warning struct {
	Field  string `json:"field"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// RowWarning ties a Warning to the index of the source row it came from.
type RowWarning struct {
	Row int `json:"row"`
	Warning
}
