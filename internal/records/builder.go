package records

import (
	"time"

	"salesdash_backend/platform/phone"
)

const unknownValue = "Unknown"

// BuilderOptions configure the canonical record builder.
type BuilderOptions struct {
	// FollowUpDateColumns are the normalized date columns that participate
	// in the follow-up call count. Defaults to next_follow_up_date.
	FollowUpDateColumns []string
	// DedupeFollowUpDates collapses follow-up columns holding the same date
	// into a single counted call. Off by default.
	DedupeFollowUpDates bool
	// PhoneRegion is the default region for normalizing numbers without a
	// country prefix. Empty leaves prefix-less numbers as delivered.
	PhoneRegion string
}

// Builder composes normalization, vocabulary mapping and field derivation
// into one canonical record per source row. It is total: it never drops a
// row and never fails; rows that cannot be meaningfully normalized still
// yield a record with defaulted fields.
type Builder struct {
	opts BuilderOptions
}

// NewBuilder creates a builder with the given options.
func NewBuilder(opts BuilderOptions) *Builder {
	if len(opts.FollowUpDateColumns) == 0 {
		opts.FollowUpDateColumns = DefaultFollowUpDateColumns
	}
	return &Builder{opts: opts}
}

// Build converts one source row into a canonical record. ref is the
// reference date for the follow-up call count. Recoverable per-field
// problems are returned as warnings alongside the record.
func (b *Builder) Build(row SourceRow, ref time.Time) (CallRecord, []Warning) {
	normalized := NormalizeRow(row)
	warnings := normalized.Warnings

	status, ok := MapStatus(normalized.Fields["status"])
	if !ok {
		warnings = append(warnings, Warning{Field: "status", Value: normalized.Fields["status"], Reason: "not in vocabulary"})
	}
	salesStatus, ok := MapSalesStatus(normalized.Fields["sales_status"])
	if !ok {
		warnings = append(warnings, Warning{Field: "sales_status", Value: normalized.Fields["sales_status"], Reason: "not in vocabulary"})
	}

	countryName := normalized.Fields["country_name"]
	if countryName == "" {
		countryName = unknownValue
	}
	agent := normalized.Fields["agent"]
	if agent == "" {
		agent = unknownValue
	}

	firstCallDate := normalized.Dates["first_call_date"]

	record := CallRecord{
		Name:               normalized.Fields["name"],
		Email:              normalized.Fields["email"],
		Number:             phone.NormalizeE164(normalized.Fields["number"], b.opts.PhoneRegion),
		CountryName:        countryName,
		CountryGroup:       CountryGroup(countryName),
		Remarks:            normalized.Fields["remarks"],
		Agent:              agent,
		FirstCallDate:      firstCallDate,
		DateCalled:         firstCallDate,
		IsInitialCall:      firstCallDate != nil,
		Status:             status,
		CallOutcome:        CallOutcome(status),
		NotesFromCall:      normalized.Fields["notes_from_call"],
		PostCallEmail:      normalized.Fields["post_call_email"],
		Tags:               normalized.Fields["tags"],
		Issues:             ExtractIssue(normalized.Fields["tags"]),
		InterestedCategory: normalized.Fields["interested_category"],
		SalesStatus:        salesStatus,
		SalesAmount:        normalized.SalesAmount,
		NextFollowUpTime:   normalized.Fields["next_follow_up_time"],
		NextFollowUpDate:   normalized.Dates["next_follow_up_date"],
		CallingStamp:       normalized.Dates["calling_stamp"],
		SignupDate:         normalized.Dates["signup_date"],
	}

	record.TotalFollowUpCalls = FollowUpCallCount(
		b.followUpDates(normalized), ref, b.opts.DedupeFollowUpDates)

	return record, warnings
}

// BuildAll converts all source rows in order. Exactly one record comes back
// per row; warnings carry the originating row index.
func (b *Builder) BuildAll(rows []SourceRow, ref time.Time) ([]CallRecord, []RowWarning) {
	built := make([]CallRecord, 0, len(rows))
	var warnings []RowWarning
	for i, row := range rows {
		record, rowWarnings := b.Build(row, ref)
		built = append(built, record)
		for _, w := range rowWarnings {
			warnings = append(warnings, RowWarning{Row: i, Warning: w})
		}
	}
	return built, warnings
}

func (b *Builder) followUpDates(normalized NormalizedRow) []*time.Time {
	dates := make([]*time.Time, 0, len(b.opts.FollowUpDateColumns))
	for _, col := range b.opts.FollowUpDateColumns {
		dates = append(dates, normalized.Dates[col])
	}
	return dates
}
