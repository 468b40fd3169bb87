// Package reporting provides the query side of the pipeline: filtering,
// aggregation and cached snapshots over the synchronized record table.
package reporting

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesdash_backend/internal/records"
	"salesdash_backend/platform/apperr"
)

// undefinedTable is the Postgres error code for a missing relation, which
// here means no sync pass has ever committed.
const undefinedTable = "42P01"

// Repository reads canonical records from the synchronized table.
type Repository struct {
	pool  *pgxpool.Pool
	table string
}

// NewRepository creates a repository reading from the given table.
func NewRepository(pool *pgxpool.Pool, table string) *Repository {
	return &Repository{pool: pool, table: table}
}

const selectColumns = `name, email, number, country_name, country_group,
	remarks, agent, first_call_date, date_called, is_initial_call, status,
	call_outcome, notes_from_call, post_call_email, tags, issues,
	interested_category, sales_status, sales_amount, next_follow_up_time,
	next_follow_up_date, calling_stamp, signup_date, total_follow_up_calls`

// SelectAll returns every stored record. A missing table maps to a not
// found error so the HTTP layer can report "no synchronized data" instead
// of an internal failure.
func (r *Repository) SelectAll(ctx context.Context) ([]records.CallRecord, error) {
	const op = "reporting.Repository.SelectAll"

	query := "SELECT " + selectColumns + " FROM " + pgx.Identifier{r.table}.Sanitize() + " ORDER BY id"
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, r.mapError(op, err)
	}
	defer rows.Close()

	var out []records.CallRecord
	for rows.Next() {
		var rec records.CallRecord
		if err := rows.Scan(
			&rec.Name, &rec.Email, &rec.Number, &rec.CountryName,
			&rec.CountryGroup, &rec.Remarks, &rec.Agent, &rec.FirstCallDate,
			&rec.DateCalled, &rec.IsInitialCall, &rec.Status, &rec.CallOutcome,
			&rec.NotesFromCall, &rec.PostCallEmail, &rec.Tags, &rec.Issues,
			&rec.InterestedCategory, &rec.SalesStatus, &rec.SalesAmount,
			&rec.NextFollowUpTime, &rec.NextFollowUpDate, &rec.CallingStamp,
			&rec.SignupDate, &rec.TotalFollowUpCalls,
		); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "record scan failed", err).WithOp(op)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, r.mapError(op, err)
	}

	return out, nil
}

func (r *Repository) mapError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
		return apperr.Wrap(apperr.KindNotFound, "no synchronized data", err).WithOp(op)
	}
	return apperr.Wrap(apperr.KindUnavailable, "record query failed", err).WithOp(op)
}
