// Package ingest provides the synchronization bounded context: it pulls the
// full upstream dataset, builds canonical records and replaces the stored
// table wholesale inside one transaction.
package ingest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salesdash_backend/internal/records"
	"salesdash_backend/platform/apperr"
)

// recordColumns is the column order used for the bulk insert. It must match
// the schema statement below and the scan order in the reporting repository.
var recordColumns = []string{
	"name", "email", "number", "country_name", "country_group", "remarks",
	"agent", "first_call_date", "date_called", "is_initial_call", "status",
	"call_outcome", "notes_from_call", "post_call_email", "tags", "issues",
	"interested_category", "sales_status", "sales_amount",
	"next_follow_up_time", "next_follow_up_date", "calling_stamp",
	"signup_date", "total_follow_up_calls",
}

const schemaTemplate = `CREATE TABLE IF NOT EXISTS %s (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	number TEXT NOT NULL DEFAULT '',
	country_name TEXT NOT NULL DEFAULT '',
	country_group TEXT NOT NULL DEFAULT '',
	remarks TEXT NOT NULL DEFAULT '',
	agent TEXT NOT NULL DEFAULT '',
	first_call_date DATE,
	date_called DATE,
	is_initial_call BOOLEAN NOT NULL DEFAULT FALSE,
	status TEXT NOT NULL DEFAULT '',
	call_outcome TEXT NOT NULL DEFAULT '',
	notes_from_call TEXT NOT NULL DEFAULT '',
	post_call_email TEXT NOT NULL DEFAULT '',
	tags TEXT NOT NULL DEFAULT '',
	issues TEXT NOT NULL DEFAULT '',
	interested_category TEXT NOT NULL DEFAULT '',
	sales_status TEXT NOT NULL DEFAULT '',
	sales_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
	next_follow_up_time TEXT NOT NULL DEFAULT '',
	next_follow_up_date DATE,
	calling_stamp DATE,
	signup_date DATE,
	total_follow_up_calls INTEGER NOT NULL DEFAULT 0
)`

// indexedColumns get a covering index alongside the table, in the same
// transaction that creates it.
var indexedColumns = []string{"agent", "country_name", "date_called"}

const insertRunSQL = `INSERT INTO sync_runs (run_id, table_name, fetched, inserted, rejected)
	VALUES ($1, $2, $3, $4, $5)`

// RunInfo identifies one sync pass for the audit trail.
type RunInfo struct {
	ID       string
	Fetched  int
	Rejected int
}

// Repository persists canonical records in Postgres.
type Repository struct {
	pool  *pgxpool.Pool
	table string
}

// NewRepository creates a repository writing to the given table.
func NewRepository(pool *pgxpool.Pool, table string) *Repository {
	return &Repository{pool: pool, table: table}
}

// ReplaceAll replaces the table contents with the given records atomically:
// ensure schema, truncate, bulk insert, record the run, commit. A failure at
// any step rolls the whole pass back, leaving the previous snapshot intact.
// The record table is created here rather than by a migration, so a missing
// table always means no pass has ever committed.
func (r *Repository) ReplaceAll(ctx context.Context, run RunInfo, recs []records.CallRecord) (int64, error) {
	const op = "ingest.Repository.ReplaceAll"

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindUnavailable, "transaction begin failed", err).WithOp(op)
	}
	defer tx.Rollback(ctx)

	table := pgx.Identifier{r.table}.Sanitize()

	if _, err := tx.Exec(ctx, fmt.Sprintf(schemaTemplate, table)); err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "schema ensure failed", err).WithOp(op)
	}

	for _, col := range indexedColumns {
		name := pgx.Identifier{fmt.Sprintf("idx_%s_%s", r.table, col)}.Sanitize()
		stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			name, table, pgx.Identifier{col}.Sanitize())
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return 0, apperr.Wrap(apperr.KindInternal, "index ensure failed", err).WithOp(op)
		}
	}

	if _, err := tx.Exec(ctx, "TRUNCATE TABLE "+table); err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "truncate failed", err).WithOp(op)
	}

	inserted, err := tx.CopyFrom(ctx,
		pgx.Identifier{r.table},
		recordColumns,
		pgx.CopyFromSlice(len(recs), func(i int) ([]any, error) {
			rec := recs[i]
			return []any{
				rec.Name, rec.Email, rec.Number, rec.CountryName,
				rec.CountryGroup, rec.Remarks, rec.Agent, rec.FirstCallDate,
				rec.DateCalled, rec.IsInitialCall, rec.Status, rec.CallOutcome,
				rec.NotesFromCall, rec.PostCallEmail, rec.Tags, rec.Issues,
				rec.InterestedCategory, rec.SalesStatus, rec.SalesAmount,
				rec.NextFollowUpTime, rec.NextFollowUpDate, rec.CallingStamp,
				rec.SignupDate, rec.TotalFollowUpCalls,
			}, nil
		}),
	)
	if err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "bulk insert failed", err).WithOp(op)
	}

	if _, err := tx.Exec(ctx, insertRunSQL,
		run.ID, r.table, run.Fetched, inserted, run.Rejected); err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "run audit insert failed", err).WithOp(op)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, apperr.Wrap(apperr.KindInternal, "transaction commit failed", err).WithOp(op)
	}

	return inserted, nil
}

// Count returns the number of stored records, or an error if the table has
// never been created by a successful sync pass.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	const op = "ingest.Repository.Count"

	var count int64
	query := "SELECT COUNT(*) FROM " + pgx.Identifier{r.table}.Sanitize()
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, apperr.Wrap(apperr.KindNotFound, "no synchronized data", err).WithOp(op)
	}
	return count, nil
}
