package source

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"salesdash_backend/internal/records"
	"salesdash_backend/platform/apperr"
)

// SheetsSource reads a worksheet through the Google Sheets API using a
// service-account credentials file.
type SheetsSource struct {
	credentialsFile string
	spreadsheetID   string
	worksheet       string
}

func NewSheetsSource(credentialsFile, spreadsheetID, worksheet string) *SheetsSource {
	return &SheetsSource{
		credentialsFile: credentialsFile,
		spreadsheetID:   spreadsheetID,
		worksheet:       worksheet,
	}
}

func (s *SheetsSource) Fetch(ctx context.Context) ([]records.SourceRow, error) {
	const op = "source.SheetsSource.Fetch"

	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(s.credentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "google sheets client unavailable", err).WithOp(op)
	}

	resp, err := service.Spreadsheets.Values.Get(s.spreadsheetID, s.worksheet).
		Context(ctx).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Do()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "worksheet fetch failed", err).WithOp(op)
	}

	if len(resp.Values) == 0 {
		return nil, nil
	}

	header := make([]string, len(resp.Values[0]))
	for i, cell := range resp.Values[0] {
		header[i] = headerText(cell)
	}

	// Data cells stay loosely typed. UNFORMATTED_VALUE delivers numeric
	// columns as JSON numbers; the normalizer formats those without the
	// exponent notation fmt would use, which matters for phone numbers.
	return rowsFromCells(header, resp.Values[1:]), nil
}

func headerText(cell any) string {
	switch typed := cell.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprint(typed)
	}
}
