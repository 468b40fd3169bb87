// Package source fetches raw call rows from the configured upstream:
// a Google Sheets worksheet, an xlsx workbook, or a csv file. Every
// implementation returns the same loosely typed rows; everything after the
// fetch is source-agnostic.
package source

import (
	"context"
	"fmt"

	"salesdash_backend/internal/records"
	"salesdash_backend/platform/config"
)

// Source delivers the full current contents of the upstream dataset. A
// fetch is a complete snapshot, not a delta; the sync layer replaces the
// table wholesale with whatever comes back.
type Source interface {
	Fetch(ctx context.Context) ([]records.SourceRow, error)
}

// New builds the source selected by configuration.
func New(cfg config.SourceConfig) (Source, error) {
	switch cfg.GetSourceKind() {
	case "sheets":
		return NewSheetsSource(cfg.GetSheetsCredentialsFile(), cfg.GetSpreadsheetID(), cfg.GetWorksheetName()), nil
	case "xlsx":
		return NewXLSXSource(cfg.GetSourceFile(), cfg.GetWorksheetName()), nil
	case "csv":
		return NewCSVSource(cfg.GetSourceFile()), nil
	default:
		return nil, fmt.Errorf("unsupported source kind %q", cfg.GetSourceKind())
	}
}

// rowsFromCells converts a header row plus data rows into keyed source
// rows. Columns beyond the header width are dropped; short rows are padded
// with empty cells. Duplicate header names keep the last column, matching
// how spreadsheet clients resolve them. Cell values pass through untouched:
// the record normalizer owns all type coercion, so a numeric cell must
// arrive as its original number, not a pre-rendered string.
func rowsFromCells[Cell any](header []string, data [][]Cell) []records.SourceRow {
	rows := make([]records.SourceRow, 0, len(data))
	for _, cells := range data {
		row := make(records.SourceRow, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
