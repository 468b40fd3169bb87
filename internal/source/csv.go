package source

import (
	"context"
	"encoding/csv"
	"os"

	"salesdash_backend/internal/records"
	"salesdash_backend/platform/apperr"
)

// CSVSource reads a local csv file with a header row.
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) Fetch(ctx context.Context) ([]records.SourceRow, error) {
	const op = "source.CSVSource.Fetch"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "csv open failed", err).WithOp(op)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	cells, err := reader.ReadAll()
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "csv read failed", err).WithOp(op)
	}

	if len(cells) == 0 {
		return nil, nil
	}

	return rowsFromCells(cells[0], cells[1:]), nil
}
