package source

import (
	"context"

	"github.com/xuri/excelize/v2"

	"salesdash_backend/internal/records"
	"salesdash_backend/platform/apperr"
)

// XLSXSource reads a worksheet from a local xlsx workbook.
type XLSXSource struct {
	path      string
	worksheet string
}

func NewXLSXSource(path, worksheet string) *XLSXSource {
	return &XLSXSource{path: path, worksheet: worksheet}
}

func (s *XLSXSource) Fetch(ctx context.Context) ([]records.SourceRow, error) {
	const op = "source.XLSXSource.Fetch"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "workbook open failed", err).WithOp(op)
	}
	defer file.Close()

	cells, err := file.GetRows(s.worksheet)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUnavailable, "worksheet read failed", err).WithOp(op)
	}

	if len(cells) == 0 {
		return nil, nil
	}

	return rowsFromCells(cells[0], cells[1:]), nil
}
