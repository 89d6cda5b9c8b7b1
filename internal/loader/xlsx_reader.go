package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/carson-networks/txreport/internal/transaction"
)

// XLSXReader reads the first sheet of an Excel workbook with a header row.
type XLSXReader struct {
	logger *logrus.Logger
}

func (r *XLSXReader) Read(_ context.Context, path string) ([]transaction.Transaction, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	book, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s: no sheets", ErrMalformed, path)
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: empty sheet", ErrMalformed, path)
	}

	mapper, err := newRowMapper(rows[0], r.logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	txs := mapper.mapRows(rows[1:], 2)
	debugDump(r.logger, path, txs)
	return txs, nil
}
