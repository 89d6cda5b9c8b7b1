package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/txreport/internal/transaction"
)

// CSVReader reads a comma or semicolon separated statement with a header row.
type CSVReader struct {
	logger *logrus.Logger
}

func (r *CSVReader) Read(_ context.Context, path string) ([]transaction.Transaction, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	records, err := readCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: empty file", ErrMalformed, path)
	}

	mapper, err := newRowMapper(records[0], r.logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	txs := mapper.mapRows(records[1:], 2)
	debugDump(r.logger, path, txs)
	return txs, nil
}

// readCSV detects a ";" delimiter from the header line and reads every record.
func readCSV(file io.ReadSeeker) ([][]string, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(header) == 1 {
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		reader = csv.NewReader(file)
		reader.FieldsPerRecord = -1
		reader.Comma = ';'
		return reader.ReadAll()
	}

	rest, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return append([][]string{header}, rest...), nil
}
