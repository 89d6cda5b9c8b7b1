package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/txreport/internal/transaction"
)

// JSONReader reads a file holding a JSON array of operations. A record that
// does not decode is skipped with a warning; the rest still load.
type JSONReader struct {
	logger *logrus.Logger
}

func (r *JSONReader) Read(_ context.Context, path string) ([]transaction.Transaction, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: %s: top-level value is not an array", ErrMalformed, path)
	}

	txs := make([]transaction.Transaction, 0, len(records))
	for i, record := range records {
		var tx transaction.Transaction
		if err := json.Unmarshal(record, &tx); err != nil {
			r.logger.WithError(err).WithFields(logrus.Fields{
				"path":  path,
				"index": i,
			}).Warn("Loader.Record.skipped")
			continue
		}
		txs = append(txs, tx)
	}

	debugDump(r.logger, path, txs)
	return txs, nil
}
