// Package loader reads bank statements from JSON, CSV and XLSX files into
// transactions.
package loader

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/txreport/internal/transaction"
)

var (
	ErrNotFound          = errors.New("file not found")
	ErrMalformed         = errors.New("malformed file")
	ErrMissingColumns    = errors.New("missing required columns")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Source identifies the kind of statement file.
type Source int

const (
	SourceJSON Source = iota + 1
	SourceCSV
	SourceXLSX
)

func (s Source) String() string {
	switch s {
	case SourceJSON:
		return "json"
	case SourceCSV:
		return "csv"
	case SourceXLSX:
		return "xlsx"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Reader loads every transaction stored at path.
type Reader interface {
	Read(ctx context.Context, path string) ([]transaction.Transaction, error)
}

// Readers maps each source to its Reader.
type Readers map[Source]Reader

// NewReaders returns the readers for all supported sources.
func NewReaders(logger *logrus.Logger) Readers {
	return Readers{
		SourceJSON: &JSONReader{logger: logger},
		SourceCSV:  &CSVReader{logger: logger},
		SourceXLSX: &XLSXReader{logger: logger},
	}
}

// For returns the reader for source.
func (r Readers) For(source Source) (Reader, error) {
	reader, ok := r[source]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, source)
	}
	return reader, nil
}

// SourceForPath picks a source from the file extension.
func SourceForPath(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceJSON, nil
	case ".csv":
		return SourceCSV, nil
	case ".xlsx", ".xls":
		return SourceXLSX, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

func debugDump(logger *logrus.Logger, path string, txs []transaction.Transaction) {
	if logger == nil || !logger.IsLevelEnabled(logrus.DebugLevel) || len(txs) == 0 {
		return
	}
	logger.WithFields(logrus.Fields{
		"path":  path,
		"count": len(txs),
		"first": spew.Sdump(txs[0]),
	}).Debug("Loader.Read.sample")
}
