package service

import (
	"context"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/txreport/internal/loader"
	"github.com/carson-networks/txreport/internal/processing"
	"github.com/carson-networks/txreport/internal/transaction"
)

// TransactionService loads statements and narrows them down to what the user asked for.
type TransactionService struct {
	readers   loader.Readers
	reference string
	logger    *logrus.Logger
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(readers loader.Readers, reference string, logger *logrus.Logger) *TransactionService {
	return &TransactionService{readers: readers, reference: reference, logger: logger}
}

// Load returns the transactions stored at path, or an empty slice when the
// file cannot be read for any reason. The reason is logged, not returned.
func (s *TransactionService) Load(ctx context.Context, source loader.Source, path string) []transaction.Transaction {
	reader, err := s.readers.For(source)
	if err != nil {
		s.logger.WithError(err).WithField("source", source.String()).Warn("TransactionService.Load.noReader")
		return []transaction.Transaction{}
	}

	txs, err := reader.Read(ctx, path)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"source": source.String(),
			"path":   path,
		}).Warn("TransactionService.Load.failed")
		return []transaction.Transaction{}
	}
	return txs
}

// Apply runs the query: state filter, optional date sort, optional
// reference-currency filter, then optional description filter. Only the
// sort can fail, when a transaction has no date or an unreadable one.
func (s *TransactionService) Apply(_ context.Context, txs []transaction.Transaction, query Query) ([]transaction.Transaction, error) {
	state := query.State
	if state == "" {
		state = processing.DefaultState
	}
	result := processing.FilterByState(txs, state)

	if query.Sort != SortNone {
		sorted, err := processing.SortByDate(result, query.Sort == SortDescending)
		if err != nil {
			return nil, err
		}
		result = sorted
	}

	if query.ReferenceOnly {
		result = slices.Collect(processing.FilterByCurrency(result, s.reference))
	}

	if query.DescriptionFilter != "" {
		result = processing.FilterByDescription(result, query.DescriptionFilter)
	}

	return result, nil
}
