package loader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/txreport/internal/transaction"
)

// Canonical column names. Dotted aliases from flattened JSON exports map
// onto them.
const (
	colID           = "id"
	colState        = "state"
	colDate         = "date"
	colDescription  = "description"
	colAmount       = "amount"
	colCurrencyName = "currency_name"
	colCurrencyCode = "currency_code"
	colCategory     = "category"
	colFrom         = "from"
	colTo           = "to"
)

var columnAliases = map[string]string{
	"operationamount.amount":        colAmount,
	"operationamount.currency.name": colCurrencyName,
	"operationamount.currency.code": colCurrencyCode,
	"currency":                      colCurrencyCode,
}

var requiredColumns = []string{colDate, colDescription, colAmount}

// rowMapper converts tabular rows into transactions using the header row.
type rowMapper struct {
	index  map[string]int
	logger *logrus.Logger
}

func newRowMapper(header []string, logger *logrus.Logger) (*rowMapper, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if alias, ok := columnAliases[key]; ok {
			key = alias
		}
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return &rowMapper{index: index, logger: logger}, nil
}

func (m *rowMapper) cell(row []string, col string) string {
	i, ok := m.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// mapRows converts data rows, skipping rows without a date or with an
// amount that is not a number. line is the 1-based line of the first row.
func (m *rowMapper) mapRows(rows [][]string, line int) []transaction.Transaction {
	out := make([]transaction.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := m.mapRow(row)
		if err != nil {
			m.logger.WithError(err).WithField("line", line+i).Warn("Loader.Row.skipped")
			continue
		}
		out = append(out, tx)
	}
	return out
}

func (m *rowMapper) mapRow(row []string) (transaction.Transaction, error) {
	date := m.cell(row, colDate)
	if date == "" {
		return transaction.Transaction{}, errors.New("empty date")
	}

	rawAmount := strings.ReplaceAll(m.cell(row, colAmount), ",", ".")
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return transaction.Transaction{}, fmt.Errorf("amount %q: %w", rawAmount, err)
	}

	tx := transaction.Transaction{
		State:       m.cell(row, colState),
		Date:        date,
		Description: m.cell(row, colDescription),
		From:        m.cell(row, colFrom),
		To:          m.cell(row, colTo),
		Category:    m.cell(row, colCategory),
		OperationAmount: &transaction.OperationAmount{
			Amount: decimal.NewNullDecimal(amount),
			Currency: transaction.Currency{
				Name: m.cell(row, colCurrencyName),
				Code: m.cell(row, colCurrencyCode),
			},
		},
	}

	if rawID := m.cell(row, colID); rawID != "" {
		id, err := strconv.ParseFloat(rawID, 64)
		if err != nil {
			return transaction.Transaction{}, fmt.Errorf("id %q: %w", rawID, err)
		}
		tx.ID = int(id)
	}

	return tx, nil
}
