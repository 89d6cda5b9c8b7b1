package transaction

import (
	"github.com/shopspring/decimal"
)

// Known values of the state field.
const (
	StateExecuted = "EXECUTED"
	StateCanceled = "CANCELED"
	StatePending  = "PENDING"
)

// States lists the states a user may filter by, in display order.
var States = []string{StateExecuted, StateCanceled, StatePending}

// Currency names a currency inside an operation amount.
type Currency struct {
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`
}

// OperationAmount is the nested amount block of a bank operation.
type OperationAmount struct {
	Amount   decimal.NullDecimal `json:"amount"`
	Currency Currency            `json:"currency"`
}

// Transaction represents one bank operation as loaded from a statement file.
// Every field is optional: string fields are empty when absent and
// OperationAmount is nil when the record has no nested amount.
type Transaction struct {
	ID              int                 `json:"id,omitempty"`
	State           string              `json:"state,omitempty"`
	Date            string              `json:"date,omitempty"`
	Description     string              `json:"description,omitempty"`
	OperationAmount *OperationAmount    `json:"operationAmount,omitempty"`
	From            string              `json:"from,omitempty"`
	To              string              `json:"to,omitempty"`
	Amount          decimal.NullDecimal `json:"amount"`
	Currency        string              `json:"currency,omitempty"`
	Category        string              `json:"category,omitempty"`
}

// CurrencyCode returns the flat currency code, falling back to the code of the
// nested operation amount. Empty when neither is present.
func (t Transaction) CurrencyCode() string {
	if t.Currency != "" {
		return t.Currency
	}
	if t.OperationAmount != nil {
		return t.OperationAmount.Currency.Code
	}
	return ""
}

// CurrencyName returns the display name of the currency, or the code when no
// name was supplied.
func (t Transaction) CurrencyName() string {
	if t.OperationAmount != nil && t.OperationAmount.Currency.Name != "" {
		return t.OperationAmount.Currency.Name
	}
	return t.CurrencyCode()
}

// Money returns the transaction amount and whether one was present.
func (t Transaction) Money() (decimal.Decimal, bool) {
	if t.Amount.Valid {
		return t.Amount.Decimal, true
	}
	if t.OperationAmount != nil && t.OperationAmount.Amount.Valid {
		return t.OperationAmount.Amount.Decimal, true
	}
	return decimal.Zero, false
}
