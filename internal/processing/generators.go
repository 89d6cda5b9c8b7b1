package processing

import (
	"iter"

	"github.com/carson-networks/txreport/internal/transaction"
)

// FilterByCurrency lazily yields the transactions whose currency code equals
// code. The sequence is single-pass: once it has been ranged over, later
// ranges yield nothing.
func FilterByCurrency(txs []transaction.Transaction, code string) iter.Seq[transaction.Transaction] {
	consumed := false
	return func(yield func(transaction.Transaction) bool) {
		if consumed {
			return
		}
		consumed = true
		for _, tx := range txs {
			c := tx.CurrencyCode()
			if c == "" || c != code {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// Descriptions lazily yields each transaction's description in order, empty
// for transactions that have none.
func Descriptions(txs []transaction.Transaction) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, tx := range txs {
			if !yield(tx.Description) {
				return
			}
		}
	}
}
