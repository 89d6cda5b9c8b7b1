package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/carson-networks/txreport/internal/currency"
	"github.com/carson-networks/txreport/internal/dates"
	"github.com/carson-networks/txreport/internal/logging"
	"github.com/carson-networks/txreport/internal/masking"
	"github.com/carson-networks/txreport/internal/processing"
	"github.com/carson-networks/txreport/internal/transaction"
)

const (
	msgEmpty      = "Не найдено ни одной транзакции, подходящей под ваши условия фильтрации."
	msgPrinting   = "Распечатываю итоговый список транзакций..."
	msgCount      = "Всего банковских операций в выборке: %d"
	msgTotal      = "Итого в %s: %s"
	msgCategories = "Количество операций по категориям:"
)

// Printer renders the final list of transactions for the user.
type Printer struct {
	out        io.Writer
	masker     *masking.Masker
	converter  *currency.Converter
	categories []string
	hook       logging.Hook
}

// NewPrinter returns a Printer writing to out. converter may be nil, in
// which case no total is printed; categories may be empty.
func NewPrinter(out io.Writer, masker *masking.Masker, converter *currency.Converter, categories []string, hook logging.Hook) *Printer {
	return &Printer{
		out:        out,
		masker:     masker,
		converter:  converter,
		categories: categories,
		hook:       hook,
	}
}

// Print writes the report for txs.
func (p *Printer) Print(ctx context.Context, txs []transaction.Transaction) {
	fmt.Fprintln(p.out, msgPrinting)
	if len(txs) == 0 {
		fmt.Fprintln(p.out, msgEmpty)
		return
	}

	fmt.Fprintf(p.out, msgCount+"\n\n", len(txs))
	for _, tx := range txs {
		fmt.Fprintln(p.out, p.Line(tx))
	}

	if p.converter != nil {
		total := p.converter.Total(ctx, txs)
		fmt.Fprintf(p.out, "\n"+msgTotal+"\n", p.converter.Reference(), total.StringFixed(2))
	}

	if len(p.categories) > 0 {
		fmt.Fprintln(p.out, "\n"+msgCategories)
		for _, cc := range processing.CountCategories(txs, p.categories) {
			fmt.Fprintf(p.out, "%s: %d\n", cc.Category, cc.Count)
		}
	}
}

// Line formats one transaction as
// "DATE DESCRIPTION [FROM -> ]TO Сумма: AMOUNT CURRENCY". Missing parts are
// left out rather than printed empty.
func (p *Printer) Line(tx transaction.Transaction) string {
	parts := make([]string, 0, 6)

	if date := p.date(tx.Date); date != "" {
		parts = append(parts, date)
	}
	if tx.Description != "" {
		parts = append(parts, tx.Description)
	}

	var route []string
	if tx.From != "" {
		route = append(route, p.masker.AccountOrCard(tx.From))
	}
	if tx.To != "" {
		route = append(route, p.masker.AccountOrCard(tx.To))
	}
	if len(route) > 0 {
		parts = append(parts, strings.Join(route, " -> "))
	}

	if amount, ok := tx.Money(); ok {
		sum := "Сумма: " + amount.StringFixed(2)
		if name := tx.CurrencyName(); name != "" {
			sum += " " + name
		}
		parts = append(parts, sum)
	}

	return strings.Join(parts, " ")
}

// date shows a valid date as DD.MM.YYYY and anything else as given.
func (p *Printer) date(raw string) string {
	if raw == "" {
		return ""
	}
	out, err := dates.Normalize(raw)
	if err != nil {
		out = raw
	}
	p.hook.Emit(logging.Event{Operation: "NormalizeDate", Input: raw, Output: out, Err: err})
	return out
}
