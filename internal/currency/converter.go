package currency

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/txreport/internal/transaction"
)

// Options configures a Converter.
type Options struct {
	Reference   string
	Convertible []string
	CacheTTL    time.Duration
}

// Converter turns transaction amounts into the reference currency. It never
// fails: anything it cannot convert is worth zero.
type Converter struct {
	provider    RateProvider
	reference   string
	convertible []string
	rates       *rateCache
	logger      *logrus.Logger
	now         func() time.Time
}

func NewConverter(provider RateProvider, opts Options, logger *logrus.Logger) *Converter {
	convertible := make([]string, 0, len(opts.Convertible))
	for _, code := range opts.Convertible {
		convertible = append(convertible, strings.ToUpper(strings.TrimSpace(code)))
	}
	return &Converter{
		provider:    provider,
		reference:   strings.ToUpper(opts.Reference),
		convertible: convertible,
		rates:       newRateCache(opts.CacheTTL),
		logger:      logger,
		now:         time.Now,
	}
}

// Reference returns the reference currency code.
func (c *Converter) Reference() string {
	return c.reference
}

// ToReference returns the transaction amount expressed in the reference
// currency. A missing currency is taken to be the reference currency.
// Missing amounts, currencies outside the allow-list and any rate lookup
// failure give zero.
func (c *Converter) ToReference(ctx context.Context, tx transaction.Transaction) decimal.Decimal {
	amount, ok := tx.Money()
	if !ok {
		return decimal.Zero
	}

	code := strings.ToUpper(tx.CurrencyCode())
	if code == "" || code == c.reference {
		return amount
	}
	if !slices.Contains(c.convertible, code) {
		return decimal.Zero
	}

	rate, ok := c.rates.get(code, c.now())
	if !ok {
		var err error
		rate, err = c.provider.Rate(ctx, code, c.reference)
		if err != nil {
			c.logger.WithError(err).WithFields(logrus.Fields{
				"base":   code,
				"target": c.reference,
			}).Warn("Converter.ToReference.rateLookupFailed")
			return decimal.Zero
		}
		c.rates.set(code, rate, c.now())
	}

	return amount.Mul(rate)
}

// Total sums ToReference over txs.
func (c *Converter) Total(ctx context.Context, txs []transaction.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(c.ToReference(ctx, tx))
	}
	return total
}
