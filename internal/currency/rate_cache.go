package currency

import (
	"time"

	"github.com/shopspring/decimal"
)

type cachedRate struct {
	rate      decimal.Decimal
	expiresAt time.Time
}

// rateCache remembers successful lookups per base currency until they
// expire. A zero TTL disables it.
type rateCache struct {
	ttl   time.Duration
	items map[string]cachedRate
}

func newRateCache(ttl time.Duration) *rateCache {
	return &rateCache{ttl: ttl, items: make(map[string]cachedRate)}
}

func (c *rateCache) get(base string, now time.Time) (decimal.Decimal, bool) {
	item, ok := c.items[base]
	if !ok {
		return decimal.Zero, false
	}
	if now.After(item.expiresAt) {
		delete(c.items, base)
		return decimal.Zero, false
	}
	return item.rate, true
}

func (c *rateCache) set(base string, rate decimal.Decimal, now time.Time) {
	if c.ttl <= 0 {
		return
	}
	c.items[base] = cachedRate{rate: rate, expiresAt: now.Add(c.ttl)}
}
