package currency

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// DefaultRatesURL is the exchangerates_data endpoint returning the latest rates.
const DefaultRatesURL = "https://api.apilayer.com/exchangerates_data/latest"

var (
	ErrRateUnavailable = errors.New("rate unavailable")
	ErrBadResponse     = errors.New("bad rate response")
)

// RateProvider looks up how many units of target one unit of base buys.
type RateProvider interface {
	Rate(ctx context.Context, base, target string) (decimal.Decimal, error)
}

// APILayerClient fetches rates from the apilayer exchange rates API. Each
// lookup is a single request bounded by the client timeout; failures are
// not retried.
type APILayerClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewAPILayerClient returns a client for baseURL authenticating with apiKey.
func NewAPILayerClient(baseURL, apiKey string, timeout time.Duration) *APILayerClient {
	if baseURL == "" {
		baseURL = DefaultRatesURL
	}
	return &APILayerClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type latestRatesResponse struct {
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (c *APILayerClient) Rate(ctx context.Context, base, target string) (decimal.Decimal, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse rates url: %w", err)
	}
	query := endpoint.Query()
	query.Set("base", base)
	query.Set("symbols", target)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("build rates request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("request rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return decimal.Zero, fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	var body latestRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	rate, ok := body.Rates[target]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s->%s", ErrRateUnavailable, base, target)
	}
	return rate, nil
}
