// Package marketdata provides clients for external market data sources:
// a currency rate API for FX conversion tables and a quote API for
// refreshing traded security prices.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
)

// RatesSource defines the interface for fetching a fresh FX table.
// This interface enables dependency injection and testing with mock implementations.
type RatesSource interface {
	FetchRates(ctx context.Context) (model.FxTable, error)
}

// RatesClient fetches currency conversion rates from a Frankfurter-compatible
// rate API. Each refresh produces a full FX table keyed by currency code, with
// conversion factors into both USD and ILS.
type RatesClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRatesClient creates a rate API client rooted at baseURL,
// e.g. "https://api.frankfurter.dev/v1".
func NewRatesClient(baseURL string) *RatesClient {
	return &RatesClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ratesResponse represents the raw JSON response from the rate API.
// Rates are quoted as base -> symbol, so one unit of the base currency
// buys Rates[symbol] units of each requested symbol.
type ratesResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// FetchRates retrieves the latest conversion rates for every supported
// currency and returns a complete FX table.
//
// The API quotes rates as base -> symbol, while the table stores
// currency -> USD and currency -> ILS factors, so each quoted rate is
// inverted. The base currency of each query is always present in its own
// table row with factor 1.
func (c *RatesClient) FetchRates(ctx context.Context) (model.FxTable, error) {
	toUSD, err := c.fetchBase(ctx, "USD")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch USD rates: %w", err)
	}
	toILS, err := c.fetchBase(ctx, refdata.BaseCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s rates: %w", refdata.BaseCurrency, err)
	}

	now := time.Now().UTC()
	table := make(model.FxTable, len(refdata.Currencies))
	for _, currency := range refdata.Currencies {
		usd, ok := invert(toUSD, currency, "USD")
		if !ok {
			return nil, fmt.Errorf("rate API returned no USD rate for %s", currency)
		}
		ils, ok := invert(toILS, currency, refdata.BaseCurrency)
		if !ok {
			return nil, fmt.Errorf("rate API returned no %s rate for %s", refdata.BaseCurrency, currency)
		}
		table[currency] = model.FxRate{
			Currency:    currency,
			ToUSD:       usd,
			ToILS:       ils,
			LastUpdated: now,
		}
	}

	return table, nil
}

// invert converts a base -> currency quote into a currency -> base factor.
func invert(rates map[string]float64, currency, base string) (float64, bool) {
	if currency == base {
		return 1, true
	}
	rate, ok := rates[currency]
	if !ok || rate == 0 {
		return 0, false
	}
	return 1 / rate, true
}

// fetchBase queries the latest rates quoted against a single base currency.
func (c *RatesClient) fetchBase(ctx context.Context, base string) (map[string]float64, error) {
	symbols := make([]string, 0, len(refdata.Currencies))
	for _, currency := range refdata.Currencies {
		if currency != base {
			symbols = append(symbols, currency)
		}
	}

	query := url.Values{}
	query.Set("base", base)
	query.Set("symbols", strings.Join(symbols, ","))
	endpoint := fmt.Sprintf("%s/latest?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate API returned status %d", resp.StatusCode)
	}

	var parsed ratesResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Rates) == 0 {
		return nil, fmt.Errorf("rate API returned no rates for base %s", base)
	}

	return parsed.Rates, nil
}
