package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// QuoteSource defines the interface for fetching the latest price of a
// traded symbol. This interface enables dependency injection and testing
// with mock implementations.
type QuoteSource interface {
	LatestQuote(ctx context.Context, symbol string) (Quote, error)
}

// QuoteClient fetches recent closing prices for traded securities from the
// Yahoo Finance chart API. It is used by the scheduled price refresh to keep
// coded public equity and commodity holdings current.
type QuoteClient struct {
	httpClient *http.Client
}

// NewQuoteClient creates a quote client with default HTTP settings.
func NewQuoteClient() *QuoteClient {
	return &QuoteClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// chartResponse represents the raw JSON response from the chart API.
// The structure contains one result per queried symbol, with parallel
// timestamp and close price arrays.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency string `json:"currency"`
				Symbol   string `json:"symbol"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// Quote is the latest available closing price for a symbol.
type Quote struct {
	Symbol   string
	Currency string
	Price    float64
	Date     time.Time
}

// LatestQuote fetches the last five trading days for a symbol and returns the
// most recent close with a non-zero price. The five day window absorbs
// weekends and market holidays.
func (c *QuoteClient) LatestQuote(ctx context.Context, symbol string) (Quote, error) {
	url := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&range=5d", symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Quote{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, err
	}

	var parsed chartResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Quote{}, err
	}
	if parsed.Chart.Error != nil {
		return Quote{}, fmt.Errorf("quote error for %s: %s", symbol, *parsed.Chart.Error)
	}
	if len(parsed.Chart.Result) == 0 {
		return Quote{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	result := parsed.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return Quote{}, fmt.Errorf("no close prices returned for symbol %s", symbol)
	}
	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return Quote{}, fmt.Errorf("mismatched data lengths for symbol %s", symbol)
	}

	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] > 0 {
			return Quote{
				Symbol:   result.Meta.Symbol,
				Currency: result.Meta.Currency,
				Price:    closes[i],
				Date:     time.Unix(result.Timestamp[i], 0).UTC(),
			}, nil
		}
	}

	return Quote{}, fmt.Errorf("no usable close price for symbol %s", symbol)
}
