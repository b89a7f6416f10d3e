package testutil

import (
	"context"
	"sync"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/marketdata"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
)

// MockRatesClient is a mock implementation of marketdata.RatesSource.
// It returns predefined test data instead of calling the rate API.
type MockRatesClient struct {
	// MockTable is the table to return from FetchRates
	MockTable model.FxTable
	// MockError is the error to return from FetchRates
	MockError error

	mu sync.Mutex
	// FetchCount tracks how many times FetchRates was called
	FetchCount int
}

// FetchRates returns the configured table and error.
func (m *MockRatesClient) FetchRates(_ context.Context) (model.FxTable, error) {
	m.mu.Lock()
	m.FetchCount++
	m.mu.Unlock()

	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockTable, nil
}

// Fetches returns how many times FetchRates was called.
func (m *MockRatesClient) Fetches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FetchCount
}

// MockQuoteClient is a mock implementation of marketdata.QuoteSource.
// Prices are served from the BySymbol map; unknown symbols get MockError,
// or a zero quote if no error is configured. The counter is guarded because
// the price refresh fans quote lookups out across goroutines.
type MockQuoteClient struct {
	BySymbol map[string]float64
	// MockError is the error to return for symbols missing from BySymbol
	MockError error

	mu sync.Mutex
	// QueryCount tracks how many times LatestQuote was called
	QueryCount int
}

// LatestQuote returns the configured price for the symbol.
func (m *MockQuoteClient) LatestQuote(_ context.Context, symbol string) (marketdata.Quote, error) {
	m.mu.Lock()
	m.QueryCount++
	m.mu.Unlock()

	price, ok := m.BySymbol[symbol]
	if !ok {
		if m.MockError != nil {
			return marketdata.Quote{}, m.MockError
		}
		return marketdata.Quote{Symbol: symbol}, nil
	}
	return marketdata.Quote{
		Symbol:   symbol,
		Currency: "USD",
		Price:    price,
	}, nil
}

// Queries returns how many times LatestQuote was called.
func (m *MockQuoteClient) Queries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.QueryCount
}
