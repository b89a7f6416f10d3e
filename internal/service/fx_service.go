package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/marketdata"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/repository"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/valuation"
)

// FxService handles the currency rate table and market price refreshes.
type FxService struct {
	fxRepo           *repository.FxRateRepository
	holdingRepo      *repository.HoldingRepository
	ratesClient      marketdata.RatesSource
	quoteClient      marketdata.QuoteSource
	fetchConcurrency int
}

// NewFxService creates a new FxService with the provided dependencies.
func NewFxService(
	fxRepo *repository.FxRateRepository,
	holdingRepo *repository.HoldingRepository,
	ratesClient marketdata.RatesSource,
	quoteClient marketdata.QuoteSource,
	fetchConcurrency int,
) *FxService {
	if fetchConcurrency < 1 {
		fetchConcurrency = 1
	}
	return &FxService{
		fxRepo:           fxRepo,
		holdingRepo:      holdingRepo,
		ratesClient:      ratesClient,
		quoteClient:      quoteClient,
		fetchConcurrency: fetchConcurrency,
	}
}

// GetRates returns the stored FX table. An empty table is valid; valuations
// against it fall back to unconverted identity rates.
func (s *FxService) GetRates() (model.FxTable, error) {
	return s.fxRepo.GetRates()
}

// RefreshRates fetches the latest conversion rates and replaces the stored
// table. The old rows survive a failed fetch: nothing is written unless the
// rate API returned a complete table.
func (s *FxService) RefreshRates(ctx context.Context) (model.FxTable, error) {
	table, err := s.ratesClient.FetchRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRefreshRates, err)
	}

	for _, rate := range table {
		if err := s.fxRepo.UpsertRate(ctx, rate); err != nil {
			return nil, fmt.Errorf("failed to store rate for %s: %w", rate.Currency, err)
		}
	}

	return table, nil
}

// PriceRefreshResult summarizes one traded-price refresh run.
type PriceRefreshResult struct {
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Failed  []string `json:"failed,omitempty"`
}

// RefreshTradedPrices updates the price of every coded public equity and
// commodity holding from the quote API. Symbols are fetched concurrently up
// to the configured limit. A failed symbol is reported and skipped; the rest
// of the run proceeds.
func (s *FxService) RefreshTradedPrices(ctx context.Context) (PriceRefreshResult, error) {
	var result PriceRefreshResult

	symbols, err := s.tradedSymbols()
	if err != nil {
		return result, err
	}

	type priced struct {
		symbol string
		price  float64
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.fetchConcurrency)
	prices := make(chan priced, len(symbols))

	for _, symbol := range symbols {
		symbol := symbol
		group.Go(func() error {
			quote, err := s.quoteClient.LatestQuote(groupCtx, symbol)
			if err != nil {
				log.Printf("price refresh: %s: %v", symbol, err)
				prices <- priced{symbol: symbol}
				return nil
			}
			prices <- priced{symbol: symbol, price: quote.Price}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return result, err
	}
	close(prices)

	bySymbol := make(map[string]float64, len(symbols))
	for p := range prices {
		if p.price > 0 {
			bySymbol[p.symbol] = p.price
		} else {
			result.Failed = append(result.Failed, p.symbol)
		}
	}

	holdings, err := s.holdingRepo.GetHoldings(model.HoldingFilter{})
	if err != nil {
		return result, fmt.Errorf("failed to retrieve holdings: %w", err)
	}
	for _, h := range holdings {
		if !tradedHolding(h) {
			continue
		}
		price, ok := bySymbol[h.Code]
		if !ok {
			result.Skipped++
			continue
		}
		h.Price = valuation.Round(price)
		h.UpdatedAt = time.Now()
		if err := s.holdingRepo.UpdateHolding(ctx, h); err != nil {
			return result, fmt.Errorf("failed to update price for %s: %w", h.Name, err)
		}
		result.Updated++
	}

	return result, nil
}

// tradedSymbols collects the distinct quote symbols of all traded holdings.
func (s *FxService) tradedSymbols() ([]string, error) {
	holdings, err := s.holdingRepo.GetHoldings(model.HoldingFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve holdings: %w", err)
	}

	seen := make(map[string]bool)
	var symbols []string
	for _, h := range holdings {
		if tradedHolding(h) && !seen[h.Code] {
			seen[h.Code] = true
			symbols = append(symbols, h.Code)
		}
	}
	return symbols, nil
}

// tradedHolding reports whether a holding's price can be refreshed from a
// market quote: listed classes only, and only with a symbol to look up.
func tradedHolding(h model.Holding) bool {
	if h.Code == "" {
		return false
	}
	return h.Class == refdata.ClassPublicEquity || h.Class == refdata.ClassCommodities
}
