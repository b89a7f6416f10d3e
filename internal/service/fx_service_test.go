package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/testutil"
)

func mockTable() model.FxTable {
	now := time.Now().UTC()
	return model.FxTable{
		"USD": {Currency: "USD", ToUSD: 1, ToILS: 3.7, LastUpdated: now},
		"ILS": {Currency: "ILS", ToUSD: 1 / 3.7, ToILS: 1, LastUpdated: now},
		"EUR": {Currency: "EUR", ToUSD: 4.0 / 3.7, ToILS: 4.0, LastUpdated: now},
	}
}

// TestFxService_RefreshRates tests the rate refresh flow.
//
// WHY: The FX table feeds every valuation. A refresh must replace the stored
// rows with the fetched table, and a failed fetch must leave the stored
// rates untouched so the dashboard keeps working on yesterday's rates.
func TestFxService_RefreshRates(t *testing.T) {
	t.Run("stores the fetched table", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		rates := &testutil.MockRatesClient{MockTable: mockTable()}
		svc := testutil.NewTestFxService(t, db, rates, &testutil.MockQuoteClient{})

		table, err := svc.RefreshRates(context.Background())
		if err != nil {
			t.Fatalf("RefreshRates() returned unexpected error: %v", err)
		}
		if len(table) != 3 {
			t.Errorf("Expected 3 rates, got %d", len(table))
		}
		testutil.AssertRowCount(t, db, "fx_rate", 3)

		stored, err := svc.GetRates()
		if err != nil {
			t.Fatalf("GetRates() returned unexpected error: %v", err)
		}
		if stored["EUR"].ToILS != 4.0 {
			t.Errorf("Expected EUR to-ILS rate 4.0, got %v", stored["EUR"].ToILS)
		}
	})

	t.Run("keeps stored rates when the fetch fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		testutil.SeedStandardRates(t, db)
		rates := &testutil.MockRatesClient{MockError: errors.New("api down")}
		svc := testutil.NewTestFxService(t, db, rates, &testutil.MockQuoteClient{})

		_, err := svc.RefreshRates(context.Background())
		if !errors.Is(err, apperrors.ErrFailedToRefreshRates) {
			t.Fatalf("Expected ErrFailedToRefreshRates, got %v", err)
		}
		testutil.AssertRowCount(t, db, "fx_rate", 3)
	})
}

// TestFxService_RefreshTradedPrices tests the market price refresh.
//
// WHY: Only coded public equity and commodity holdings are traded; bank
// deposits and real estate must never be touched by a quote run, and one
// failing symbol must not abort the rest.
func TestFxService_RefreshTradedPrices(t *testing.T) {
	t.Run("updates traded holdings only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		quotes := &testutil.MockQuoteClient{BySymbol: map[string]float64{
			"VT":      125.5,
			"GLD-ETF": 220,
		}}
		svc := testutil.NewTestFxService(t, db, &testutil.MockRatesClient{}, quotes)

		equity := testutil.NewHolding().WithName("Vanguard Total World").
			WithCode("VT").WithPosition(10, 100, "USD").Build(t, db)
		gold := testutil.NewHolding().WithName("Gold ETF").
			WithClass(refdata.ClassCommodities, "Gold").
			WithCode("GLD-ETF").WithPosition(5, 200, "USD").Build(t, db)
		estate := testutil.NewHolding().WithName("Haifa Duplex").
			WithClass(refdata.ClassRealEstate, "Residential").
			WithCode("DEED-17").WithPosition(1, 2_000_000, "ILS").Build(t, db)

		result, err := svc.RefreshTradedPrices(context.Background())
		if err != nil {
			t.Fatalf("RefreshTradedPrices() returned unexpected error: %v", err)
		}
		if result.Updated != 2 {
			t.Errorf("Expected 2 updates, got %d", result.Updated)
		}

		holdingSvc := testutil.NewTestHoldingService(t, db)
		for _, check := range []struct {
			id    string
			price float64
		}{
			{equity.ID, 125.5},
			{gold.ID, 220},
			{estate.ID, 2_000_000},
		} {
			h, err := holdingSvc.GetHolding(check.id)
			if err != nil {
				t.Fatalf("GetHolding() returned unexpected error: %v", err)
			}
			if h.Price != check.price {
				t.Errorf("Expected price %v for %s, got %v", check.price, h.Name, h.Price)
			}
		}
	})

	t.Run("fans quote lookups out across goroutines", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		bySymbol := map[string]float64{
			"VT": 110, "VXUS": 60, "BND": 72, "QQQ": 480, "GLD": 220, "SLV": 28,
		}
		quotes := &testutil.MockQuoteClient{BySymbol: bySymbol}
		svc := testutil.NewTestFxService(t, db, &testutil.MockRatesClient{}, quotes)

		i := 0
		for symbol := range bySymbol {
			i++
			testutil.NewHolding().WithName("Fund " + symbol).
				WithCode(symbol).WithPosition(float64(i), 1, "USD").Build(t, db)
		}

		result, err := svc.RefreshTradedPrices(context.Background())
		if err != nil {
			t.Fatalf("RefreshTradedPrices() returned unexpected error: %v", err)
		}
		if result.Updated != len(bySymbol) {
			t.Errorf("Expected %d updates, got %d", len(bySymbol), result.Updated)
		}
		if got := quotes.Queries(); got != len(bySymbol) {
			t.Errorf("Expected one quote lookup per symbol, got %d", got)
		}
	})

	t.Run("reports failed symbols and continues", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		quotes := &testutil.MockQuoteClient{
			BySymbol:  map[string]float64{"VT": 125.5},
			MockError: errors.New("no data"),
		}
		svc := testutil.NewTestFxService(t, db, &testutil.MockRatesClient{}, quotes)

		testutil.NewHolding().WithName("Vanguard Total World").
			WithCode("VT").WithPosition(10, 100, "USD").Build(t, db)
		testutil.NewHolding().WithName("Obscure Fund").
			WithCode("NOPE").WithPosition(10, 50, "USD").Build(t, db)

		result, err := svc.RefreshTradedPrices(context.Background())
		if err != nil {
			t.Fatalf("RefreshTradedPrices() returned unexpected error: %v", err)
		}
		if result.Updated != 1 {
			t.Errorf("Expected 1 update, got %d", result.Updated)
		}
		if len(result.Failed) != 1 || result.Failed[0] != "NOPE" {
			t.Errorf("Expected NOPE in failed list, got %v", result.Failed)
		}
	})
}
