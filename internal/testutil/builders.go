package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
)

// HoldingBuilder provides a fluent interface for creating test holdings.
//
// Example usage:
//
//	// Simple creation with defaults
//	holding := testutil.NewHolding().Build(t, db)
//
//	// Customized holding
//	holding := testutil.NewHolding().
//	    WithClass(refdata.ClassRealEstate, "Residential").
//	    WithName("Tel Aviv Apartment").
//	    WithFactor(0.8).
//	    Build(t, db)
type HoldingBuilder struct {
	holding model.Holding
}

// NewHolding creates a HoldingBuilder with sensible defaults: a public
// equity position held by Avi at Interactive Brokers.
func NewHolding() *HoldingBuilder {
	now := time.Now().UTC()
	return &HoldingBuilder{
		holding: model.Holding{
			ID:             MakeID(),
			Class:          refdata.ClassPublicEquity,
			SubClass:       "ETF",
			Name:           "Test Fund " + MakeID()[:8],
			Code:           "TEST",
			AccountEntity:  "Avi",
			AccountBank:    "Interactive Brokers",
			Beneficiary:    "Avi",
			Quantity:       10,
			Price:          100,
			OriginCurrency: "USD",
			CreatedAt:      now,
			UpdatedAt:      now,
		},
	}
}

// WithID sets a custom ID.
func (b *HoldingBuilder) WithID(id string) *HoldingBuilder {
	b.holding.ID = id
	return b
}

// WithClass sets the asset class and sub-class.
func (b *HoldingBuilder) WithClass(class refdata.AssetClass, subClass string) *HoldingBuilder {
	b.holding.Class = class
	b.holding.SubClass = subClass
	return b
}

// WithName sets a custom name.
func (b *HoldingBuilder) WithName(name string) *HoldingBuilder {
	b.holding.Name = name
	return b
}

// WithCode sets the identifying code.
func (b *HoldingBuilder) WithCode(code string) *HoldingBuilder {
	b.holding.Code = code
	return b
}

// WithAccount sets the account entity and bank, recomputing the beneficiary.
func (b *HoldingBuilder) WithAccount(entity, bank string) *HoldingBuilder {
	b.holding.AccountEntity = entity
	b.holding.AccountBank = bank
	b.holding.Beneficiary = refdata.BeneficiaryOf(entity)
	return b
}

// WithPosition sets quantity, price, and origin currency.
func (b *HoldingBuilder) WithPosition(quantity, price float64, currency string) *HoldingBuilder {
	b.holding.Quantity = quantity
	b.holding.Price = price
	b.holding.OriginCurrency = currency
	return b
}

// WithFactor sets the realizable-fraction factor.
func (b *HoldingBuilder) WithFactor(factor float64) *HoldingBuilder {
	b.holding.Factor = &factor
	return b
}

// WithYtw sets the yield to worst.
func (b *HoldingBuilder) WithYtw(ytw float64) *HoldingBuilder {
	b.holding.Ytw = &ytw
	return b
}

// WithMaturity sets the maturity date.
func (b *HoldingBuilder) WithMaturity(date time.Time) *HoldingBuilder {
	b.holding.MaturityDate = &date
	return b
}

// WithPEStake sets the company value and holding percentage pair.
func (b *HoldingBuilder) WithPEStake(companyValue, holdingPercent float64) *HoldingBuilder {
	b.holding.PECompanyValue = &companyValue
	b.holding.PEHoldingPercent = &holdingPercent
	return b
}

// Build inserts the holding in the database and returns it.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	query := `
		INSERT INTO holding (
			id, class, sub_class, name, code, account_entity, account_bank,
			beneficiary, quantity, price, origin_currency, factor,
			maturity_date, ytw, pe_company_value, pe_holding_percentage,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	h := b.holding
	var maturity any
	if h.MaturityDate != nil {
		maturity = h.MaturityDate.Format("2006-01-02")
	}

	_, err := db.Exec(query,
		h.ID, string(h.Class), h.SubClass, h.Name, h.Code, h.AccountEntity,
		h.AccountBank, h.Beneficiary, h.Quantity, h.Price, h.OriginCurrency,
		h.Factor, maturity, h.Ytw, h.PECompanyValue, h.PEHoldingPercent,
		h.CreatedAt.Format(time.RFC3339), h.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}

	return h
}

// SeedRates inserts FX rates keyed by currency code. Each value is the
// (toUSD, toILS) factor pair.
//
// Example usage:
//
//	testutil.SeedRates(t, db, map[string][2]float64{
//	    "USD": {1, 3.7},
//	    "ILS": {1 / 3.7, 1},
//	})
func SeedRates(t *testing.T, db *sql.DB, rates map[string][2]float64) {
	t.Helper()

	for currency, pair := range rates {
		_, err := db.Exec(
			`INSERT INTO fx_rate (currency, to_usd, to_ils, last_updated) VALUES (?, ?, ?, ?)
			 ON CONFLICT(currency) DO UPDATE SET to_usd = excluded.to_usd, to_ils = excluded.to_ils`,
			currency, pair[0], pair[1], time.Now().UTC().Format(time.RFC3339),
		)
		if err != nil {
			t.Fatalf("Failed to seed rate for %s: %v", currency, err)
		}
	}
}

// SeedStandardRates inserts the rate table used by most tests:
// USD/ILS/EUR with ILS at 3.7 to the dollar and EUR at 4.0.
func SeedStandardRates(t *testing.T, db *sql.DB) {
	t.Helper()

	SeedRates(t, db, map[string][2]float64{
		"USD": {1, 3.7},
		"ILS": {1 / 3.7, 1},
		"EUR": {4.0 / 3.7, 4.0},
	})
}
