// Package refdata holds the static lookup tables the rest of the application
// is built on: asset classes and their permitted sub-classes, supported
// currencies, account entities with their beneficiary mapping, and custodian
// banks. The tables are compiled in; they change rarely and only together
// with code that depends on them.
package refdata

// AssetClass is one of the six top-level asset classes a holding can have.
type AssetClass string

const (
	ClassCash          AssetClass = "Cash"
	ClassFixedIncome   AssetClass = "Fixed Income"
	ClassPublicEquity  AssetClass = "Public Equity"
	ClassCommodities   AssetClass = "Commodities"
	ClassRealEstate    AssetClass = "Real Estate"
	ClassPrivateEquity AssetClass = "Private Equity"
)

// Classes lists all asset classes in display order.
var Classes = []AssetClass{
	ClassCash,
	ClassFixedIncome,
	ClassPublicEquity,
	ClassCommodities,
	ClassRealEstate,
	ClassPrivateEquity,
}

// Sub-class names shared by the liquidity classifier.
const (
	SubClassBankDeposit = "Bank Deposit"
	SubClassMoneyMarket = "Money Market"
	SubClassPrivateFund = "Private Fund"
)

// SubClasses maps each asset class to its permitted sub-classes.
// For Cash the sub-class is the currency the cash is held in.
var SubClasses = map[AssetClass][]string{
	ClassCash:          {"USD", "ILS", "EUR", "GBP", "CHF"},
	ClassFixedIncome:   {"Government Bond", "Corporate Bond", SubClassBankDeposit, SubClassMoneyMarket},
	ClassPublicEquity:  {"Stock", "ETF", "Mutual Fund", SubClassPrivateFund},
	ClassCommodities:   {"Gold", "Crypto"},
	ClassRealEstate:    {"Residential", "Commercial"},
	ClassPrivateEquity: {"Direct Holding", "PE Fund"},
}

// Currencies lists the currency codes the dashboard supports.
var Currencies = []string{"USD", "ILS", "EUR", "GBP", "CHF"}

// BaseCurrency is the pivot currency of the underlying ledger. Only
// cross-rates against it are authoritative; every other conversion is
// derived as a ratio through it.
const BaseCurrency = "ILS"

// Entities lists the people and legal owners that can hold accounts.
var Entities = []string{
	"Avi",
	"Dana",
	"Avi & Dana",
	"Family Trust",
	"Kids Savings",
}

// Banks lists the custodians accounts can be held at.
var Banks = []string{
	"Leumi",
	"Hapoalim",
	"Interactive Brokers",
	"UBS",
	"Schwab",
	"Other",
}

// Beneficiaries lists the beneficiary taxonomy used by the liquidity matrix,
// in column order.
var Beneficiaries = []string{"Avi", "Dana", "Joint", "Kids"}

// beneficiaryByEntity maps an account entity to its beneficiary.
var beneficiaryByEntity = map[string]string{
	"Avi":          "Avi",
	"Dana":         "Dana",
	"Avi & Dana":   "Joint",
	"Family Trust": "Joint",
	"Kids Savings": "Kids",
}

// BeneficiaryOf returns the beneficiary for an account entity. The mapping is
// total: unknown entities fall back to "Joint" so a holding never loses its
// place in beneficiary-keyed views.
func BeneficiaryOf(entity string) string {
	if b, ok := beneficiaryByEntity[entity]; ok {
		return b
	}
	return "Joint"
}

// ValidClass reports whether c is a known asset class.
func ValidClass(c AssetClass) bool {
	for _, k := range Classes {
		if k == c {
			return true
		}
	}
	return false
}

// ValidSubClass reports whether sub is a permitted sub-class of c.
func ValidSubClass(c AssetClass, sub string) bool {
	for _, s := range SubClasses[c] {
		if s == sub {
			return true
		}
	}
	return false
}

// ValidCurrency reports whether code is a supported currency.
func ValidCurrency(code string) bool {
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}

// CashName derives the display name of a Cash holding from its sub-class
// (the currency). Cash names are never edited directly.
func CashName(subClass string) string {
	return "Cash " + subClass
}
