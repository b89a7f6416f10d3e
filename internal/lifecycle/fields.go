// Package lifecycle implements the shared-vs-account-specific contract for
// holdings that belong to the same name group. The field classification is a
// statically declared table keyed by asset class, so the contract is
// auditable instead of being inferred by diffing records at runtime.
package lifecycle

import (
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
)

// Field names a holding attribute governed by the classification table.
type Field string

const (
	FieldName           Field = "name"
	FieldClass          Field = "class"
	FieldSubClass       Field = "sub_class"
	FieldCode           Field = "code"
	FieldOriginCurrency Field = "origin_currency"
	FieldPrice          Field = "price"
	FieldFactor         Field = "factor"
	FieldMaturityDate   Field = "maturity_date"
	FieldYtw            Field = "ytw"
	FieldPECompanyValue Field = "pe_company_value"
	FieldPEHoldingPct   Field = "pe_holding_percentage"
	FieldQuantity       Field = "quantity"
	FieldAccountEntity  Field = "account_entity"
	FieldAccountBank    Field = "account_bank"
)

// baseShared are the fields shared across every member of a name group
// regardless of class.
var baseShared = []Field{
	FieldName,
	FieldClass,
	FieldSubClass,
	FieldCode,
	FieldOriginCurrency,
	FieldFactor,
	FieldMaturityDate,
	FieldYtw,
	FieldPECompanyValue,
}

// baseAccount are the fields that always vary per holding.
var baseAccount = []Field{
	FieldQuantity,
	FieldAccountEntity,
	FieldAccountBank,
}

// SharedFields returns the shared field set for a class. Price is shared for
// every class except Private Equity and Real Estate, where each account's
// stake is valued independently.
func SharedFields(class refdata.AssetClass) []Field {
	if class == refdata.ClassPrivateEquity || class == refdata.ClassRealEstate {
		return baseShared
	}
	return append(append([]Field{}, baseShared...), FieldPrice)
}

// AccountFields returns the account-specific field set for a class.
func AccountFields(class refdata.AssetClass) []Field {
	if class == refdata.ClassPrivateEquity || class == refdata.ClassRealEstate {
		return append(append([]Field{}, baseAccount...), FieldPrice, FieldPEHoldingPct)
	}
	return append(append([]Field{}, baseAccount...), FieldPEHoldingPct)
}

// fieldEqual compares one classified field between two holdings.
func fieldEqual(a, b model.Holding, f Field) bool {
	switch f {
	case FieldName:
		return a.Name == b.Name
	case FieldClass:
		return a.Class == b.Class
	case FieldSubClass:
		return a.SubClass == b.SubClass
	case FieldCode:
		return a.Code == b.Code
	case FieldOriginCurrency:
		return a.OriginCurrency == b.OriginCurrency
	case FieldPrice:
		return a.Price == b.Price
	case FieldFactor:
		return floatPtrEqual(a.Factor, b.Factor)
	case FieldMaturityDate:
		switch {
		case a.MaturityDate == nil && b.MaturityDate == nil:
			return true
		case a.MaturityDate == nil || b.MaturityDate == nil:
			return false
		}
		return a.MaturityDate.Equal(*b.MaturityDate)
	case FieldYtw:
		return floatPtrEqual(a.Ytw, b.Ytw)
	case FieldPECompanyValue:
		return floatPtrEqual(a.PECompanyValue, b.PECompanyValue)
	case FieldPEHoldingPct:
		return floatPtrEqual(a.PEHoldingPercent, b.PEHoldingPercent)
	case FieldQuantity:
		return a.Quantity == b.Quantity
	case FieldAccountEntity:
		return a.AccountEntity == b.AccountEntity
	case FieldAccountBank:
		return a.AccountBank == b.AccountBank
	}
	return true
}

// copyField copies one classified field from src into dst.
func copyField(dst *model.Holding, src model.Holding, f Field) {
	switch f {
	case FieldName:
		dst.Name = src.Name
	case FieldClass:
		dst.Class = src.Class
	case FieldSubClass:
		dst.SubClass = src.SubClass
	case FieldCode:
		dst.Code = src.Code
	case FieldOriginCurrency:
		dst.OriginCurrency = src.OriginCurrency
	case FieldPrice:
		dst.Price = src.Price
	case FieldFactor:
		dst.Factor = src.Factor
	case FieldMaturityDate:
		dst.MaturityDate = src.MaturityDate
	case FieldYtw:
		dst.Ytw = src.Ytw
	case FieldPECompanyValue:
		dst.PECompanyValue = src.PECompanyValue
	case FieldPEHoldingPct:
		dst.PEHoldingPercent = src.PEHoldingPercent
	case FieldQuantity:
		dst.Quantity = src.Quantity
	case FieldAccountEntity:
		dst.AccountEntity = src.AccountEntity
	case FieldAccountBank:
		dst.AccountBank = src.AccountBank
	}
}

func floatPtrEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
