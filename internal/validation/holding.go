package validation

import (
	"strings"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/request"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
)

// ValidateCreateHolding checks a create request against the reference data
// and the class-specific field rules. All problems are collected into one
// field-keyed error rather than failing on the first.
func ValidateCreateHolding(req request.CreateHoldingRequest) error {
	errors := make(map[string]string)

	class := refdata.AssetClass(req.Class)
	if !refdata.ValidClass(class) {
		errors["class"] = "unknown asset class"
	} else if !refdata.ValidSubClass(class, req.SubClass) {
		errors["subClass"] = "sub-class not permitted for this class"
	}

	// Cash names are derived from the sub-class; everything else needs one.
	if class != refdata.ClassCash && strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}
	if len(req.Name) > 100 {
		errors["name"] = "name must be 100 characters or less"
	}

	if req.AccountEntity == "" {
		errors["accountEntity"] = "account entity is required"
	}
	if req.AccountBank == "" {
		errors["accountBank"] = "account bank is required"
	}

	if req.Quantity < 0 {
		errors["quantity"] = "quantity cannot be negative"
	}
	if req.Price < 0 {
		errors["price"] = "price cannot be negative"
	}

	if !refdata.ValidCurrency(req.OriginCurrency) {
		errors["originCurrency"] = "unsupported currency"
	}

	validateClassFields(class, holdingFields{
		Factor:           req.Factor,
		MaturityDate:     req.MaturityDate,
		Ytw:              req.Ytw,
		PECompanyValue:   req.PECompanyValue,
		PEHoldingPercent: req.PEHoldingPercent,
	}, errors)

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateUpdateHolding checks the provided fields of a partial update.
func ValidateUpdateHolding(req request.UpdateHoldingRequest) error {
	errors := make(map[string]string)

	if req.Class != nil && !refdata.ValidClass(refdata.AssetClass(*req.Class)) {
		errors["class"] = "unknown asset class"
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			errors["name"] = "name cannot be empty"
		} else if len(*req.Name) > 100 {
			errors["name"] = "name must be 100 characters or less"
		}
	}
	if req.Quantity != nil && *req.Quantity < 0 {
		errors["quantity"] = "quantity cannot be negative"
	}
	if req.Price != nil && *req.Price < 0 {
		errors["price"] = "price cannot be negative"
	}
	if req.OriginCurrency != nil && !refdata.ValidCurrency(*req.OriginCurrency) {
		errors["originCurrency"] = "unsupported currency"
	}
	if req.Factor != nil && (*req.Factor < 0 || *req.Factor > 1) {
		errors["factor"] = "factor must be between 0 and 1"
	}
	if req.MaturityDate != nil {
		if _, err := ParseTime(*req.MaturityDate); err != nil {
			errors["maturityDate"] = "invalid date"
		}
	}
	if req.PEHoldingPercent != nil && (*req.PEHoldingPercent < 0 || *req.PEHoldingPercent > 100) {
		errors["peHoldingPercentage"] = "holding percentage must be between 0 and 100"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// holdingFields bundles the class-specific optional fields for validation.
type holdingFields struct {
	Factor           *float64
	MaturityDate     *string
	Ytw              *float64
	PECompanyValue   *float64
	PEHoldingPercent *float64
}

func validateClassFields(class refdata.AssetClass, f holdingFields, errors map[string]string) {
	isIlliquid := class == refdata.ClassPrivateEquity || class == refdata.ClassRealEstate

	if f.Factor != nil {
		if !isIlliquid {
			errors["factor"] = "factor applies only to Private Equity and Real Estate"
		} else if *f.Factor < 0 || *f.Factor > 1 {
			errors["factor"] = "factor must be between 0 and 1"
		}
	}

	if f.MaturityDate != nil {
		if class != refdata.ClassFixedIncome {
			errors["maturityDate"] = "maturity date applies only to Fixed Income"
		} else if _, err := ParseTime(*f.MaturityDate); err != nil {
			errors["maturityDate"] = "invalid date"
		}
	}
	if f.Ytw != nil && class != refdata.ClassFixedIncome {
		errors["ytw"] = "yield to worst applies only to Fixed Income"
	}

	if f.PECompanyValue != nil && class != refdata.ClassPrivateEquity {
		errors["peCompanyValue"] = "company value applies only to Private Equity"
	}
	if f.PEHoldingPercent != nil {
		if class != refdata.ClassPrivateEquity {
			errors["peHoldingPercentage"] = "holding percentage applies only to Private Equity"
		} else if *f.PEHoldingPercent < 0 || *f.PEHoldingPercent > 100 {
			errors["peHoldingPercentage"] = "holding percentage must be between 0 and 100"
		}
	}
}
