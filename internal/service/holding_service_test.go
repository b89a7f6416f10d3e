package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/request"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/apperrors"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/testutil"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/validation"
)

func createRequest() request.CreateHoldingRequest {
	return request.CreateHoldingRequest{
		Class:          string(refdata.ClassPublicEquity),
		SubClass:       "ETF",
		Name:           "Vanguard Total World",
		Code:           "VT",
		AccountEntity:  "Avi",
		AccountBank:    "Interactive Brokers",
		Quantity:       100,
		Price:          110,
		OriginCurrency: "USD",
	}
}

// TestHoldingService_CreateHolding tests holding creation and its derivations.
//
// WHY: Creation is where all the derived fields are computed: the beneficiary
// from the account entity, the canonical cash name and unit price, and the
// private equity price from an ownership stake. Getting these wrong corrupts
// every downstream view.
func TestHoldingService_CreateHolding(t *testing.T) {
	t.Run("creates a holding with derived beneficiary", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		result, err := svc.CreateHolding(context.Background(), createRequest())
		if err != nil {
			t.Fatalf("CreateHolding() returned unexpected error: %v", err)
		}

		if result.Holding.ID == "" {
			t.Error("Expected generated ID")
		}
		if result.Holding.Beneficiary != "Avi" {
			t.Errorf("Expected beneficiary Avi, got %q", result.Holding.Beneficiary)
		}
		if result.Warning != "" {
			t.Errorf("Expected no warning, got %q", result.Warning)
		}
		testutil.AssertRowCount(t, db, "holding", 1)
	})

	t.Run("derives cash name, price, and currency from sub-class", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		req := request.CreateHoldingRequest{
			Class:          string(refdata.ClassCash),
			SubClass:       "EUR",
			AccountEntity:  "Dana",
			AccountBank:    "Leumi",
			Quantity:       5000,
			Price:          42, // ignored, cash is always unit priced
			OriginCurrency: "USD",
		}

		result, err := svc.CreateHolding(context.Background(), req)
		if err != nil {
			t.Fatalf("CreateHolding() returned unexpected error: %v", err)
		}

		h := result.Holding
		if h.Name != "Cash EUR" {
			t.Errorf("Expected name 'Cash EUR', got %q", h.Name)
		}
		if h.Price != 1 {
			t.Errorf("Expected unit price 1, got %v", h.Price)
		}
		if h.OriginCurrency != "EUR" {
			t.Errorf("Expected origin currency EUR, got %q", h.OriginCurrency)
		}
	})

	t.Run("derives private equity price from ownership stake", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		companyValue := 10_000_000.0
		percent := 5.0
		req := request.CreateHoldingRequest{
			Class:            string(refdata.ClassPrivateEquity),
			SubClass:         "Direct Holding",
			Name:             "Acme Robotics",
			AccountEntity:    "Avi & Dana",
			AccountBank:      "Other",
			Quantity:         1,
			Price:            123, // overwritten by the derivation
			OriginCurrency:   "USD",
			PECompanyValue:   &companyValue,
			PEHoldingPercent: &percent,
		}

		result, err := svc.CreateHolding(context.Background(), req)
		if err != nil {
			t.Fatalf("CreateHolding() returned unexpected error: %v", err)
		}

		if result.Holding.Price != 500_000 {
			t.Errorf("Expected derived price 500000, got %v", result.Holding.Price)
		}
		if result.Holding.Beneficiary != "Joint" {
			t.Errorf("Expected beneficiary Joint, got %q", result.Holding.Beneficiary)
		}
	})

	t.Run("rejects invalid request with field errors", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		req := createRequest()
		req.Quantity = -5
		req.OriginCurrency = "JPY"

		_, err := svc.CreateHolding(context.Background(), req)

		var validationErr *validation.Error
		if !errors.As(err, &validationErr) {
			t.Fatalf("Expected validation error, got %v", err)
		}
		if validationErr.Fields["quantity"] == "" {
			t.Error("Expected quantity field error")
		}
		if validationErr.Fields["originCurrency"] == "" {
			t.Error("Expected originCurrency field error")
		}
		testutil.AssertRowCount(t, db, "holding", 0)
	})
}

// TestHoldingService_CreateHolding_Duplicates tests the duplicate-name rules.
//
// WHY: The name is the grouping key for shared assets. An accidental exact
// duplicate must be blocked, a deliberate one must join the existing group
// and inherit its shared fields, and a near-miss must warn without blocking.
func TestHoldingService_CreateHolding_Duplicates(t *testing.T) {
	t.Run("rejects exact name match without opt-in", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)
		testutil.NewHolding().WithName("Vanguard Total World").Build(t, db)

		_, err := svc.CreateHolding(context.Background(), createRequest())
		if !errors.Is(err, apperrors.ErrHoldingAlreadyExists) {
			t.Fatalf("Expected ErrHoldingAlreadyExists, got %v", err)
		}
		testutil.AssertRowCount(t, db, "holding", 1)
	})

	t.Run("joins existing group and inherits shared fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)
		testutil.NewHolding().
			WithName("Vanguard Total World").
			WithCode("VT").
			WithPosition(50, 118, "USD").
			Build(t, db)

		req := createRequest()
		req.AllowExisting = true
		req.Price = 95 // shared field, the group's value wins
		req.AccountEntity = "Dana"
		req.AccountBank = "Schwab"

		result, err := svc.CreateHolding(context.Background(), req)
		if err != nil {
			t.Fatalf("CreateHolding() returned unexpected error: %v", err)
		}

		h := result.Holding
		if h.Price != 118 {
			t.Errorf("Expected inherited price 118, got %v", h.Price)
		}
		if h.Quantity != 100 {
			t.Errorf("Expected own quantity 100, got %v", h.Quantity)
		}
		if h.AccountEntity != "Dana" || h.AccountBank != "Schwab" {
			t.Errorf("Expected own account fields, got %q / %q", h.AccountEntity, h.AccountBank)
		}
		testutil.AssertRowCount(t, db, "holding", 2)
	})

	t.Run("rejects duplicate cash under a different label", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)
		testutil.NewHolding().
			WithClass(refdata.ClassCash, "EUR").
			WithName("Cash EUR").
			WithPosition(5000, 1, "EUR").
			Build(t, db)

		// The user-supplied name loses to the canonical cash name, so this
		// collides with the existing EUR cash holding.
		req := request.CreateHoldingRequest{
			Class:          string(refdata.ClassCash),
			SubClass:       "EUR",
			Name:           "My Euro Stash",
			AccountEntity:  "Avi",
			AccountBank:    "Leumi",
			Quantity:       1000,
			Price:          1,
			OriginCurrency: "EUR",
		}

		_, err := svc.CreateHolding(context.Background(), req)
		if !errors.Is(err, apperrors.ErrHoldingAlreadyExists) {
			t.Fatalf("Expected ErrHoldingAlreadyExists, got %v", err)
		}
		testutil.AssertRowCount(t, db, "holding", 1)
	})

	t.Run("warns on near-duplicate name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)
		testutil.NewHolding().WithName("vanguard total-world").Build(t, db)

		result, err := svc.CreateHolding(context.Background(), createRequest())
		if err != nil {
			t.Fatalf("CreateHolding() returned unexpected error: %v", err)
		}
		if result.Warning == "" {
			t.Error("Expected near-duplicate warning")
		}
		testutil.AssertRowCount(t, db, "holding", 2)
	})
}

// TestHoldingService_UpdateHolding tests the shared/account split on update.
//
// WHY: This is the core sync rule of the system. A shared-field change must
// reach every holding carrying the same name; an account-specific change must
// stay on the addressed record only.
func TestHoldingService_UpdateHolding(t *testing.T) {
	t.Run("propagates shared price to the name group", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		a := testutil.NewHolding().WithName("Vanguard Total World").WithPosition(100, 110, "USD").Build(t, db)
		b := testutil.NewHolding().WithName("Vanguard Total World").
			WithAccount("Dana", "Schwab").WithPosition(40, 110, "USD").Build(t, db)

		newPrice := 125.0
		_, err := svc.UpdateHolding(context.Background(), a.ID, request.UpdateHoldingRequest{
			Price: &newPrice,
		})
		if err != nil {
			t.Fatalf("UpdateHolding() returned unexpected error: %v", err)
		}

		sibling, err := svc.GetHolding(b.ID)
		if err != nil {
			t.Fatalf("GetHolding() returned unexpected error: %v", err)
		}
		if sibling.Price != 125 {
			t.Errorf("Expected sibling price 125, got %v", sibling.Price)
		}
		if sibling.Quantity != 40 {
			t.Errorf("Expected sibling quantity untouched at 40, got %v", sibling.Quantity)
		}
	})

	t.Run("keeps account-specific quantity local", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		a := testutil.NewHolding().WithName("Vanguard Total World").WithPosition(100, 110, "USD").Build(t, db)
		b := testutil.NewHolding().WithName("Vanguard Total World").
			WithAccount("Dana", "Schwab").WithPosition(40, 110, "USD").Build(t, db)

		newQuantity := 150.0
		updated, err := svc.UpdateHolding(context.Background(), a.ID, request.UpdateHoldingRequest{
			Quantity: &newQuantity,
		})
		if err != nil {
			t.Fatalf("UpdateHolding() returned unexpected error: %v", err)
		}
		if updated.Quantity != 150 {
			t.Errorf("Expected quantity 150, got %v", updated.Quantity)
		}

		sibling, err := svc.GetHolding(b.ID)
		if err != nil {
			t.Fatalf("GetHolding() returned unexpected error: %v", err)
		}
		if sibling.Quantity != 40 {
			t.Errorf("Expected sibling quantity untouched at 40, got %v", sibling.Quantity)
		}
	})

	t.Run("keeps real estate price account-specific", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		a := testutil.NewHolding().
			WithClass(refdata.ClassRealEstate, "Residential").
			WithName("Haifa Duplex").
			WithPosition(0.5, 2_000_000, "ILS").
			Build(t, db)
		b := testutil.NewHolding().
			WithClass(refdata.ClassRealEstate, "Residential").
			WithName("Haifa Duplex").
			WithAccount("Dana", "Other").
			WithPosition(0.5, 2_000_000, "ILS").
			Build(t, db)

		newPrice := 2_400_000.0
		if _, err := svc.UpdateHolding(context.Background(), a.ID, request.UpdateHoldingRequest{
			Price: &newPrice,
		}); err != nil {
			t.Fatalf("UpdateHolding() returned unexpected error: %v", err)
		}

		sibling, err := svc.GetHolding(b.ID)
		if err != nil {
			t.Fatalf("GetHolding() returned unexpected error: %v", err)
		}
		if sibling.Price != 2_000_000 {
			t.Errorf("Expected sibling price untouched at 2000000, got %v", sibling.Price)
		}
	})

	t.Run("returns not found for unknown holding", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestHoldingService(t, db)

		newPrice := 1.0
		_, err := svc.UpdateHolding(context.Background(), testutil.MakeID(), request.UpdateHoldingRequest{
			Price: &newPrice,
		})
		if !errors.Is(err, apperrors.ErrHoldingNotFound) {
			t.Fatalf("Expected ErrHoldingNotFound, got %v", err)
		}
	})
}

// TestHoldingService_NameGroups tests the derived shared-asset index.
//
// WHY: Groups are never stored; they must always reflect the live holding
// names, including after deletes shrink a group.
func TestHoldingService_NameGroups(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestHoldingService(t, db)

	a := testutil.NewHolding().WithName("Vanguard Total World").Build(t, db)
	b := testutil.NewHolding().WithName("Vanguard Total World").
		WithAccount("Dana", "Schwab").Build(t, db)
	testutil.NewHolding().WithName("Gold Bars").
		WithClass(refdata.ClassCommodities, "Gold").Build(t, db)

	groups, err := svc.GetNameGroups()
	if err != nil {
		t.Fatalf("GetNameGroups() returned unexpected error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(groups))
	}
	if groups[0].Name != "Gold Bars" || groups[1].Name != "Vanguard Total World" {
		t.Errorf("Expected groups sorted by name, got %q then %q", groups[0].Name, groups[1].Name)
	}

	var shared model.NameGroup
	for _, g := range groups {
		if g.Name == "Vanguard Total World" {
			shared = g
		}
	}
	if len(shared.HoldingIDs) != 2 {
		t.Fatalf("Expected 2 holdings in shared group, got %d", len(shared.HoldingIDs))
	}

	if err := svc.DeleteHolding(context.Background(), b.ID); err != nil {
		t.Fatalf("DeleteHolding() returned unexpected error: %v", err)
	}

	groups, err = svc.GetNameGroups()
	if err != nil {
		t.Fatalf("GetNameGroups() returned unexpected error: %v", err)
	}
	for _, g := range groups {
		if g.Name == "Vanguard Total World" {
			if len(g.HoldingIDs) != 1 || g.HoldingIDs[0] != a.ID {
				t.Errorf("Expected group to shrink to the surviving holding, got %v", g.HoldingIDs)
			}
		}
	}
}
