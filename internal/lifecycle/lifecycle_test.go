package lifecycle_test

import (
	"testing"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/lifecycle"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
)

func baseHolding() model.Holding {
	return model.Holding{
		ID:             "h1",
		Class:          refdata.ClassPublicEquity,
		SubClass:       "Stock",
		Name:           "Acme Fund",
		Code:           "ACME",
		AccountEntity:  "Avi",
		AccountBank:    "Schwab",
		Quantity:       10,
		Price:          100,
		OriginCurrency: "USD",
	}
}

// TestClassifyEdit tests the shared vs account-specific edit classification.
//
// WHY: The classification decides whether an edit fans out to every sibling
// holding of the same name or stays local; misclassifying corrupts either
// the shared contract or an unrelated account's data.
func TestClassifyEdit(t *testing.T) {
	t.Run("quantity change is account-specific only", func(t *testing.T) {
		stored := baseHolding()
		updated := stored
		updated.Quantity = 25

		edit := lifecycle.ClassifyEdit(stored, updated)

		if edit.Kind != lifecycle.EditAccountOnly {
			t.Fatalf("Expected account-only edit, got %v", edit.Kind)
		}
		if len(edit.AccountFields) != 1 || edit.AccountFields[0] != lifecycle.FieldQuantity {
			t.Errorf("Expected only quantity changed, got %v", edit.AccountFields)
		}
	})

	t.Run("price change is shared for non-PE/RE classes", func(t *testing.T) {
		stored := baseHolding()
		updated := stored
		updated.Price = 110

		edit := lifecycle.ClassifyEdit(stored, updated)

		if edit.Kind != lifecycle.EditSharedOnly {
			t.Fatalf("Expected shared-only edit, got %v", edit.Kind)
		}
	})

	t.Run("price change is account-specific for real estate", func(t *testing.T) {
		stored := baseHolding()
		stored.Class = refdata.ClassRealEstate
		stored.SubClass = "Residential"
		updated := stored
		updated.Price = 1_200_000

		edit := lifecycle.ClassifyEdit(stored, updated)

		if edit.Kind != lifecycle.EditAccountOnly {
			t.Fatalf("Expected account-only edit for RE price, got %v", edit.Kind)
		}
	})

	t.Run("mixed edit is classified as both", func(t *testing.T) {
		stored := baseHolding()
		updated := stored
		updated.Price = 110
		updated.Quantity = 25

		edit := lifecycle.ClassifyEdit(stored, updated)

		if edit.Kind != lifecycle.EditBoth {
			t.Fatalf("Expected both, got %v", edit.Kind)
		}
	})

	t.Run("identical records are a no-op", func(t *testing.T) {
		stored := baseHolding()

		edit := lifecycle.ClassifyEdit(stored, stored)

		if edit.Kind != lifecycle.EditNone {
			t.Fatalf("Expected no-op, got %v", edit.Kind)
		}
	})

	t.Run("optional field changes are detected", func(t *testing.T) {
		stored := baseHolding()
		stored.Class = refdata.ClassFixedIncome
		stored.SubClass = "Corporate Bond"
		updated := stored
		ytw := 0.045
		updated.Ytw = &ytw

		edit := lifecycle.ClassifyEdit(stored, updated)

		if edit.Kind != lifecycle.EditSharedOnly {
			t.Fatalf("Expected shared-only edit for ytw, got %v", edit.Kind)
		}
	})
}

// TestPropagateShared tests the fan-out of shared fields to siblings.
//
// WHY: Only the changed shared fields may be copied; the sibling's
// account-specific fields must stay untouched.
func TestPropagateShared(t *testing.T) {
	stored := baseHolding()
	updated := stored
	updated.Price = 110

	sibling := baseHolding()
	sibling.ID = "h2"
	sibling.AccountEntity = "Dana"
	sibling.Quantity = 99

	edit := lifecycle.ClassifyEdit(stored, updated)
	lifecycle.PropagateShared(&sibling, updated, edit)

	if sibling.Price != 110 {
		t.Errorf("Expected propagated price 110, got %f", sibling.Price)
	}
	if sibling.Quantity != 99 || sibling.AccountEntity != "Dana" {
		t.Errorf("Account-specific fields must stay untouched, got %+v", sibling)
	}
}

// TestFindNearDuplicate tests case/punctuation-insensitive name matching.
//
// WHY: An exact duplicate name is a hard rejection, but a near-duplicate is
// only a warning; the two must not be confused.
func TestFindNearDuplicate(t *testing.T) {
	existing := []string{"Acme Fund", "World ETF"}

	t.Run("detects near-duplicate", func(t *testing.T) {
		match, ok := lifecycle.FindNearDuplicate("acme-fund", existing)
		if !ok || match != "Acme Fund" {
			t.Errorf("Expected near-duplicate of 'Acme Fund', got %q (ok=%v)", match, ok)
		}
	})

	t.Run("exact match is not a near-duplicate", func(t *testing.T) {
		if _, ok := lifecycle.FindNearDuplicate("Acme Fund", existing); ok {
			t.Error("Exact matches are handled as hard rejections, not warnings")
		}
	})

	t.Run("unrelated name matches nothing", func(t *testing.T) {
		if _, ok := lifecycle.FindNearDuplicate("Completely Different", existing); ok {
			t.Error("Expected no match")
		}
	})
}
