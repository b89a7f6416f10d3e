package service_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/testutil"
)

// TestSettingsService_LimitedLiquidity tests the limited-liquidity name set.
//
// WHY: The set overrides the class-based liquidity tier for specific
// instruments, so updates must dedupe, drop empties, and fully replace the
// previous set rather than merge with it.
func TestSettingsService_LimitedLiquidity(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestSettingsService(t, db)

	t.Run("starts empty", func(t *testing.T) {
		names, err := svc.GetLimitedLiquidity()
		if err != nil {
			t.Fatalf("GetLimitedLiquidity() returned unexpected error: %v", err)
		}
		if len(names) != 0 {
			t.Errorf("Expected empty set, got %v", names)
		}
	})

	t.Run("dedupes and drops empty names", func(t *testing.T) {
		stored, err := svc.UpdateLimitedLiquidity(ctx, []string{"Pagaya Notes", "", "Hedge Fund A", "Pagaya Notes"})
		if err != nil {
			t.Fatalf("UpdateLimitedLiquidity() returned unexpected error: %v", err)
		}

		expected := []string{"Hedge Fund A", "Pagaya Notes"}
		if !reflect.DeepEqual(stored, expected) {
			t.Errorf("Expected %v, got %v", expected, stored)
		}

		set, err := svc.LimitedLiquiditySet()
		if err != nil {
			t.Fatalf("LimitedLiquiditySet() returned unexpected error: %v", err)
		}
		if _, ok := set["Pagaya Notes"]; !ok {
			t.Error("Expected Pagaya Notes in the stored set")
		}
	})

	t.Run("replaces the previous set", func(t *testing.T) {
		if _, err := svc.UpdateLimitedLiquidity(ctx, []string{"Private Credit Fund"}); err != nil {
			t.Fatalf("UpdateLimitedLiquidity() returned unexpected error: %v", err)
		}

		names, err := svc.GetLimitedLiquidity()
		if err != nil {
			t.Fatalf("GetLimitedLiquidity() returned unexpected error: %v", err)
		}
		if !reflect.DeepEqual(names, []string{"Private Credit Fund"}) {
			t.Errorf("Expected only the new name, got %v", names)
		}
	})
}
