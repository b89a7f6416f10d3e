package repository_test

import (
	"context"
	"testing"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/model"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/refdata"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/repository"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/testutil"
)

// TestSettingsRepository_ReplaceIsTransactionScoped tests that a replace run
// under WithTx lands atomically.
//
// WHY: Both replace operations clear their tables before re-inserting. Run
// outside a transaction, a failed insert would leave the settings emptied;
// the WithTx path must make the delete and the inserts stand or fall
// together.
func TestSettingsRepository_ReplaceIsTransactionScoped(t *testing.T) {
	t.Run("rolled-back liquidity replace keeps the stored set", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingsRepository(db)

		tx, err := db.Begin()
		if err != nil {
			t.Fatalf("Begin() returned unexpected error: %v", err)
		}
		if err := repo.WithTx(tx).ReplaceLimitedLiquidity(context.Background(), []string{"Locked Fund"}); err != nil {
			t.Fatalf("ReplaceLimitedLiquidity() returned unexpected error: %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Commit() returned unexpected error: %v", err)
		}

		tx, err = db.Begin()
		if err != nil {
			t.Fatalf("Begin() returned unexpected error: %v", err)
		}
		if err := repo.WithTx(tx).ReplaceLimitedLiquidity(context.Background(), []string{"Other Fund"}); err != nil {
			t.Fatalf("ReplaceLimitedLiquidity() returned unexpected error: %v", err)
		}
		if err := tx.Rollback(); err != nil {
			t.Fatalf("Rollback() returned unexpected error: %v", err)
		}

		set, err := repo.GetLimitedLiquidity()
		if err != nil {
			t.Fatalf("GetLimitedLiquidity() returned unexpected error: %v", err)
		}
		if !set["Locked Fund"] || set["Other Fund"] {
			t.Errorf("Expected rolled-back replace to leave the stored set untouched, got %v", set)
		}
	})

	t.Run("rolled-back projection replace keeps the stored settings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewSettingsRepository(db)

		stored := model.ProjectionSettings{
			GrowthRates:    map[refdata.AssetClass]float64{refdata.ClassPublicEquity: 7},
			YearlySpending: 50_000,
			Assets: map[string]model.AssetPlan{
				"Haifa Duplex": {Name: "Haifa Duplex", Enabled: true, LiquidationYear: model.BucketYear2},
			},
		}

		tx, err := db.Begin()
		if err != nil {
			t.Fatalf("Begin() returned unexpected error: %v", err)
		}
		if err := repo.WithTx(tx).ReplaceProjectionSettings(context.Background(), stored); err != nil {
			t.Fatalf("ReplaceProjectionSettings() returned unexpected error: %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Commit() returned unexpected error: %v", err)
		}

		tx, err = db.Begin()
		if err != nil {
			t.Fatalf("Begin() returned unexpected error: %v", err)
		}
		if err := repo.WithTx(tx).ReplaceProjectionSettings(context.Background(), model.ProjectionSettings{
			GrowthRates: map[refdata.AssetClass]float64{},
			Assets:      map[string]model.AssetPlan{},
		}); err != nil {
			t.Fatalf("ReplaceProjectionSettings() returned unexpected error: %v", err)
		}
		if err := tx.Rollback(); err != nil {
			t.Fatalf("Rollback() returned unexpected error: %v", err)
		}

		settings, err := repo.GetProjectionSettings()
		if err != nil {
			t.Fatalf("GetProjectionSettings() returned unexpected error: %v", err)
		}
		if settings.GrowthRates[refdata.ClassPublicEquity] != 7 {
			t.Errorf("Expected growth rate to survive the rollback, got %v", settings.GrowthRates)
		}
		if plan, ok := settings.Assets["Haifa Duplex"]; !ok || !plan.Enabled {
			t.Errorf("Expected asset plan to survive the rollback, got %v", settings.Assets)
		}
	})
}
