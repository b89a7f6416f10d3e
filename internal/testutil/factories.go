package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/marketdata"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/repository"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/service"
)

func NewTestHoldingService(t *testing.T, db *sql.DB) *service.HoldingService {
	t.Helper()

	holdingRepo := repository.NewHoldingRepository(db)

	return service.NewHoldingService(db, holdingRepo)
}

// NewTestDashboardService creates a DashboardService reporting in USD.
func NewTestDashboardService(t *testing.T, db *sql.DB) *service.DashboardService {
	t.Helper()

	return service.NewDashboardService(
		repository.NewHoldingRepository(db),
		repository.NewFxRateRepository(db),
		repository.NewSettingsRepository(db),
		"USD",
	)
}

func NewTestProjectionService(t *testing.T, db *sql.DB) *service.ProjectionService {
	t.Helper()

	return service.NewProjectionService(
		db,
		NewTestDashboardService(t, db),
		repository.NewSettingsRepository(db),
	)
}

func NewTestSettingsService(t *testing.T, db *sql.DB) *service.SettingsService {
	t.Helper()

	return service.NewSettingsService(db, repository.NewSettingsRepository(db))
}

func NewTestSnapshotService(t *testing.T, db *sql.DB) *service.SnapshotService {
	t.Helper()

	return service.NewSnapshotService(
		repository.NewSnapshotRepository(db),
		repository.NewHoldingRepository(db),
		repository.NewFxRateRepository(db),
	)
}

// NewTestFxService creates an FxService with mock market data clients so
// tests never hit real APIs.
func NewTestFxService(t *testing.T, db *sql.DB, rates marketdata.RatesSource, quotes marketdata.QuoteSource) *service.FxService {
	t.Helper()

	return service.NewFxService(
		repository.NewFxRateRepository(db),
		repository.NewHoldingRepository(db),
		rates,
		quotes,
		2,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
func MakeID() string {
	return uuid.New().String()
}
