package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrHoldingNotFound indicates that a holding with the given ID does not exist.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrSnapshotNotFound indicates that a snapshot with the given ID does not exist.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrFxRateNotFound indicates no rate record for the given currency.
	ErrFxRateNotFound = errors.New("fx rate not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrHoldingAlreadyExists indicates that a holding with the same name
	// already exists; the add-existing-holding flow must be used instead.
	ErrHoldingAlreadyExists = errors.New("holding with this name already exists")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeQuantity indicates that a quantity field has an invalid negative value.
	ErrNegativeQuantity = errors.New("quantity cannot be negative")

	// ErrUnknownCurrency indicates a currency code outside the supported set.
	ErrUnknownCurrency = errors.New("unknown currency")
)

// Authentication errors.
var (
	// ErrInvalidPassword indicates the shared dashboard password did not match.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrSessionExpired indicates the session token is missing, malformed, or
	// past its TTL; the client must re-authenticate.
	ErrSessionExpired = errors.New("session expired")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not
// due to missing entities or validation issues.
var (
	// Holding operation errors
	ErrFailedToRetrieveHoldings = errors.New("failed to retrieve holdings")
	ErrFailedToRetrieveHolding  = errors.New("failed to retrieve holding")
	ErrFailedToSaveHolding      = errors.New("failed to save holding")
	ErrFailedToDeleteHolding    = errors.New("failed to delete holding")

	// Dashboard operation errors
	ErrFailedToGetSummary         = errors.New("failed to get portfolio summary")
	ErrFailedToGetGroups          = errors.New("failed to get groups")
	ErrFailedToGetRollup          = errors.New("failed to get rollup")
	ErrFailedToGetLiquidityMatrix = errors.New("failed to get liquidity matrix")
	ErrFailedToGetYield           = errors.New("failed to get weighted yield")

	// Projection operation errors
	ErrFailedToGetProjection    = errors.New("failed to get projection")
	ErrFailedToSaveSettings     = errors.New("failed to save settings")
	ErrFailedToRetrieveSettings = errors.New("failed to retrieve settings")

	// FX operation errors
	ErrFailedToRetrieveRates = errors.New("failed to retrieve fx rates")
	ErrFailedToRefreshRates  = errors.New("failed to refresh fx rates")

	// Snapshot operation errors
	ErrFailedToCreateSnapshot    = errors.New("failed to create snapshot")
	ErrFailedToRetrieveSnapshots = errors.New("failed to retrieve snapshots")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state.
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
