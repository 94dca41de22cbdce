package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrRecordNotFound indicates that a stock record with the given ID does not exist.
	ErrRecordNotFound = errors.New("stock record not found")

	// ErrSaleNotFound indicates that a sale leg with the given ID does not exist on the record.
	ErrSaleNotFound = errors.New("sale leg not found")

	// ErrTagNotFound indicates that a tag with the given ID does not exist.
	ErrTagNotFound = errors.New("tag not found")

	// ErrSettingNotFound indicates that an application setting has never been stored.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrSecurityNotFound indicates that a code lookup returned no listed security.
	ErrSecurityNotFound = errors.New("security not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientShares indicates that a sale leg cannot be added or
	// edited because the record would end up with more shares sold than
	// purchased. This is the editing-layer guard; the calculators tolerate
	// already-violating data without validating it.
	ErrInsufficientShares = errors.New("insufficient shares for sale")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Integration errors cover the market-data collaboration.
var (
	// ErrTokenNotConfigured indicates that no market-data refresh token has been stored yet.
	ErrTokenNotConfigured = errors.New("market data refresh token not configured")

	// ErrMarketDataUnavailable indicates that the remote market-data API
	// returned an error or malformed payload.
	ErrMarketDataUnavailable = errors.New("market data unavailable")
)
