package domain

import "errors"

var (
	// ErrInvalidInput is returned when detection input fails validation
	// before any network call is made
	ErrInvalidInput = errors.New("invalid detection input")

	// ErrModelUnavailable is returned when the Ollama endpoint refuses the
	// connection
	ErrModelUnavailable = errors.New("vision model service unavailable")

	// ErrDetectionTimeout is returned when the inference request exceeds its
	// configured deadline
	ErrDetectionTimeout = errors.New("vision model request timed out")

	// ErrModelAPIFailure is returned for any other transport-level failure
	// talking to the vision model
	ErrModelAPIFailure = errors.New("vision model request failed")

	// ErrSessionNotFound is returned when the scan session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionNotActive is returned when the scan session is completed or
	// cancelled
	ErrSessionNotActive = errors.New("session is not active")

	// ErrEmptyInventory is returned when there are no inventory items to
	// match against
	ErrEmptyInventory = errors.New("no inventory items available for matching")

	// ErrInventoryNotFound is returned when an inventory record does not exist
	ErrInventoryNotFound = errors.New("inventory item not found")

	// ErrSKUExists is returned when creating an inventory record with a SKU
	// that is already taken
	ErrSKUExists = errors.New("sku already exists")

	// ErrInsufficientStock is returned when a stock adjustment would go
	// negative
	ErrInsufficientStock = errors.New("insufficient stock")
)
