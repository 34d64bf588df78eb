package domain

import "errors"

// Sentinel errors, matched with errors.Is at the handler boundary.
var (
	// validation
	ErrQuantityTooLow   = errors.New("quantity is less than one")
	ErrEmptyCredentials = errors.New("username and password are required")
	ErrEmptyField       = errors.New("required field is empty")
	ErrEmptyCart        = errors.New("cart is empty")

	// auth
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotAuthenticated   = errors.New("not authenticated")

	// not found
	ErrItemNotFound    = errors.New("catalog item not found")
	ErrSessionNotFound = errors.New("session not found")

	// network
	ErrCatalogUnavailable = errors.New("catalog source unavailable")
)
