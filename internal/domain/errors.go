package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrClientNotFound       = errors.New("client_not_found")
	ErrHoldingNotFound      = errors.New("holding_not_found")
	ErrInsufficientFunds    = errors.New("insufficient_funds")
	ErrInsufficientHoldings = errors.New("insufficient_holdings")
	ErrNoFile               = errors.New("no_file")
	ErrNoOrders             = errors.New("no_orders")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
