package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("access denied")
	ErrInvalidTransition = errors.New("illegal order status transition")
	ErrExtractionFailed  = errors.New("order extraction failed")
	ErrNegativePrice     = errors.New("price cannot be negative")
)
