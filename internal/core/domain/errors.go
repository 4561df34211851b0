package domain

import (
	"errors"
	"fmt"
)

// Error categories. Handlers map these to HTTP status codes.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrRateLimited        = errors.New("too many attempts")
)

var (
	ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)
	ErrProfileNotFound = fmt.Errorf("profile %w", ErrNotFound)
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)
	ErrStockNotFound   = fmt.Errorf("stock %w", ErrNotFound)

	ErrLoginTaken    = fmt.Errorf("%w: login already in use", ErrConflict)
	ErrMailTaken     = fmt.Errorf("%w: mail already in use", ErrConflict)
	ErrDocumentTaken = fmt.Errorf("%w: document already in use", ErrConflict)
)

// Validationf returns an ErrValidation carrying a caller-facing message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
