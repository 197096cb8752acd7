package domain

import "bookstore/pkg/errors"

// Domain-specific errors
var (
	ErrNameRequired       = errors.NewValidation("name is required", nil)
	ErrNameLength         = errors.NewValidation("name must be between 2 and 100 characters", nil)
	ErrEmailRequired      = errors.NewValidation("email is required", nil)
	ErrEmailInvalid       = errors.NewValidation("email format is invalid", nil)
	ErrPasswordTooShort   = errors.NewValidation("password must be at least 8 characters", nil)
	ErrEmailTaken         = errors.NewConflict("email is already registered")
	ErrInvalidCredentials = errors.NewUnauthorized("invalid email or password")
	ErrSessionInvalid     = errors.NewUnauthorized("session is invalid or expired")
)

// NewUserNotFound creates a not found error with the user ID
func NewUserNotFound(id uint) error {
	return errors.NewNotFound("user", id)
}
