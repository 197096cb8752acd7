package domain

import "bookstore/pkg/errors"

// Domain-specific errors
var (
	ErrUserIDRequired    = errors.NewValidation("user_id is required", nil)
	ErrNoItems           = errors.NewValidation("order must contain at least one item", nil)
	ErrInvalidQuantity   = errors.NewValidation("item quantity must be at least 1", nil)
	ErrInvalidPrice      = errors.NewValidation("item price cannot be negative", nil)
	ErrTotalsMismatch    = errors.NewValidation("order totals are inconsistent", nil)
	ErrAddressIncomplete = errors.NewValidation("address requires full name, line1 and city", nil)
	ErrNotOwner          = errors.NewForbidden("order does not belong to user")
)

// NewOrderNotFound creates a not found error with the order ID
func NewOrderNotFound(id uint) error {
	return errors.NewNotFound("order", id)
}

// NewUnknownBook creates a validation error for a missing book reference
func NewUnknownBook(bookID uint) error {
	return errors.NewValidation("book not found", map[string]interface{}{
		"book_id": bookID,
	})
}

// NewInsufficientStock creates a validation error naming the offending book
func NewInsufficientStock(bookID uint, title string) error {
	return errors.NewValidation("insufficient stock for book: "+title, map[string]interface{}{
		"book_id": bookID,
	})
}

// NewInvalidPaymentMethod creates a validation error for an unsupported method
func NewInvalidPaymentMethod(key string) error {
	return errors.NewValidation(
		"invalid payment method: "+key+". Supported methods: cod, vnpay", nil,
	)
}
