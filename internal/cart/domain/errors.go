package domain

import "bookstore/pkg/errors"

// Domain-specific errors
var (
	ErrUserIDRequired  = errors.NewValidation("user_id is required", nil)
	ErrBookIDRequired  = errors.NewValidation("book_id is required", nil)
	ErrInvalidQuantity = errors.NewValidation("quantity must be at least 1", nil)
)

// NewCartItemNotFound creates a not found error with the cart item ID
func NewCartItemNotFound(id uint) error {
	return errors.NewNotFound("cart item", id)
}

// NewInsufficientStock creates a validation error for a stock shortfall
func NewInsufficientStock(bookTitle string) error {
	return errors.NewValidation("insufficient stock for book: "+bookTitle, nil)
}
