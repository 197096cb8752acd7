package domain

import "bookstore/pkg/errors"

// Domain-specific errors
var (
	ErrTitleRequired    = errors.NewValidation("title is required", nil)
	ErrInvalidPrice     = errors.NewValidation("price must be greater than 0", nil)
	ErrInvalidStock     = errors.NewValidation("stock cannot be negative", nil)
	ErrCategoryRequired = errors.NewValidation("category_id is required", nil)
)

// NewBookNotFound creates a not found error with the book ID
func NewBookNotFound(id uint) error {
	return errors.NewNotFound("book", id)
}

// NewCategoryNotFound creates a not found error with the category ID
func NewCategoryNotFound(id uint) error {
	return errors.NewNotFound("category", id)
}
