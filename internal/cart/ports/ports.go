package ports

import (
	"context"

	"bookstore/internal/cart/domain"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// GetByUser retrieves all cart items for a user, newest first
	GetByUser(ctx context.Context, userID uint) ([]*domain.CartItem, error)

	// GetByUserAndBook retrieves the user's cart item for a book, nil when absent
	GetByUserAndBook(ctx context.Context, userID, bookID uint) (*domain.CartItem, error)

	// GetByID retrieves a cart item by ID
	GetByID(ctx context.Context, id uint) (*domain.CartItem, error)

	// Save creates or updates a cart item
	Save(ctx context.Context, item *domain.CartItem) error

	// Delete removes a cart item by ID
	Delete(ctx context.Context, id uint) error

	// ClearUser removes all cart items for a user
	ClearUser(ctx context.Context, userID uint) error
}

// BookInfo is the catalog view the cart needs
type BookInfo struct {
	ID             uint
	Title          string
	CoverImage     string
	Price          float64
	EffectivePrice float64
	Stock          int
}

// BookCatalog defines the interface for catalog lookups
type BookCatalog interface {
	// GetBook retrieves a book by ID
	GetBook(ctx context.Context, bookID uint) (*BookInfo, error)
}
