package ports

import (
	"context"

	"bookstore/internal/orders/domain"
)

// ListOrdersQuery is the filter set for listing a user's orders
type ListOrdersQuery struct {
	UserID uint
	Page   int
	Limit  int
	Status domain.OrderStatus
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Place persists the order with its items, decrements each purchased
	// book's stock and removes the purchased books from the user's cart,
	// all in one atomic transaction. The stock check is re-evaluated
	// inside the transaction; on a shortfall nothing is persisted.
	Place(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order with its items and book snapshots
	GetByID(ctx context.Context, id uint) (*domain.Order, error)

	// ListByUser retrieves a page of a user's orders, newest first,
	// plus the total count
	ListByUser(ctx context.Context, query ListOrdersQuery) ([]*domain.Order, int64, error)

	// UpdateStatus transitions an order's fulfillment status
	UpdateStatus(ctx context.Context, orderNumber string, from, to domain.OrderStatus) error
}

// BookInfo is the catalog view the order workflow needs
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

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// PublishOrderCreated publishes an order created event
	PublishOrderCreated(ctx context.Context, order *domain.Order) error
}
