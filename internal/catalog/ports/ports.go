package ports

import (
	"context"

	"bookstore/internal/catalog/domain"
)

// ListBooksQuery is the filter set for listing books
type ListBooksQuery struct {
	Page       int
	Limit      int
	CategoryID uint
	AuthorID   uint
	Search     string
	Sort       string
	Order      string
}

// BookRepository defines the interface for book persistence
type BookRepository interface {
	// Create creates a new book
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book by ID
	GetByID(ctx context.Context, id uint) (*domain.Book, error)

	// List retrieves active books matching the query plus the total count
	List(ctx context.Context, query ListBooksQuery) ([]*domain.Book, int64, error)

	// Update updates an existing book
	Update(ctx context.Context, book *domain.Book) error

	// Delete deletes a book by ID
	Delete(ctx context.Context, id uint) error
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id uint) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Delete(ctx context.Context, id uint) error
}
