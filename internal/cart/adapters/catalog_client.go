package adapters

import (
	"context"

	catalogapp "bookstore/internal/catalog/application"
	"bookstore/internal/cart/ports"
)

// CatalogClient adapts the catalog use case to the cart's BookCatalog port
type CatalogClient struct {
	catalog *catalogapp.CatalogUseCase
}

// NewCatalogClient creates a new catalog client
func NewCatalogClient(catalog *catalogapp.CatalogUseCase) *CatalogClient {
	return &CatalogClient{catalog: catalog}
}

// GetBook retrieves a book by ID
func (c *CatalogClient) GetBook(ctx context.Context, bookID uint) (*ports.BookInfo, error) {
	book, err := c.catalog.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return &ports.BookInfo{
		ID:             book.ID,
		Title:          book.Title,
		CoverImage:     book.CoverImage,
		Price:          book.Price,
		EffectivePrice: book.EffectivePrice(),
		Stock:          book.Stock,
	}, nil
}
