package application

import (
	"context"

	"go.uber.org/zap"

	"bookstore/internal/catalog/domain"
	"bookstore/internal/catalog/ports"
	"bookstore/pkg/errors"
	"bookstore/pkg/logger"
)

// CatalogUseCase handles catalog business logic
type CatalogUseCase struct {
	books      ports.BookRepository
	categories ports.CategoryRepository
	log        *logger.Logger
}

// NewCatalogUseCase creates a new catalog use case
func NewCatalogUseCase(
	books ports.BookRepository,
	categories ports.CategoryRepository,
	log *logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		books:      books,
		categories: categories,
		log:        log,
	}
}

// ListBooksInput represents the input for listing books
type ListBooksInput struct {
	Page       int
	Limit      int
	CategoryID uint
	AuthorID   uint
	Search     string
	Sort       string
	Order      string
}

// ListBooksOutput represents a page of books
type ListBooksOutput struct {
	Books      []*domain.Book
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListBooks retrieves a page of active books
func (uc *CatalogUseCase) ListBooks(ctx context.Context, input ListBooksInput) (*ListBooksOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}

	books, total, err := uc.books.List(ctx, ports.ListBooksQuery{
		Page:       input.Page,
		Limit:      input.Limit,
		CategoryID: input.CategoryID,
		AuthorID:   input.AuthorID,
		Search:     input.Search,
		Sort:       input.Sort,
		Order:      input.Order,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(input.Limit) - 1) / int64(input.Limit))

	return &ListBooksOutput{
		Books:      books,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetBook retrieves a book by ID
func (uc *CatalogUseCase) GetBook(ctx context.Context, id uint) (*domain.Book, error) {
	return uc.books.GetByID(ctx, id)
}

// CreateBookInput represents the input for creating a book
type CreateBookInput struct {
	Title       string
	TitleVi     string
	ISBN        string
	Description string
	Price       float64
	SalePrice   *float64
	CoverImage  string
	PageCount   int
	Language    string
	Stock       int
	Featured    bool
	CategoryID  uint
	PublisherID uint
}

// CreateBook creates a new catalog book
func (uc *CatalogUseCase) CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error) {
	if _, err := uc.categories.GetByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	book, err := domain.NewBook(input.Title, input.Price, input.Stock, input.CategoryID)
	if err != nil {
		return nil, err
	}

	book.TitleVi = input.TitleVi
	book.ISBN = input.ISBN
	book.Description = input.Description
	book.SalePrice = input.SalePrice
	book.CoverImage = input.CoverImage
	book.PageCount = input.PageCount
	if input.Language != "" {
		book.Language = input.Language
	}
	book.Featured = input.Featured
	book.PublisherID = input.PublisherID

	if err := book.Validate(); err != nil {
		return nil, err
	}

	if err := uc.books.Create(ctx, book); err != nil {
		return nil, errors.NewInternal("failed to create book", err)
	}

	uc.log.WithContext(ctx).Info("book created",
		zap.Uint("book_id", book.ID),
		zap.String("title", book.Title),
	)

	return book, nil
}

// UpdateBookInput represents the input for updating a book
type UpdateBookInput struct {
	ID          uint
	Title       *string
	Description *string
	Price       *float64
	SalePrice   *float64
	Stock       *int
	Status      *domain.BookStatus
	Featured    *bool
}

// UpdateBook applies a partial update to a book
func (uc *CatalogUseCase) UpdateBook(ctx context.Context, input UpdateBookInput) (*domain.Book, error) {
	book, err := uc.books.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		book.Title = *input.Title
	}
	if input.Description != nil {
		book.Description = *input.Description
	}
	if input.Price != nil {
		book.Price = *input.Price
	}
	if input.SalePrice != nil {
		book.SalePrice = input.SalePrice
	}
	if input.Stock != nil {
		book.Stock = *input.Stock
	}
	if input.Status != nil {
		book.Status = *input.Status
	}
	if input.Featured != nil {
		book.Featured = *input.Featured
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	if err := uc.books.Update(ctx, book); err != nil {
		return nil, errors.NewInternal("failed to update book", err)
	}

	return book, nil
}

// DeleteBook deletes a book by ID
func (uc *CatalogUseCase) DeleteBook(ctx context.Context, id uint) error {
	return uc.books.Delete(ctx, id)
}

// ListCategories retrieves all categories
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return uc.categories.List(ctx)
}

// CreateCategoryInput represents the input for creating a category
type CreateCategoryInput struct {
	Name        string
	NameVi      string
	Slug        string
	Description string
}

// CreateCategory creates a new category
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	if input.Name == "" {
		return nil, errors.NewValidation("name is required", nil)
	}
	if input.Slug == "" {
		return nil, errors.NewValidation("slug is required", nil)
	}

	category := &domain.Category{
		Name:        input.Name,
		NameVi:      input.NameVi,
		Slug:        input.Slug,
		Description: input.Description,
	}

	if err := uc.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}
