package domain

import (
	"time"
)

// BookStatus represents the publication status of a book
type BookStatus string

const (
	BookStatusActive     BookStatus = "ACTIVE"
	BookStatusInactive   BookStatus = "INACTIVE"
	BookStatusOutOfPrint BookStatus = "OUT_OF_PRINT"
)

// Category groups books
type Category struct {
	ID          uint
	Name        string
	NameVi      string
	Slug        string
	Description string
	Image       string
}

// Author of a book
type Author struct {
	ID          uint
	Name        string
	NameVi      string
	Bio         string
	Nationality string
}

// Publisher of a book
type Publisher struct {
	ID      uint
	Name    string
	NameVi  string
	Website string
	Address string
}

// Book represents the catalog book entity
type Book struct {
	ID          uint
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
	Status      BookStatus
	Featured    bool
	CategoryID  uint
	PublisherID uint
	Category    *Category
	Publisher   *Publisher
	Authors     []Author
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EffectivePrice is the sale price when set and lower than the list price,
// otherwise the list price.
func (b *Book) EffectivePrice() float64 {
	if b.SalePrice != nil && *b.SalePrice > 0 && *b.SalePrice < b.Price {
		return *b.SalePrice
	}
	return b.Price
}

// InStock reports whether the requested quantity is available
func (b *Book) InStock(quantity int) bool {
	return b.Stock >= quantity
}

// Validate validates the book entity
func (b *Book) Validate() error {
	if b.Title == "" {
		return ErrTitleRequired
	}
	if b.Price <= 0 {
		return ErrInvalidPrice
	}
	if b.SalePrice != nil && *b.SalePrice < 0 {
		return ErrInvalidPrice
	}
	if b.Stock < 0 {
		return ErrInvalidStock
	}
	if b.CategoryID == 0 {
		return ErrCategoryRequired
	}
	return nil
}

// NewBook creates a new book with validation
func NewBook(title string, price float64, stock int, categoryID uint) (*Book, error) {
	book := &Book{
		Title:      title,
		Price:      price,
		Stock:      stock,
		Status:     BookStatusActive,
		Language:   "en",
		CategoryID: categoryID,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}
