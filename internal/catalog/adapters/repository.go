package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"bookstore/internal/catalog/domain"
	"bookstore/internal/catalog/ports"
	apperrors "bookstore/pkg/errors"
)

// CategoryModel is the GORM model for categories
type CategoryModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:200;not null"`
	NameVi      string `gorm:"size:200"`
	Slug        string `gorm:"size:200;uniqueIndex;not null"`
	Description string
	Image       string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// AuthorModel is the GORM model for authors
type AuthorModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:200;not null"`
	NameVi      string `gorm:"size:200"`
	Bio         string
	Nationality string `gorm:"size:100"`
}

// TableName returns the table name for GORM
func (AuthorModel) TableName() string {
	return "authors"
}

// PublisherModel is the GORM model for publishers
type PublisherModel struct {
	ID      uint   `gorm:"primaryKey"`
	Name    string `gorm:"size:200;not null"`
	NameVi  string `gorm:"size:200"`
	Website string
	Address string
}

// TableName returns the table name for GORM
func (PublisherModel) TableName() string {
	return "publishers"
}

// BookModel is the GORM model for books
type BookModel struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:300;not null;index"`
	TitleVi     string `gorm:"size:300"`
	ISBN        string `gorm:"column:isbn;size:20;index"`
	Description string
	Price       float64  `gorm:"not null"`
	SalePrice   *float64 `gorm:"default:null"`
	CoverImage  string
	PageCount   int
	Language    string            `gorm:"size:10;default:'en'"`
	Stock       int               `gorm:"not null;default:0"`
	Status      domain.BookStatus `gorm:"size:20;not null;default:'ACTIVE'"`
	Featured    bool              `gorm:"default:false"`
	CategoryID  uint              `gorm:"index;not null"`
	PublisherID uint              `gorm:"index"`
	Category    *CategoryModel    `gorm:"foreignKey:CategoryID"`
	Publisher   *PublisherModel   `gorm:"foreignKey:PublisherID"`
	Authors     []AuthorModel     `gorm:"many2many:book_authors"`
	CreatedAt   time.Time         `gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (BookModel) TableName() string {
	return "books"
}

// PostgresCatalogRepository implements the catalog repositories using PostgreSQL
type PostgresCatalogRepository struct {
	db *gorm.DB
}

// NewPostgresCatalogRepository creates a new PostgreSQL catalog repository
func NewPostgresCatalogRepository(db *gorm.DB) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{db: db}
}

// Migrate runs auto-migration for the catalog models
func (r *PostgresCatalogRepository) Migrate() error {
	return r.db.AutoMigrate(
		&CategoryModel{},
		&AuthorModel{},
		&PublisherModel{},
		&BookModel{},
	)
}

// Create creates a new book
func (r *PostgresCatalogRepository) Create(ctx context.Context, book *domain.Book) error {
	model := toBookModel(book)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	book.ID = model.ID
	book.CreatedAt = model.CreatedAt
	book.UpdatedAt = model.UpdatedAt

	return nil
}

// GetByID retrieves a book by ID with its relations
func (r *PostgresCatalogRepository) GetByID(ctx context.Context, id uint) (*domain.Book, error) {
	var model BookModel

	result := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Publisher").
		Preload("Authors").
		First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewBookNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get book", result.Error)
	}

	return toBookDomain(&model), nil
}

// sortColumns whitelists the sortable columns
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
	"title":     "title",
}

// List retrieves active books matching the query plus the total count
func (r *PostgresCatalogRepository) List(ctx context.Context, query ports.ListBooksQuery) ([]*domain.Book, int64, error) {
	tx := r.db.WithContext(ctx).Model(&BookModel{}).
		Where("status = ?", domain.BookStatusActive)

	if query.CategoryID != 0 {
		tx = tx.Where("category_id = ?", query.CategoryID)
	}
	if query.AuthorID != 0 {
		tx = tx.Where(
			"id IN (SELECT book_model_id FROM book_authors WHERE author_model_id = ?)",
			query.AuthorID,
		)
	}
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		tx = tx.Where(
			"title ILIKE ? OR title_vi ILIKE ? OR description ILIKE ? OR isbn ILIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewInternal("failed to count books", err)
	}

	column, ok := sortColumns[query.Sort]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if query.Order == "asc" {
		direction = "ASC"
	}

	var models []BookModel
	result := tx.
		Preload("Category").
		Preload("Publisher").
		Preload("Authors").
		Order(column + " " + direction).
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, apperrors.NewInternal("failed to list books", result.Error)
	}

	books := make([]*domain.Book, len(models))
	for i := range models {
		books[i] = toBookDomain(&models[i])
	}

	return books, total, nil
}

// Update updates an existing book
func (r *PostgresCatalogRepository) Update(ctx context.Context, book *domain.Book) error {
	model := toBookModel(book)

	result := r.db.WithContext(ctx).Omit("Category", "Publisher", "Authors").Save(model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to update book", result.Error)
	}

	book.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete deletes a book by ID
func (r *PostgresCatalogRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.NewInternal("failed to delete book", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewBookNotFound(id)
	}
	return nil
}

// CategoryRepo exposes the category repository backed by the same connection
func (r *PostgresCatalogRepository) CategoryRepo() *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: r.db}
}

// PostgresCategoryRepository implements CategoryRepository using PostgreSQL
type PostgresCategoryRepository struct {
	db *gorm.DB
}

// Create creates a new category
func (r *PostgresCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	model := toCategoryModel(category)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to create category", result.Error)
	}

	category.ID = model.ID
	return nil
}

// GetByID retrieves a category by ID
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id uint) (*domain.Category, error) {
	var model CategoryModel

	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewCategoryNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get category", result.Error)
	}

	return toCategoryDomain(&model), nil
}

// List retrieves all categories ordered by name
func (r *PostgresCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	var models []CategoryModel

	result := r.db.WithContext(ctx).Order("name ASC").Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to list categories", result.Error)
	}

	categories := make([]*domain.Category, len(models))
	for i := range models {
		categories[i] = toCategoryDomain(&models[i])
	}

	return categories, nil
}

// Delete deletes a category by ID
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&CategoryModel{}, id)
	if result.Error != nil {
		return apperrors.NewInternal("failed to delete category", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewCategoryNotFound(id)
	}
	return nil
}

// toBookModel converts a domain entity to a GORM model
func toBookModel(book *domain.Book) *BookModel {
	return &BookModel{
		ID:          book.ID,
		Title:       book.Title,
		TitleVi:     book.TitleVi,
		ISBN:        book.ISBN,
		Description: book.Description,
		Price:       book.Price,
		SalePrice:   book.SalePrice,
		CoverImage:  book.CoverImage,
		PageCount:   book.PageCount,
		Language:    book.Language,
		Stock:       book.Stock,
		Status:      book.Status,
		Featured:    book.Featured,
		CategoryID:  book.CategoryID,
		PublisherID: book.PublisherID,
		CreatedAt:   book.CreatedAt,
		UpdatedAt:   book.UpdatedAt,
	}
}

// toBookDomain converts a GORM model to a domain entity
func toBookDomain(model *BookModel) *domain.Book {
	book := &domain.Book{
		ID:          model.ID,
		Title:       model.Title,
		TitleVi:     model.TitleVi,
		ISBN:        model.ISBN,
		Description: model.Description,
		Price:       model.Price,
		SalePrice:   model.SalePrice,
		CoverImage:  model.CoverImage,
		PageCount:   model.PageCount,
		Language:    model.Language,
		Stock:       model.Stock,
		Status:      model.Status,
		Featured:    model.Featured,
		CategoryID:  model.CategoryID,
		PublisherID: model.PublisherID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}

	if model.Category != nil {
		book.Category = toCategoryDomain(model.Category)
	}
	if model.Publisher != nil {
		book.Publisher = &domain.Publisher{
			ID:      model.Publisher.ID,
			Name:    model.Publisher.Name,
			NameVi:  model.Publisher.NameVi,
			Website: model.Publisher.Website,
			Address: model.Publisher.Address,
		}
	}
	for _, a := range model.Authors {
		book.Authors = append(book.Authors, domain.Author{
			ID:          a.ID,
			Name:        a.Name,
			NameVi:      a.NameVi,
			Bio:         a.Bio,
			Nationality: a.Nationality,
		})
	}

	return book
}

// toCategoryModel converts a domain entity to a GORM model
func toCategoryModel(category *domain.Category) *CategoryModel {
	return &CategoryModel{
		ID:          category.ID,
		Name:        category.Name,
		NameVi:      category.NameVi,
		Slug:        category.Slug,
		Description: category.Description,
		Image:       category.Image,
	}
}

// toCategoryDomain converts a GORM model to a domain entity
func toCategoryDomain(model *CategoryModel) *domain.Category {
	return &domain.Category{
		ID:          model.ID,
		Name:        model.Name,
		NameVi:      model.NameVi,
		Slug:        model.Slug,
		Description: model.Description,
		Image:       model.Image,
	}
}
