package infrastructure

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookstore/internal/catalog/application"
	"bookstore/internal/catalog/domain"
	"bookstore/pkg/errors"
	"bookstore/pkg/middleware"
)

// HTTPHandler handles HTTP requests for the catalog
type HTTPHandler struct {
	useCase *application.CatalogUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.CatalogUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the catalog routes
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup, admin *gin.RouterGroup) {
	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/:id", h.GetBook)
	}
	r.GET("/categories", h.ListCategories)

	adminBooks := admin.Group("/books")
	{
		adminBooks.POST("", h.CreateBook)
		adminBooks.PUT("/:id", h.UpdateBook)
		adminBooks.DELETE("/:id", h.DeleteBook)
	}
	admin.POST("/categories", h.CreateCategory)
}

// BookResponse is the response body for book operations
type BookResponse struct {
	ID             uint              `json:"id"`
	Title          string            `json:"title"`
	TitleVi        string            `json:"title_vi,omitempty"`
	ISBN           string            `json:"isbn,omitempty"`
	Description    string            `json:"description,omitempty"`
	Price          float64           `json:"price"`
	SalePrice      *float64          `json:"sale_price,omitempty"`
	EffectivePrice float64           `json:"effective_price"`
	CoverImage     string            `json:"cover_image,omitempty"`
	Stock          int               `json:"stock"`
	Status         string            `json:"status"`
	Featured       bool              `json:"featured"`
	Category       *CategoryResponse `json:"category,omitempty"`
	Authors        []AuthorResponse  `json:"authors,omitempty"`
	CreatedAt      string            `json:"created_at"`
}

// CategoryResponse is the response body for categories
type CategoryResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	NameVi string `json:"name_vi,omitempty"`
	Slug   string `json:"slug"`
}

// AuthorResponse is the response body for authors
type AuthorResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// PaginationResponse is the pagination block returned by list endpoints
type PaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func toBookResponse(book *domain.Book) BookResponse {
	resp := BookResponse{
		ID:             book.ID,
		Title:          book.Title,
		TitleVi:        book.TitleVi,
		ISBN:           book.ISBN,
		Description:    book.Description,
		Price:          book.Price,
		SalePrice:      book.SalePrice,
		EffectivePrice: book.EffectivePrice(),
		CoverImage:     book.CoverImage,
		Stock:          book.Stock,
		Status:         string(book.Status),
		Featured:       book.Featured,
		CreatedAt:      book.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if book.Category != nil {
		resp.Category = &CategoryResponse{
			ID:     book.Category.ID,
			Name:   book.Category.Name,
			NameVi: book.Category.NameVi,
			Slug:   book.Category.Slug,
		}
	}
	for _, a := range book.Authors {
		resp.Authors = append(resp.Authors, AuthorResponse{ID: a.ID, Name: a.Name})
	}
	return resp
}

// ListBooks lists books
// @Summary List books
// @Description List active books with pagination, filters and search
// @Tags catalog
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param category query int false "Category ID filter"
// @Param search query string false "Text search"
// @Success 200 {object} map[string]interface{} "Books page"
// @Router /api/v1/books [get]
func (h *HTTPHandler) ListBooks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	categoryID, _ := strconv.ParseUint(c.Query("category"), 10, 32)
	authorID, _ := strconv.ParseUint(c.Query("author"), 10, 32)

	output, err := h.useCase.ListBooks(c.Request.Context(), application.ListBooksInput{
		Page:       page,
		Limit:      limit,
		CategoryID: uint(categoryID),
		AuthorID:   uint(authorID),
		Search:     c.Query("search"),
		Sort:       c.DefaultQuery("sort", "createdAt"),
		Order:      c.DefaultQuery("order", "desc"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	books := make([]BookResponse, len(output.Books))
	for i, b := range output.Books {
		books[i] = toBookResponse(b)
	}

	c.JSON(http.StatusOK, gin.H{
		"books": books,
		"pagination": PaginationResponse{
			Page:       output.Page,
			Limit:      output.Limit,
			Total:      output.Total,
			TotalPages: output.TotalPages,
		},
	})
}

// GetBook retrieves a book
// @Summary Get a book by ID
// @Tags catalog
// @Produce json
// @Param id path int true "Book ID"
// @Success 200 {object} BookResponse
// @Failure 404 {object} errors.ErrorResponse "Book not found"
// @Router /api/v1/books/{id} [get]
func (h *HTTPHandler) GetBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid book id", nil))
		return
	}

	book, err := h.useCase.GetBook(c.Request.Context(), uint(id))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     toBookResponse(book),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// CreateBookRequest is the request body for creating a book
type CreateBookRequest struct {
	Title       string   `json:"title" binding:"required"`
	TitleVi     string   `json:"title_vi"`
	ISBN        string   `json:"isbn"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	SalePrice   *float64 `json:"sale_price"`
	CoverImage  string   `json:"cover_image"`
	PageCount   int      `json:"page_count"`
	Language    string   `json:"language"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Featured    bool     `json:"featured"`
	CategoryID  uint     `json:"category_id" binding:"required"`
	PublisherID uint     `json:"publisher_id"`
}

// CreateBook creates a book
// @Summary Create a book
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body CreateBookRequest true "Book"
// @Success 201 {object} BookResponse
// @Failure 400 {object} errors.ErrorResponse "Validation error"
// @Router /api/v1/admin/books [post]
func (h *HTTPHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	book, err := h.useCase.CreateBook(c.Request.Context(), application.CreateBookInput{
		Title:       req.Title,
		TitleVi:     req.TitleVi,
		ISBN:        req.ISBN,
		Description: req.Description,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		CoverImage:  req.CoverImage,
		PageCount:   req.PageCount,
		Language:    req.Language,
		Stock:       req.Stock,
		Featured:    req.Featured,
		CategoryID:  req.CategoryID,
		PublisherID: req.PublisherID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":     toBookResponse(book),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// UpdateBookRequest is the request body for updating a book
type UpdateBookRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	SalePrice   *float64 `json:"sale_price"`
	Stock       *int     `json:"stock"`
	Status      *string  `json:"status"`
	Featured    *bool    `json:"featured"`
}

// UpdateBook updates a book
// @Summary Update a book
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Book ID"
// @Param request body UpdateBookRequest true "Fields to update"
// @Success 200 {object} BookResponse
// @Router /api/v1/admin/books/{id} [put]
func (h *HTTPHandler) UpdateBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid book id", nil))
		return
	}

	var req UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	input := application.UpdateBookInput{
		ID:          uint(id),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		SalePrice:   req.SalePrice,
		Stock:       req.Stock,
		Featured:    req.Featured,
	}
	if req.Status != nil {
		status := domain.BookStatus(*req.Status)
		input.Status = &status
	}

	book, err := h.useCase.UpdateBook(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     toBookResponse(book),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// DeleteBook deletes a book
// @Summary Delete a book
// @Tags catalog
// @Security ApiKeyAuth
// @Param id path int true "Book ID"
// @Success 204 "Deleted"
// @Router /api/v1/admin/books/{id} [delete]
func (h *HTTPHandler) DeleteBook(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid book id", nil))
		return
	}

	if err := h.useCase.DeleteBook(c.Request.Context(), uint(id)); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListCategories lists categories
// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/categories [get]
func (h *HTTPHandler) ListCategories(c *gin.Context) {
	categories, err := h.useCase.ListCategories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	resp := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		resp[i] = CategoryResponse{
			ID:     cat.ID,
			Name:   cat.Name,
			NameVi: cat.NameVi,
			Slug:   cat.Slug,
		}
	}

	c.JSON(http.StatusOK, gin.H{"categories": resp})
}

// CreateCategoryRequest is the request body for creating a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	NameVi      string `json:"name_vi"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory creates a category
// @Summary Create a category
// @Tags catalog
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body CreateCategoryRequest true "Category"
// @Success 201 {object} CategoryResponse
// @Router /api/v1/admin/categories [post]
func (h *HTTPHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	category, err := h.useCase.CreateCategory(c.Request.Context(), application.CreateCategoryInput{
		Name:        req.Name,
		NameVi:      req.NameVi,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": CategoryResponse{
			ID:     category.ID,
			Name:   category.Name,
			NameVi: category.NameVi,
			Slug:   category.Slug,
		},
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}
