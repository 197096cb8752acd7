package infrastructure

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookstore/internal/cart/application"
	"bookstore/pkg/errors"
	"bookstore/pkg/identity"
	"bookstore/pkg/middleware"
)

// HTTPHandler handles HTTP requests for the cart
type HTTPHandler struct {
	useCase *application.CartUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.CartUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the cart routes (all require authentication)
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	cart := r.Group("/cart", middleware.RequireUser())
	{
		cart.GET("", h.GetCart)
		cart.POST("", h.AddItem)
		cart.PUT("/:id", h.UpdateItem)
		cart.DELETE("/:id", h.RemoveItem)
		cart.DELETE("", h.Clear)
	}
}

// CartItemResponse is one cart line in responses
type CartItemResponse struct {
	ID       uint         `json:"id"`
	BookID   uint         `json:"book_id"`
	Quantity int          `json:"quantity"`
	Book     BookSnapshot `json:"book"`
}

// BookSnapshot is the embedded book view in cart responses
type BookSnapshot struct {
	ID             uint    `json:"id"`
	Title          string  `json:"title"`
	CoverImage     string  `json:"cover_image,omitempty"`
	Price          float64 `json:"price"`
	EffectivePrice float64 `json:"effective_price"`
	Stock          int     `json:"stock"`
}

func toItemResponse(line *application.CartLine) CartItemResponse {
	return CartItemResponse{
		ID:       line.Item.ID,
		BookID:   line.Item.BookID,
		Quantity: line.Item.Quantity,
		Book: BookSnapshot{
			ID:             line.Book.ID,
			Title:          line.Book.Title,
			CoverImage:     line.Book.CoverImage,
			Price:          line.Book.Price,
			EffectivePrice: line.Book.EffectivePrice,
			Stock:          line.Book.Stock,
		},
	}
}

// GetCart returns the cart
// @Summary Get the current user's cart
// @Tags cart
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} map[string]interface{} "Cart items and totals"
// @Failure 401 {object} errors.ErrorResponse "Unauthenticated"
// @Router /api/v1/cart [get]
func (h *HTTPHandler) GetCart(c *gin.Context) {
	caller, _ := identity.FromContext(c.Request.Context())

	output, err := h.useCase.GetCart(c.Request.Context(), caller.ID)
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]CartItemResponse, len(output.Lines))
	for i := range output.Lines {
		items[i] = toItemResponse(&output.Lines[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": output.Total,
		"count": output.Count,
	})
}

// AddItemRequest is the request body for adding a book to the cart
type AddItemRequest struct {
	BookID   uint `json:"bookId" binding:"required"`
	Quantity int  `json:"quantity"`
}

// AddItem adds a book to the cart
// @Summary Add a book to the cart
// @Tags cart
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body AddItemRequest true "Book and quantity"
// @Success 200 {object} CartItemResponse
// @Failure 400 {object} errors.ErrorResponse "Insufficient stock"
// @Failure 404 {object} errors.ErrorResponse "Book not found"
// @Router /api/v1/cart [post]
func (h *HTTPHandler) AddItem(c *gin.Context) {
	caller, _ := identity.FromContext(c.Request.Context())

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	line, err := h.useCase.AddItem(c.Request.Context(), application.AddItemInput{
		UserID:   caller.ID,
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     toItemResponse(line),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// UpdateItemRequest is the request body for updating a cart line
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

// UpdateItem sets a cart line quantity
// @Summary Update a cart line quantity
// @Tags cart
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param id path int true "Cart item ID"
// @Param request body UpdateItemRequest true "New quantity"
// @Success 200 {object} CartItemResponse
// @Router /api/v1/cart/{id} [put]
func (h *HTTPHandler) UpdateItem(c *gin.Context) {
	caller, _ := identity.FromContext(c.Request.Context())

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid cart item id", nil))
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	line, err := h.useCase.UpdateItem(c.Request.Context(), application.UpdateItemInput{
		UserID:   caller.ID,
		ItemID:   uint(id),
		Quantity: req.Quantity,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     toItemResponse(line),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// RemoveItem removes a cart line
// @Summary Remove a cart line
// @Tags cart
// @Security ApiKeyAuth
// @Param id path int true "Cart item ID"
// @Success 204 "Removed"
// @Router /api/v1/cart/{id} [delete]
func (h *HTTPHandler) RemoveItem(c *gin.Context) {
	caller, _ := identity.FromContext(c.Request.Context())

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid cart item id", nil))
		return
	}

	if err := h.useCase.RemoveItem(c.Request.Context(), caller.ID, uint(id)); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Clear empties the cart
// @Summary Clear the cart
// @Tags cart
// @Security ApiKeyAuth
// @Success 204 "Cleared"
// @Router /api/v1/cart [delete]
func (h *HTTPHandler) Clear(c *gin.Context) {
	caller, _ := identity.FromContext(c.Request.Context())

	if err := h.useCase.Clear(c.Request.Context(), caller.ID); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
