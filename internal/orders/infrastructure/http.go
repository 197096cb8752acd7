package infrastructure

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"bookstore/internal/orders/application"
	"bookstore/internal/orders/domain"
	"bookstore/pkg/errors"
	"bookstore/pkg/identity"
	"bookstore/pkg/middleware"
)

// HTTPHandler handles HTTP requests for orders
type HTTPHandler struct {
	useCase *application.OrderUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.OrderUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the order routes (all require authentication)
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders", middleware.RequireUser())
	{
		orders.POST("", h.PlaceOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
	}
}

// OrderLineRequest is one requested purchase line
type OrderLineRequest struct {
	BookID   uint `json:"bookId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,gte=1"`
}

// AddressRequest is an address in requests
type AddressRequest struct {
	FullName   string `json:"fullName" binding:"required"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

func (a *AddressRequest) toDomain() domain.Address {
	return domain.Address{
		FullName:   a.FullName,
		Phone:      a.Phone,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Province:   a.Province,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

// PlaceOrderRequest is the request body for placing an order
type PlaceOrderRequest struct {
	Items           []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
	PaymentMethod   string             `json:"paymentMethod" binding:"required"`
	ShippingAddress AddressRequest     `json:"shippingAddress" binding:"required"`
	BillingAddress  *AddressRequest    `json:"billingAddress"`
}

// OrderItemResponse is one order line in responses
type OrderItemResponse struct {
	ID       uint    `json:"id"`
	BookID   uint    `json:"book_id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Book     struct {
		Title      string `json:"title"`
		CoverImage string `json:"cover_image,omitempty"`
	} `json:"book"`
}

// OrderResponse is the response body for order operations
type OrderResponse struct {
	ID              uint                `json:"id"`
	OrderNumber     string              `json:"order_number"`
	Status          string              `json:"status"`
	PaymentMethod   string              `json:"payment_method"`
	PaymentStatus   string              `json:"payment_status"`
	Subtotal        float64             `json:"subtotal"`
	ShippingCost    float64             `json:"shipping_cost"`
	Tax             float64             `json:"tax"`
	Total           float64             `json:"total"`
	ShippingAddress domain.Address      `json:"shipping_address"`
	BillingAddress  domain.Address      `json:"billing_address"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       string              `json:"created_at"`
}

func toOrderResponse(order *domain.Order) OrderResponse {
	resp := OrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		Status:          string(order.Status),
		PaymentMethod:   order.PaymentMethod.Key(),
		PaymentStatus:   string(order.PaymentStatus),
		Subtotal:        order.Subtotal,
		ShippingCost:    order.ShippingCost,
		Tax:             order.Tax,
		Total:           order.Total,
		ShippingAddress: order.ShippingAddress,
		BillingAddress:  order.BillingAddress,
		CreatedAt:       order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	for _, item := range order.Items {
		ir := OrderItemResponse{
			ID:       item.ID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
		ir.Book.Title = item.BookTitle
		ir.Book.CoverImage = item.BookCoverImage
		resp.Items = append(resp.Items, ir)
	}

	return resp
}

// PlaceOrder places an order
// @Summary Place an order
// @Description Convert a selection of books into a persisted order. Stock is decremented and the purchased books are removed from the cart atomically.
// @Tags orders
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body PlaceOrderRequest true "Order request"
// @Success 201 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse "Validation error or insufficient stock"
// @Failure 401 {object} errors.ErrorResponse "Unauthenticated"
// @Router /api/v1/orders [post]
func (h *HTTPHandler) PlaceOrder(c *gin.Context) {
	caller, _ := identity.FromContext(c.Request.Context())

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	input := application.PlaceOrderInput{
		UserID:          caller.ID,
		PaymentMethod:   req.PaymentMethod,
		ShippingAddress: req.ShippingAddress.toDomain(),
	}
	for _, line := range req.Items {
		input.Items = append(input.Items, application.OrderLine{
			BookID:   line.BookID,
			Quantity: line.Quantity,
		})
	}
	if req.BillingAddress != nil {
		billing := req.BillingAddress.toDomain()
		input.BillingAddress = &billing
	}

	output, err := h.useCase.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":     toOrderResponse(output.Order),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// GetOrder retrieves an order
// @Summary Get an order by ID
// @Description Retrieve one of the caller's orders. Another user's order yields 403, a nonexistent one 404.
// @Tags orders
// @Security ApiKeyAuth
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} OrderResponse
// @Failure 403 {object} errors.ErrorResponse "Order belongs to another user"
// @Failure 404 {object} errors.ErrorResponse "Order not found"
// @Router /api/v1/orders/{id} [get]
func (h *HTTPHandler) GetOrder(c *gin.Context) {
	caller, _ := identity.FromContext(c.Request.Context())

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid order id", nil))
		return
	}

	output, err := h.useCase.GetOrder(c.Request.Context(), application.GetOrderInput{
		ID:     uint(id),
		UserID: caller.ID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     toOrderResponse(output.Order),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// ListOrders lists the caller's orders
// @Summary List the caller's orders
// @Tags orders
// @Security ApiKeyAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter"
// @Success 200 {object} map[string]interface{} "Orders page"
// @Router /api/v1/orders [get]
func (h *HTTPHandler) ListOrders(c *gin.Context) {
	caller, _ := identity.FromContext(c.Request.Context())

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	output, err := h.useCase.ListOrders(c.Request.Context(), application.ListOrdersInput{
		UserID: caller.ID,
		Page:   page,
		Limit:  limit,
		Status: c.Query("status"),
	})
	if err != nil {
		c.Error(err)
		return
	}

	orders := make([]OrderResponse, len(output.Orders))
	for i, order := range output.Orders {
		orders[i] = toOrderResponse(order)
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"pagination": gin.H{
			"page":       output.Page,
			"limit":      output.Limit,
			"total":      output.Total,
			"totalPages": output.TotalPages,
		},
	})
}
