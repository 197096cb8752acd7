package infrastructure

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore/internal/payment/application"
	"bookstore/pkg/errors"
	"bookstore/pkg/identity"
	"bookstore/pkg/middleware"
)

// HTTPHandler handles HTTP requests for payments
type HTTPHandler struct {
	useCase *application.PaymentUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.PaymentUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the payment routes. The IPN and return endpoints
// are called by the gateway and the returning browser, so they carry no
// session; authenticity comes from the signature instead.
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	payment := r.Group("/payment")
	{
		payment.POST("/vnpay/ipn", h.HandleIPN)
		payment.GET("/vnpay/return", h.HandleReturn)
		payment.POST("/vnpay/create", middleware.RequireUser(), h.CreatePayment)
	}
}

// callbackParams flattens the request's query and form parameters to the
// single-valued map the signature scheme is defined over
func callbackParams(c *gin.Context) map[string]string {
	_ = c.Request.ParseForm()

	params := make(map[string]string, len(c.Request.Form))
	for key, values := range c.Request.Form {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

// HandleIPN handles the gateway's server-to-server payment notification
// @Summary VNPay IPN callback
// @Description Verify and apply a gateway payment notification. The response is always HTTP 200; the outcome is carried in RspCode.
// @Tags payment
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} application.IPNResponse
// @Router /api/v1/payment/vnpay/ipn [post]
func (h *HTTPHandler) HandleIPN(c *gin.Context) {
	resp := h.useCase.HandleIPN(c.Request.Context(), callbackParams(c))
	c.JSON(http.StatusOK, resp)
}

// HandleReturn handles the browser redirect back from the gateway
// @Summary VNPay return redirect
// @Description Verify the gateway redirect and forward the user to the success or error page.
// @Tags payment
// @Success 302
// @Router /api/v1/payment/vnpay/return [get]
func (h *HTTPHandler) HandleReturn(c *gin.Context) {
	redirect := h.useCase.HandleReturn(c.Request.Context(), callbackParams(c))
	c.Redirect(http.StatusFound, redirect)
}

// CreatePaymentRequest is the request body for initiating a payment
type CreatePaymentRequest struct {
	OrderID uint `json:"orderId" binding:"required"`
}

// CreatePayment initiates an online payment for one of the caller's orders
// @Summary Initiate a VNPay payment
// @Tags payment
// @Security ApiKeyAuth
// @Accept json
// @Produce json
// @Param request body CreatePaymentRequest true "Payment request"
// @Failure 404 {object} errors.ErrorResponse "Order not found"
// @Failure 501 {object} errors.ErrorResponse "Gateway integration not available"
// @Router /api/v1/payment/vnpay/create [post]
func (h *HTTPHandler) CreatePayment(c *gin.Context) {
	caller, _ := identity.FromContext(c.Request.Context())

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	if err := h.useCase.CreatePayment(c.Request.Context(), application.CreatePaymentInput{
		UserID:  caller.ID,
		OrderID: req.OrderID,
	}); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusOK)
}
