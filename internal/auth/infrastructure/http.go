package infrastructure

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bookstore/internal/auth/application"
	"bookstore/internal/auth/domain"
	"bookstore/pkg/errors"
	"bookstore/pkg/identity"
	"bookstore/pkg/middleware"
)

// HTTPHandler handles HTTP requests for auth
type HTTPHandler struct {
	useCase *application.AuthUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.AuthUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the auth routes
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", middleware.RequireUser(), h.Logout)
		auth.GET("/me", middleware.RequireUser(), h.Me)
	}
}

// UserResponse is the response body for user operations
type UserResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// RegisterRequest is the request body for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register creates an account
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration request"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse "Validation error"
// @Failure 409 {object} errors.ErrorResponse "Email already registered"
// @Router /api/v1/auth/register [post]
func (h *HTTPHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	user, err := h.useCase.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data":     toUserResponse(user),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// LoginRequest is the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login opens a session
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{} "Token and user"
// @Failure 401 {object} errors.ErrorResponse "Invalid credentials"
// @Router /api/v1/auth/login [post]
func (h *HTTPHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	output, err := h.useCase.Login(c.Request.Context(), application.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    output.Token,
		"user":     toUserResponse(output.User),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}

// Logout invalidates the current session
// @Summary Log out
// @Tags auth
// @Security ApiKeyAuth
// @Success 204 "Logged out"
// @Router /api/v1/auth/logout [post]
func (h *HTTPHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.useCase.Logout(c.Request.Context(), token); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me returns the authenticated user
// @Summary Get the current user
// @Tags auth
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse "Unauthenticated"
// @Router /api/v1/auth/me [get]
func (h *HTTPHandler) Me(c *gin.Context) {
	caller, _ := identity.FromContext(c.Request.Context())

	user, err := h.useCase.GetUser(c.Request.Context(), caller.ID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":     toUserResponse(user),
		"trace_id": c.GetString(middleware.TraceIDKey),
	})
}
