package handler

import (
	"errors"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/service"
	"github.com/AS-AI-CS/EndpointerSubmission/pkg/response"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
// POST /user/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing username, password or email")
		return
	}

	_, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingRegistration):
			response.BadRequest(c, "Missing username, password or email")
		case errors.Is(err, service.ErrUsernameTaken):
			response.BadRequest(c, "User already exists")
		case errors.Is(err, service.ErrEmailTaken):
			response.BadRequest(c, "Email already registered")
		case errors.Is(err, service.ErrInvalidEmail):
			response.BadRequest(c, "Invalid email address")
		default:
			internalError(c, err)
		}
		return
	}

	response.Created(c, "User registered successfully")
}

// Login handles user login and returns the token as a bare JSON string
// POST /user/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing username or password")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			response.BadRequest(c, "Missing username or password")
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, "Invalid username or password")
		default:
			internalError(c, err)
		}
		return
	}

	response.OK(c, token)
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	{
		user.POST("/register", h.Register)
		user.POST("/login", h.Login)
	}
}
