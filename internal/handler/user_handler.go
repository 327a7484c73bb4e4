package handler

import (
	"errors"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/middleware"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/repository"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/service"
	"github.com/AS-AI-CS/EndpointerSubmission/pkg/response"
	"github.com/gin-gonic/gin"
)

// UserHandler handles requests on the authenticated user's account
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// UpdateTokensRequest represents the token balance update request
type UpdateTokensRequest struct {
	Tokens *int `json:"tokens"`
}

// UpdateTokens overwrites the token balance
// PUT /protected/utokens
func (h *UserHandler) UpdateTokens(c *gin.Context) {
	var req UpdateTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Tokens == nil {
		response.BadRequest(c, "Missing tokens")
		return
	}

	if err := h.userService.UpdateTokens(c.Request.Context(), middleware.GetUserID(c), *req.Tokens); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		internalError(c, err)
		return
	}

	response.Success(c, "Tokens updated successfully")
}

// Delete removes the user and their associated data
// DELETE /user/delete
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), middleware.GetUserID(c)); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			response.NotFound(c, "User not found")
			return
		}
		internalError(c, err)
		return
	}

	response.Success(c, "User and associated data deleted successfully")
}

// GetBasic returns the public view of the user
// GET /protected/user/get/data/basic
func (h *UserHandler) GetBasic(c *gin.Context) {
	response.OK(c, middleware.GetUser(c).Basic())
}

// RegisterRoutes registers routes on a group that already authenticates the user
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.DELETE("/user/delete", h.Delete)

	protected := rg.Group("/protected")
	{
		protected.PUT("/utokens", h.UpdateTokens)
		protected.GET("/user/get/data/basic", h.GetBasic)
	}
}
