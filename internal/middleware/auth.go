package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/repository"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/service"
	"github.com/AS-AI-CS/EndpointerSubmission/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	// ContextKeyUserID is the key for user ID in gin context
	ContextKeyUserID = "user_id"
	// ContextKeyUser is the key for the resolved user in gin context
	ContextKeyUser = "user"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AbortWithError(c, http.StatusUnauthorized, "Missing Authorization Header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.AbortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		userID, err := authService.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.AbortWithError(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		c.Set(ContextKeyUserID, userID)

		c.Next()
	}
}

// RequireUser loads the token's user from the store on every request.
// A valid token whose user no longer exists gets a 404.
func RequireUser(userService *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := userService.GetByID(c.Request.Context(), GetUserID(c))
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				response.AbortWithError(c, http.StatusNotFound, "User not found")
				return
			}
			response.AbortWithError(c, http.StatusInternalServerError, "Internal server error")
			return
		}

		c.Set(ContextKeyUser, user)

		c.Next()
	}
}

// GetUserID gets the user ID from the gin context
func GetUserID(c *gin.Context) uint {
	userID, exists := c.Get(ContextKeyUserID)
	if !exists {
		return 0
	}
	return userID.(uint)
}

// GetUser gets the resolved user from the gin context
func GetUser(c *gin.Context) *models.User {
	user, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	return user.(*models.User)
}
