package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Message is the body of every plain status or error response
type Message struct {
	Msg string `json:"msg"`
}

// OK sends a 200 response with the given body
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Success sends a 200 message response
func Success(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Message{Msg: message})
}

// Created sends a 201 message response
func Created(c *gin.Context, message string) {
	c.JSON(http.StatusCreated, Message{Msg: message})
}

// Error sends a message response with the given status
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Message{Msg: message})
}

// BadRequest sends a 400 error response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error response
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 error response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// InternalError sends a 500 error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// AbortWithError sends a message response and stops the handler chain
func AbortWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Message{Msg: message})
}
