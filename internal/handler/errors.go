package handler

import (
	"github.com/AS-AI-CS/EndpointerSubmission/pkg/response"
	"github.com/gin-gonic/gin"
)

// internalError records err for the request logger and sends a generic 500
func internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	response.InternalError(c, "Internal server error")
}
