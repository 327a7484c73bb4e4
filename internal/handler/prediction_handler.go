package handler

import (
	"errors"
	"net/http"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/middleware"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/repository"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/service"
	"github.com/AS-AI-CS/EndpointerSubmission/pkg/response"
	"github.com/gin-gonic/gin"
)

// PredictionHandler handles prediction requests
type PredictionHandler struct {
	predictionService *service.PredictionService
}

// NewPredictionHandler creates a new PredictionHandler
func NewPredictionHandler(predictionService *service.PredictionService) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
	}
}

// PredictResponse is returned after a successful prediction
type PredictResponse struct {
	Msg    string `json:"msg"`
	Result string `json:"result"`
}

// Predict runs a prediction on the latest symptoms
// POST /protected/predict1
func (h *PredictionHandler) Predict(c *gin.Context) {
	prediction, err := h.predictionService.Predict(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			response.NotFound(c, "User not found")
		case errors.Is(err, service.ErrNoSymptoms):
			response.NotFound(c, "No symptoms found for this user")
		case errors.Is(err, service.ErrPredictionFailed):
			_ = c.Error(err)
			response.BadRequest(c, "Error in prediction")
		default:
			internalError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, PredictResponse{
		Msg:    "Prediction made successfully",
		Result: prediction.Result,
	})
}

// GetLatest returns the newest prediction
// GET /protected/predict1/get/latest
func (h *PredictionHandler) GetLatest(c *gin.Context) {
	prediction, err := h.predictionService.Latest(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrPredictionNotFound) {
			response.NotFound(c, "No predictions found for this user")
			return
		}
		internalError(c, err)
		return
	}

	response.OK(c, prediction.ToResponse())
}

// GetAll returns every prediction
// GET /protected/predict1/get/all
func (h *PredictionHandler) GetAll(c *gin.Context) {
	predictions, err := h.predictionService.All(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		internalError(c, err)
		return
	}

	response.OK(c, models.PredictionResponses(predictions))
}

// RegisterRoutes registers routes on a group that already authenticates the user
func (h *PredictionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	predict := rg.Group("/protected/predict1")
	{
		predict.POST("", h.Predict)
		predict.GET("/get/latest", h.GetLatest)
		predict.GET("/get/all", h.GetAll)
	}
}
