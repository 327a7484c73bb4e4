package handler

import (
	"encoding/json"
	"errors"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/middleware"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/repository"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/service"
	"github.com/AS-AI-CS/EndpointerSubmission/pkg/response"
	"github.com/gin-gonic/gin"
)

// SymptomHandler handles symptom log requests
type SymptomHandler struct {
	symptomService *service.SymptomService
}

// NewSymptomHandler creates a new SymptomHandler
func NewSymptomHandler(symptomService *service.SymptomService) *SymptomHandler {
	return &SymptomHandler{
		symptomService: symptomService,
	}
}

// AddSymptomsRequest represents the symptom report request
type AddSymptomsRequest struct {
	Symptoms json.RawMessage `json:"symptoms"`
}

// Add records a symptom report
// POST /protected/symptoms/add
func (h *SymptomHandler) Add(c *gin.Context) {
	var req AddSymptomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "No symptoms provided")
		return
	}

	if _, err := h.symptomService.Add(c.Request.Context(), middleware.GetUserID(c), req.Symptoms); err != nil {
		if errors.Is(err, service.ErrNoSymptomsProvided) {
			response.BadRequest(c, "No symptoms provided")
			return
		}
		internalError(c, err)
		return
	}

	response.Created(c, "Symptoms added successfully")
}

// GetLatest returns the newest symptom report
// GET /protected/symptoms/get/latest
func (h *SymptomHandler) GetLatest(c *gin.Context) {
	symptom, err := h.symptomService.Latest(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrSymptomNotFound) {
			response.NotFound(c, "No symptoms found for this user")
			return
		}
		internalError(c, err)
		return
	}

	response.OK(c, symptom.ToResponse())
}

// GetAll returns every symptom report
// GET /protected/symptoms/get/all
func (h *SymptomHandler) GetAll(c *gin.Context) {
	symptoms, err := h.symptomService.All(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		internalError(c, err)
		return
	}

	response.OK(c, models.SymptomResponses(symptoms))
}

// RegisterRoutes registers routes on a group that already authenticates the user
func (h *SymptomHandler) RegisterRoutes(rg *gin.RouterGroup) {
	symptoms := rg.Group("/protected/symptoms")
	{
		symptoms.POST("/add", h.Add)
		symptoms.GET("/get/latest", h.GetLatest)
		symptoms.GET("/get/all", h.GetAll)
	}
}
