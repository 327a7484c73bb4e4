package handler

import (
	"errors"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/middleware"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/repository"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/service"
	"github.com/AS-AI-CS/EndpointerSubmission/pkg/response"
	"github.com/gin-gonic/gin"
)

// MentalHealthHandler handles mental health note requests
type MentalHealthHandler struct {
	noteService *service.NoteService
}

// NewMentalHealthHandler creates a new MentalHealthHandler
func NewMentalHealthHandler(noteService *service.NoteService) *MentalHealthHandler {
	return &MentalHealthHandler{
		noteService: noteService,
	}
}

// AddNotesRequest represents the note request
type AddNotesRequest struct {
	Notes string `json:"mental_health_notes"`
}

// Add records a note
// POST /protected/mentalHealth/add
func (h *MentalHealthHandler) Add(c *gin.Context) {
	var req AddNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "No notes provided")
		return
	}

	if _, err := h.noteService.Add(c.Request.Context(), middleware.GetUserID(c), req.Notes); err != nil {
		if errors.Is(err, service.ErrNoNotesProvided) {
			response.BadRequest(c, "No notes provided")
			return
		}
		internalError(c, err)
		return
	}

	response.Created(c, "Mental health notes added successfully")
}

// GetLatest returns the newest note
// GET /protected/mentalHealth/get/latest
func (h *MentalHealthHandler) GetLatest(c *gin.Context) {
	note, err := h.noteService.Latest(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNoteNotFound) {
			response.NotFound(c, "No mental health notes found for this user")
			return
		}
		internalError(c, err)
		return
	}

	response.OK(c, note.ToResponse())
}

// GetAll returns every note
// GET /protected/mentalHealth/get/all
func (h *MentalHealthHandler) GetAll(c *gin.Context) {
	notes, err := h.noteService.All(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		internalError(c, err)
		return
	}

	response.OK(c, models.MentalHealthNoteResponses(notes))
}

// RegisterRoutes registers routes on a group that already authenticates the user
func (h *MentalHealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notes := rg.Group("/protected/mentalHealth")
	{
		notes.POST("/add", h.Add)
		notes.GET("/get/latest", h.GetLatest)
		notes.GET("/get/all", h.GetAll)
	}
}
