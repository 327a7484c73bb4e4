package service

import (
	"context"
	"errors"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/repository"
)

var ErrNoNotesProvided = errors.New("no notes provided")

// NoteService records and reads mental health notes
type NoteService struct {
	noteRepo *repository.MentalHealthNoteRepository
	now      Clock
}

// NewNoteService creates a new NoteService
func NewNoteService(noteRepo *repository.MentalHealthNoteRepository, now Clock) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		now:      now,
	}
}

// Add appends a note stamped with the current UTC time
func (s *NoteService) Add(ctx context.Context, userID uint, text string) (*models.MentalHealthNote, error) {
	if text == "" {
		return nil, ErrNoNotesProvided
	}

	note := &models.MentalHealthNote{
		UserID:   userID,
		Datetime: s.now().UTC(),
		Notes:    text,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

// Latest returns the newest note of a user
func (s *NoteService) Latest(ctx context.Context, userID uint) (*models.MentalHealthNote, error) {
	return s.noteRepo.GetLatestByUserID(ctx, userID)
}

// All returns every note of a user in insertion order
func (s *NoteService) All(ctx context.Context, userID uint) ([]models.MentalHealthNote, error) {
	return s.noteRepo.GetByUserID(ctx, userID)
}
