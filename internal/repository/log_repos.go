package repository

import (
	"context"
	"errors"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"gorm.io/gorm"
)

var (
	ErrSymptomNotFound    = errors.New("no symptoms found for this user")
	ErrPredictionNotFound = errors.New("no predictions found for this user")
	ErrNoteNotFound       = errors.New("no mental health notes found for this user")
)

// Newest first; records sharing a timestamp fall back to insertion order.
const latestOrder = "datetime DESC, id DESC"

// SymptomRepository handles symptom data access
type SymptomRepository struct {
	db *gorm.DB
}

// NewSymptomRepository creates a new SymptomRepository
func NewSymptomRepository(db *gorm.DB) *SymptomRepository {
	return &SymptomRepository{db: db}
}

// Create appends a symptom record
func (r *SymptomRepository) Create(ctx context.Context, symptom *models.Symptom) error {
	return r.db.WithContext(ctx).Create(symptom).Error
}

// GetLatestByUserID retrieves the newest symptom record of a user
func (r *SymptomRepository) GetLatestByUserID(ctx context.Context, userID uint) (*models.Symptom, error) {
	var symptom models.Symptom
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order(latestOrder).First(&symptom)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSymptomNotFound
		}
		return nil, result.Error
	}
	return &symptom, nil
}

// GetByUserID retrieves all symptom records of a user in insertion order
func (r *SymptomRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Symptom, error) {
	symptoms := []models.Symptom{}
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&symptoms)
	return symptoms, result.Error
}

// PredictionRepository handles prediction result data access
type PredictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository creates a new PredictionRepository
func NewPredictionRepository(db *gorm.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Create appends a prediction record
func (r *PredictionRepository) Create(ctx context.Context, prediction *models.Prediction) error {
	return r.db.WithContext(ctx).Create(prediction).Error
}

// GetLatestByUserID retrieves the newest prediction of a user
func (r *PredictionRepository) GetLatestByUserID(ctx context.Context, userID uint) (*models.Prediction, error) {
	var prediction models.Prediction
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order(latestOrder).First(&prediction)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPredictionNotFound
		}
		return nil, result.Error
	}
	return &prediction, nil
}

// GetByUserID retrieves all predictions of a user in insertion order
func (r *PredictionRepository) GetByUserID(ctx context.Context, userID uint) ([]models.Prediction, error) {
	predictions := []models.Prediction{}
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&predictions)
	return predictions, result.Error
}

// MentalHealthNoteRepository handles mental health note data access
type MentalHealthNoteRepository struct {
	db *gorm.DB
}

// NewMentalHealthNoteRepository creates a new MentalHealthNoteRepository
func NewMentalHealthNoteRepository(db *gorm.DB) *MentalHealthNoteRepository {
	return &MentalHealthNoteRepository{db: db}
}

// Create appends a note
func (r *MentalHealthNoteRepository) Create(ctx context.Context, note *models.MentalHealthNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

// GetLatestByUserID retrieves the newest note of a user
func (r *MentalHealthNoteRepository) GetLatestByUserID(ctx context.Context, userID uint) (*models.MentalHealthNote, error) {
	var note models.MentalHealthNote
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order(latestOrder).First(&note)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, result.Error
	}
	return &note, nil
}

// GetByUserID retrieves all notes of a user in insertion order
func (r *MentalHealthNoteRepository) GetByUserID(ctx context.Context, userID uint) ([]models.MentalHealthNote, error) {
	notes := []models.MentalHealthNote{}
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&notes)
	return notes, result.Error
}
