package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/repository"
	"gorm.io/datatypes"
)

var ErrNoSymptomsProvided = errors.New("no symptoms provided")

// SymptomService records and reads symptom reports
type SymptomService struct {
	symptomRepo *repository.SymptomRepository
	now         Clock
}

// NewSymptomService creates a new SymptomService
func NewSymptomService(symptomRepo *repository.SymptomRepository, now Clock) *SymptomService {
	return &SymptomService{
		symptomRepo: symptomRepo,
		now:         now,
	}
}

// IsEmptyPayload reports whether a JSON value carries no symptoms:
// absent, null, an empty array or object, an empty string, zero or false.
func IsEmptyPayload(payload json.RawMessage) bool {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return true
	}

	var v interface{}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return true
	}

	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case float64:
		return val == 0
	case string:
		return val == ""
	case []interface{}:
		return len(val) == 0
	case map[string]interface{}:
		return len(val) == 0
	}
	return false
}

// Add appends a symptom report stamped with the current UTC time
func (s *SymptomService) Add(ctx context.Context, userID uint, payload json.RawMessage) (*models.Symptom, error) {
	if IsEmptyPayload(payload) {
		return nil, ErrNoSymptomsProvided
	}

	symptom := &models.Symptom{
		UserID:   userID,
		Datetime: s.now().UTC(),
		Symptoms: datatypes.JSON(bytes.TrimSpace(payload)),
	}
	if err := s.symptomRepo.Create(ctx, symptom); err != nil {
		return nil, err
	}

	return symptom, nil
}

// Latest returns the newest symptom report of a user
func (s *SymptomService) Latest(ctx context.Context, userID uint) (*models.Symptom, error) {
	return s.symptomRepo.GetLatestByUserID(ctx, userID)
}

// All returns every symptom report of a user in insertion order
func (s *SymptomService) All(ctx context.Context, userID uint) ([]models.Symptom, error) {
	return s.symptomRepo.GetByUserID(ctx, userID)
}
