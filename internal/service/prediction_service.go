package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/predictor"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrNoSymptoms       = errors.New("no symptoms recorded")
	ErrPredictionFailed = errors.New("error in prediction")
)

// Predictor turns a symptom payload into a result
type Predictor interface {
	Predict(ctx context.Context, input json.RawMessage) (string, error)
}

// PredictionService runs predictions against the latest symptoms of a user
type PredictionService struct {
	userRepo       *repository.UserRepository
	symptomRepo    *repository.SymptomRepository
	predictionRepo *repository.PredictionRepository
	predictor      Predictor
	publisher      PredictionPublisher
	logger         *zap.Logger
	now            Clock
}

// NewPredictionService creates a new PredictionService
func NewPredictionService(
	userRepo *repository.UserRepository,
	symptomRepo *repository.SymptomRepository,
	predictionRepo *repository.PredictionRepository,
	predictor Predictor,
	publisher PredictionPublisher,
	logger *zap.Logger,
	now Clock,
) *PredictionService {
	return &PredictionService{
		userRepo:       userRepo,
		symptomRepo:    symptomRepo,
		predictionRepo: predictionRepo,
		predictor:      predictor,
		publisher:      publisher,
		logger:         logger,
		now:            now,
	}
}

// Predict sends the user's latest symptoms to the predictor and stores the result
func (s *PredictionService) Predict(ctx context.Context, userID uint) (*models.Prediction, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	symptom, err := s.symptomRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSymptomNotFound) {
			return nil, ErrNoSymptoms
		}
		return nil, err
	}

	result, err := s.predictor.Predict(ctx, json.RawMessage(symptom.Symptoms))
	if err != nil {
		fields := []zap.Field{zap.Uint("user_id", userID), zap.Error(err)}
		var statusErr *predictor.StatusError
		if errors.As(err, &statusErr) {
			fields = append(fields, zap.Int("status", statusErr.StatusCode), zap.String("body", statusErr.Body))
		}
		s.logger.Error("prediction request failed", fields...)
		return nil, fmt.Errorf("%w: %w", ErrPredictionFailed, err)
	}

	prediction := &models.Prediction{
		UserID:   userID,
		Datetime: s.now().UTC(),
		Result:   result,
	}
	if err := s.predictionRepo.Create(ctx, prediction); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(ctx, prediction); err != nil {
		s.logger.Warn("failed to publish prediction",
			zap.Uint("user_id", userID),
			zap.Uint("prediction_id", prediction.ID),
			zap.Error(err),
		)
	}

	return prediction, nil
}

// Latest returns the newest prediction of a user
func (s *PredictionService) Latest(ctx context.Context, userID uint) (*models.Prediction, error) {
	return s.predictionRepo.GetLatestByUserID(ctx, userID)
}

// All returns every prediction of a user in insertion order
func (s *PredictionService) All(ctx context.Context, userID uint) ([]models.Prediction, error) {
	return s.predictionRepo.GetByUserID(ctx, userID)
}
