package service

import (
	"context"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/config"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"github.com/AS-AI-CS/EndpointerSubmission/internal/repository"
	"go.uber.org/zap"
)

// UserService handles account level operations for an authenticated user
type UserService struct {
	userRepo  *repository.UserRepository
	retention config.RetentionConfig
	logger    *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repository.UserRepository, retention config.RetentionConfig, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		retention: retention,
		logger:    logger,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateTokens overwrites the token balance of a user
func (s *UserService) UpdateTokens(ctx context.Context, id uint, tokens int) error {
	return s.userRepo.UpdateTokens(ctx, id, tokens)
}

// Delete removes a user with their symptoms and predictions.
// Mental health notes follow the retention setting.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	res, err := s.userRepo.DeleteCascade(ctx, id, s.retention.DeleteMentalHealthNotes)
	if err != nil {
		return err
	}

	s.logger.Info("user deleted",
		zap.Uint("user_id", id),
		zap.Int64("symptoms", res.Symptoms),
		zap.Int64("predictions", res.Predictions),
		zap.Int64("mental_health_notes", res.NotesDeleted),
	)
	if res.NotesRetained > 0 {
		s.logger.Warn("mental health notes retained after user deletion",
			zap.Uint("user_id", id),
			zap.Int64("count", res.NotesRetained),
		)
	}

	return nil
}
