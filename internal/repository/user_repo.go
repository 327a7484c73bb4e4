package repository

import (
	"context"
	"errors"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
)

// UserRepository handles user data access
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateUser
	}
	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}

// ExistsByUsername checks if a username is already registered
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if a normalized email is already registered
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// UpdateTokens overwrites the token balance
func (r *UserRepository) UpdateTokens(ctx context.Context, id uint, tokens int) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("tokens", tokens)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteResult reports what a cascading delete removed or kept
type DeleteResult struct {
	Symptoms      int64
	Predictions   int64
	NotesDeleted  int64
	NotesRetained int64
}

// DeleteCascade removes a user together with their symptoms and predictions in one transaction.
// Mental health notes are removed only when deleteNotes is set; otherwise they are counted and kept.
func (r *UserRepository) DeleteCascade(ctx context.Context, id uint, deleteNotes bool) (*DeleteResult, error) {
	res := &DeleteResult{}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		symptoms := tx.Where("user_id = ?", id).Delete(&models.Symptom{})
		if symptoms.Error != nil {
			return symptoms.Error
		}
		res.Symptoms = symptoms.RowsAffected

		predictions := tx.Where("user_id = ?", id).Delete(&models.Prediction{})
		if predictions.Error != nil {
			return predictions.Error
		}
		res.Predictions = predictions.RowsAffected

		if deleteNotes {
			notes := tx.Where("user_id = ?", id).Delete(&models.MentalHealthNote{})
			if notes.Error != nil {
				return notes.Error
			}
			res.NotesDeleted = notes.RowsAffected
		} else {
			if err := tx.Model(&models.MentalHealthNote{}).Where("user_id = ?", id).Count(&res.NotesRetained).Error; err != nil {
				return err
			}
		}

		user := tx.Delete(&models.User{}, id)
		if user.Error != nil {
			return user.Error
		}
		if user.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}
