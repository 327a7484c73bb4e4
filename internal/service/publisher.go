package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/AS-AI-CS/EndpointerSubmission/internal/models"
	"github.com/redis/go-redis/v9"
)

// PredictionPublisher announces newly stored predictions
type PredictionPublisher interface {
	Publish(ctx context.Context, prediction *models.Prediction) error
}

// PredictionChannel returns the pub/sub channel carrying a user's predictions
func PredictionChannel(userID uint) string {
	return fmt.Sprintf("predictions:%d", userID)
}

// RedisPredictionPublisher publishes prediction records over redis pub/sub
type RedisPredictionPublisher struct {
	rdb *redis.Client
}

// NewRedisPredictionPublisher creates a new RedisPredictionPublisher
func NewRedisPredictionPublisher(rdb *redis.Client) *RedisPredictionPublisher {
	return &RedisPredictionPublisher{rdb: rdb}
}

// Publish sends the record as JSON on the owner's channel
func (p *RedisPredictionPublisher) Publish(ctx context.Context, prediction *models.Prediction) error {
	data, err := json.Marshal(prediction.ToResponse())
	if err != nil {
		return err
	}
	return p.rdb.Publish(ctx, PredictionChannel(prediction.UserID), data).Err()
}

// NopPredictionPublisher discards every prediction
type NopPredictionPublisher struct{}

// Publish does nothing
func (NopPredictionPublisher) Publish(context.Context, *models.Prediction) error {
	return nil
}
