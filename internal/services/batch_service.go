package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/akumar-dev/tweetpulse-be/internal/apierror"
	"github.com/akumar-dev/tweetpulse-be/internal/docstore"
	"github.com/akumar-dev/tweetpulse-be/internal/models"
)

// BatchServiceProvider defines the interface for batch persistence.
type BatchServiceProvider interface {
	SaveUserBatch(ctx context.Context, owner, username, name string, tweets []models.AnalyzedTweet) (*models.UserBatch, error)
	SaveHashtagBatch(ctx context.Context, owner, hashtag string, tweets []models.AnalyzedTweet) (*models.HashtagBatch, error)
	ListUserBatches(ctx context.Context, owner string) ([]models.UserBatch, error)
	ListHashtagBatches(ctx context.Context, owner string) ([]models.HashtagBatch, error)
}

// BatchService validates and persists analyzed-tweet batches. Each save is
// a fresh document; saving the same input twice yields two documents.
type BatchService struct {
	store *docstore.Store
}

// NewBatchService creates a new BatchService.
func NewBatchService(store *docstore.Store) *BatchService {
	return &BatchService{store: store}
}

// SaveUserBatch stores one analyzed-tweet batch for a Twitter account.
func (s *BatchService) SaveUserBatch(ctx context.Context, owner, username, name string, tweets []models.AnalyzedTweet) (*models.UserBatch, error) {
	if username == "" || name == "" || tweets == nil {
		return nil, apierror.Validation("Invalid data provided")
	}

	batch := &models.UserBatch{
		ID:       uuid.New().String(),
		Username: username,
		Name:     name,
		Owner:    owner,
		Tweets:   tweets,
		SavedAt:  time.Now().UTC(),
	}
	if err := s.store.SaveUserBatch(ctx, batch); err != nil {
		return nil, apierror.Persistence("Failed to save analyzed tweets: " + err.Error())
	}
	return batch, nil
}

// SaveHashtagBatch stores one batch of tweets fetched for a hashtag.
func (s *BatchService) SaveHashtagBatch(ctx context.Context, owner, hashtag string, tweets []models.AnalyzedTweet) (*models.HashtagBatch, error) {
	if hashtag == "" || tweets == nil {
		return nil, apierror.Validation("Invalid data provided")
	}

	batch := &models.HashtagBatch{
		ID:        uuid.New().String(),
		Hashtag:   hashtag,
		Owner:     owner,
		Tweets:    tweets,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveHashtagBatch(ctx, batch); err != nil {
		return nil, apierror.Persistence("Failed to save hashtag tweets: " + err.Error())
	}
	return batch, nil
}

// ListUserBatches returns the caller's saved batches, newest first.
func (s *BatchService) ListUserBatches(ctx context.Context, owner string) ([]models.UserBatch, error) {
	return s.store.ListUserBatches(ctx, owner)
}

// ListHashtagBatches returns the caller's saved hashtag batches, newest
// first.
func (s *BatchService) ListHashtagBatches(ctx context.Context, owner string) ([]models.HashtagBatch, error) {
	return s.store.ListHashtagBatches(ctx, owner)
}
