package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/akumar-dev/tweetpulse-be/internal/apierror"
	"github.com/akumar-dev/tweetpulse-be/internal/auth"
	"github.com/akumar-dev/tweetpulse-be/internal/models"
	"github.com/akumar-dev/tweetpulse-be/internal/services"
)

// BatchHandler persists and lists analyzed-tweet batches.
type BatchHandler struct {
	service  services.BatchServiceProvider
	eventSvc services.EventServiceProvider
}

// NewBatchHandler creates a new BatchHandler.
func NewBatchHandler(service services.BatchServiceProvider, eventSvc services.EventServiceProvider) *BatchHandler {
	return &BatchHandler{service: service, eventSvc: eventSvc}
}

// SaveUserBatch stores an analyzed batch for a Twitter account.
func (h *BatchHandler) SaveUserBatch(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("Invalid Token"))
		return
	}

	var payload struct {
		Username string                 `json:"username"`
		Name     string                 `json:"name"`
		Tweets   []models.AnalyzedTweet `json:"tweets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.Validation("Invalid data provided"))
		return
	}

	batch, err := h.service.SaveUserBatch(r.Context(), claims.Username, payload.Username, payload.Name, payload.Tweets)
	if err != nil {
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to save analyzed tweets")
		writeError(w, err)
		return
	}

	if err := h.eventSvc.CreateEvent("batch.saved", "info", "Saved analyzed tweets for @"+batch.Username, &claims.Username); err != nil {
		log.Error().Err(err).Msg("Failed to record batch event")
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Analyzed tweets saved successfully"})
}

// SaveHashtagBatch stores a batch of tweets fetched for a hashtag.
func (h *BatchHandler) SaveHashtagBatch(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("Invalid Token"))
		return
	}

	var payload struct {
		Hashtag string                 `json:"hashtag"`
		Tweets  []models.AnalyzedTweet `json:"tweets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.Validation("Invalid data provided"))
		return
	}

	batch, err := h.service.SaveHashtagBatch(r.Context(), claims.Username, payload.Hashtag, payload.Tweets)
	if err != nil {
		log.Error().Err(err).Str("hashtag", payload.Hashtag).Msg("Failed to save hashtag tweets")
		writeError(w, err)
		return
	}

	if err := h.eventSvc.CreateEvent("batch.saved", "info", "Saved hashtag tweets for #"+batch.Hashtag, &claims.Username); err != nil {
		log.Error().Err(err).Msg("Failed to record batch event")
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Hashtag tweets saved successfully"})
}

// ListUserBatches returns the caller's saved batches.
func (h *BatchHandler) ListUserBatches(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("Invalid Token"))
		return
	}

	batches, err := h.service.ListUserBatches(r.Context(), claims.Username)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list saved batches")
		writeError(w, apierror.Persistence("Failed to retrieve saved tweets"))
		return
	}
	writeJSON(w, http.StatusOK, batches)
}

// ListHashtagBatches returns the caller's saved hashtag batches.
func (h *BatchHandler) ListHashtagBatches(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("Invalid Token"))
		return
	}

	batches, err := h.service.ListHashtagBatches(r.Context(), claims.Username)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list saved hashtag batches")
		writeError(w, apierror.Persistence("Failed to retrieve saved hashtag tweets"))
		return
	}
	writeJSON(w, http.StatusOK, batches)
}
