package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/akumar-dev/tweetpulse-be/internal/apierror"
	"github.com/akumar-dev/tweetpulse-be/internal/models"
	"github.com/akumar-dev/tweetpulse-be/internal/services"
	"github.com/akumar-dev/tweetpulse-be/internal/upstream"
)

// SentimentHandler proxies analysis and tweet-fetch requests.
type SentimentHandler struct {
	service services.AnalysisServiceProvider
}

// NewSentimentHandler creates a new SentimentHandler.
func NewSentimentHandler(service services.AnalysisServiceProvider) *SentimentHandler {
	return &SentimentHandler{service: service}
}

// Analyze classifies a single tweet.
func (h *SentimentHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Tweet string `json:"tweet"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Tweet == "" {
		writeError(w, apierror.Validation("No tweet provided"))
		return
	}

	result, err := h.service.AnalyzeTweet(r.Context(), payload.Tweet)
	if err != nil {
		h.writeAnalyzeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// AnalyzeBatch classifies a sequence of tweets with one upstream call per
// tweet.
func (h *SentimentHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Tweets []models.Tweet `json:"tweets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Tweets == nil {
		writeError(w, apierror.Validation("Invalid data provided"))
		return
	}

	items, err := h.service.AnalyzeBatch(r.Context(), payload.Tweets)
	if err != nil {
		h.writeAnalyzeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"tweets": items})
}

// TweetsByUser fetches recent tweets for a Twitter username.
func (h *SentimentHandler) TweetsByUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	result, err := h.service.FetchTweetsByUser(r.Context(), username, queryCount(r), queryDateRange(r))
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Tweet fetch failed")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// TweetsByHashtag fetches recent tweets for a hashtag.
func (h *SentimentHandler) TweetsByHashtag(w http.ResponseWriter, r *http.Request) {
	hashtag := chi.URLParam(r, "hashtag")
	result, err := h.service.FetchTweetsByHashtag(r.Context(), hashtag, queryCount(r), queryDateRange(r))
	if err != nil {
		log.Warn().Err(err).Str("hashtag", hashtag).Msg("Hashtag fetch failed")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// TweetAnalysis fetches and labels a user's tweets in one upstream call.
func (h *SentimentHandler) TweetAnalysis(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	result, err := h.service.AnalyzeUserTweets(r.Context(), username, queryCount(r))
	if err != nil {
		log.Warn().Err(err).Str("username", username).Msg("Tweet analysis failed")
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeAnalyzeError hides transport details when the analysis service is
// down; reachable upstream failures are relayed as-is.
func (h *SentimentHandler) writeAnalyzeError(w http.ResponseWriter, err error) {
	if upErr, ok := err.(*upstream.Error); ok && upErr.Unreachable {
		log.Error().Err(err).Msg("Analysis service unreachable")
		writeError(w, apierror.Internal("Sentiment Analysis Failed. Ensure the analysis service is running."))
		return
	}
	writeError(w, err)
}

func queryCount(r *http.Request) int {
	count, err := strconv.Atoi(r.URL.Query().Get("count"))
	if err != nil {
		return 0
	}
	return count
}

func queryDateRange(r *http.Request) *upstream.DateRange {
	start := r.URL.Query().Get("start_date")
	end := r.URL.Query().Get("end_date")
	if start == "" && end == "" {
		return nil
	}
	return &upstream.DateRange{Start: start, End: end}
}
