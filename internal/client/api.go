package client

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/akumar-dev/tweetpulse-be/internal/models"
	"github.com/akumar-dev/tweetpulse-be/internal/services"
	"github.com/akumar-dev/tweetpulse-be/internal/upstream"
)

// AnalyzeTweet classifies a single tweet.
func (s *Session) AnalyzeTweet(tweet string) (*upstream.AnalysisResult, error) {
	var result upstream.AnalysisResult
	err := s.do(http.MethodPost, "/api/sentiment/analyze", map[string]string{"tweet": tweet}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeBatch classifies a sequence of tweets server-side.
func (s *Session) AnalyzeBatch(tweets []models.Tweet) ([]services.BatchItem, error) {
	var result struct {
		Tweets []services.BatchItem `json:"tweets"`
	}
	err := s.do(http.MethodPost, "/api/sentiment/analyze-batch", map[string]interface{}{"tweets": tweets}, &result)
	if err != nil {
		return nil, err
	}
	return result.Tweets, nil
}

// FetchTweetsByUser fetches recent tweets for a Twitter username.
func (s *Session) FetchTweetsByUser(username string, count int) (*upstream.TweetsResult, error) {
	var result upstream.TweetsResult
	path := "/api/sentiment/tweets/" + url.PathEscape(username) + countQuery(count)
	if err := s.do(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FetchTweetsByHashtag fetches recent tweets for a hashtag (without the #).
func (s *Session) FetchTweetsByHashtag(hashtag string, count int) (*upstream.TweetsResult, error) {
	var result upstream.TweetsResult
	path := "/api/sentiment/hashtag/" + url.PathEscape(hashtag) + countQuery(count)
	if err := s.do(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeUserTweets fetches and labels a user's tweets in one call.
func (s *Session) AnalyzeUserTweets(username string, count int) (*upstream.AnalyzedTweetsResult, error) {
	var result upstream.AnalyzedTweetsResult
	path := "/api/sentiment/tweetanalysis/" + url.PathEscape(username) + countQuery(count)
	if err := s.do(http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SaveUserBatch persists an analyzed batch for a Twitter account.
func (s *Session) SaveUserBatch(username, name string, tweets []models.AnalyzedTweet) error {
	body := map[string]interface{}{"username": username, "name": name, "tweets": tweets}
	return s.do(http.MethodPost, "/api/sentiment/save-analyzed-tweets", body, nil)
}

// SaveHashtagBatch persists an analyzed batch for a hashtag.
func (s *Session) SaveHashtagBatch(hashtag string, tweets []models.AnalyzedTweet) error {
	body := map[string]interface{}{"hashtag": hashtag, "tweets": tweets}
	return s.do(http.MethodPost, "/api/sentiment/save-analyzed-hashtag-tweets", body, nil)
}

// SavedUserBatches lists the caller's saved batches, newest first.
func (s *Session) SavedUserBatches() ([]models.UserBatch, error) {
	var batches []models.UserBatch
	if err := s.do(http.MethodGet, "/api/sentiment/saved-tweets", nil, &batches); err != nil {
		return nil, err
	}
	return batches, nil
}

// SavedHashtagBatches lists the caller's saved hashtag batches.
func (s *Session) SavedHashtagBatches() ([]models.HashtagBatch, error) {
	var batches []models.HashtagBatch
	if err := s.do(http.MethodGet, "/api/sentiment/saved-hashtag-tweets", nil, &batches); err != nil {
		return nil, err
	}
	return batches, nil
}

func countQuery(count int) string {
	if count <= 0 {
		return ""
	}
	return "?count=" + strconv.Itoa(count)
}
