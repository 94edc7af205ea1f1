package services

import (
	"context"
	"sync"

	"github.com/akumar-dev/tweetpulse-be/internal/config"
	"github.com/akumar-dev/tweetpulse-be/internal/models"
	"github.com/akumar-dev/tweetpulse-be/internal/upstream"
)

// BatchItem is one tweet's outcome in a batch analysis. Error is set only
// under the partial-failure policy.
type BatchItem struct {
	Text      string `json:"text"`
	Sentiment string `json:"sentiment,omitempty"`
	CreatedAt string `json:"created_at"`
	Error     string `json:"error,omitempty"`
}

// AnalysisServiceProvider defines the interface for the analysis proxy.
type AnalysisServiceProvider interface {
	AnalyzeTweet(ctx context.Context, tweet string) (*upstream.AnalysisResult, error)
	FetchTweetsByUser(ctx context.Context, username string, count int, dr *upstream.DateRange) (*upstream.TweetsResult, error)
	FetchTweetsByHashtag(ctx context.Context, hashtag string, count int, dr *upstream.DateRange) (*upstream.TweetsResult, error)
	AnalyzeUserTweets(ctx context.Context, username string, count int) (*upstream.AnalyzedTweetsResult, error)
	AnalyzeBatch(ctx context.Context, tweets []models.Tweet) ([]BatchItem, error)
}

// AnalysisService forwards analysis and fetch requests to the upstream
// service. It holds no state and caches nothing.
type AnalysisService struct {
	client *upstream.Client
	policy config.BatchPolicy
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(client *upstream.Client, policy config.BatchPolicy) *AnalysisService {
	return &AnalysisService{client: client, policy: policy}
}

// AnalyzeTweet classifies a single tweet upstream.
func (s *AnalysisService) AnalyzeTweet(ctx context.Context, tweet string) (*upstream.AnalysisResult, error) {
	return s.client.Analyze(ctx, tweet)
}

// FetchTweetsByUser fetches recent tweets for a username.
func (s *AnalysisService) FetchTweetsByUser(ctx context.Context, username string, count int, dr *upstream.DateRange) (*upstream.TweetsResult, error) {
	return s.client.TweetsByUser(ctx, username, count, dr)
}

// FetchTweetsByHashtag fetches recent tweets for a hashtag.
func (s *AnalysisService) FetchTweetsByHashtag(ctx context.Context, hashtag string, count int, dr *upstream.DateRange) (*upstream.TweetsResult, error) {
	return s.client.TweetsByHashtag(ctx, hashtag, count, dr)
}

// AnalyzeUserTweets fetches and labels a user's tweets in one upstream call.
func (s *AnalysisService) AnalyzeUserTweets(ctx context.Context, username string, count int) (*upstream.AnalyzedTweetsResult, error) {
	return s.client.AnalyzeUserTweets(ctx, username, count)
}

// AnalyzeBatch classifies each tweet concurrently, one upstream call per
// tweet, and collects all results in input order. Under the abort policy
// the first failure fails the whole batch; under the partial policy
// failures are reported per item and the rest of the results survive.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, tweets []models.Tweet) ([]BatchItem, error) {
	items := make([]BatchItem, len(tweets))
	errs := make([]error, len(tweets))

	var wg sync.WaitGroup
	for i, tweet := range tweets {
		wg.Add(1)
		go func(i int, tweet models.Tweet) {
			defer wg.Done()
			items[i] = BatchItem{Text: tweet.Text, CreatedAt: tweet.CreatedAt}
			result, err := s.client.Analyze(ctx, tweet.Text)
			if err != nil {
				errs[i] = err
				items[i].Error = err.Error()
				return
			}
			items[i].Sentiment = result.Sentiment
		}(i, tweet)
	}
	wg.Wait()

	if s.policy == config.BatchPolicyAbort {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}
	return items, nil
}
