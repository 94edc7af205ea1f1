package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akumar-dev/tweetpulse-be/internal/models"
)

func TestAnalyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "lovely weather", body["tweet"])

		json.NewEncoder(w).Encode(AnalysisResult{
			OriginalTweet: "lovely weather",
			CleanedTweet:  "lovely weather",
			Sentiment:     "Positive",
		})
	}))
	defer srv.Close()

	client := New(srv.URL, 2*time.Second)
	result, err := client.Analyze(context.Background(), "lovely weather")
	require.NoError(t, err)
	assert.Equal(t, "Positive", result.Sentiment)
}

func TestTweetsByUserForwardsQueryParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tweets/jane", r.URL.Path)
		assert.Equal(t, "30", r.URL.Query().Get("count"))
		assert.Equal(t, "2024-01-01", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2024-01-31", r.URL.Query().Get("end_date"))

		json.NewEncoder(w).Encode(TweetsResult{
			Username: "jane",
			Name:     "Jane Doe",
			Tweets:   []models.Tweet{{Text: "hi", CreatedAt: "2024-01-15"}},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, 2*time.Second)
	result, err := client.TweetsByUser(context.Background(), "jane", 30,
		&DateRange{Start: "2024-01-01", End: "2024-01-31"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", result.Name)
	require.Len(t, result.Tweets, 1)
	assert.Equal(t, "hi", result.Tweets[0].Text)
}

func TestTweetsByUserOmitsEmptyParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		json.NewEncoder(w).Encode(TweetsResult{Username: "jane"})
	}))
	defer srv.Close()

	client := New(srv.URL, 2*time.Second)
	_, err := client.TweetsByUser(context.Background(), "jane", 0, nil)
	require.NoError(t, err)
}

func TestTweetsByHashtagFillsHashtag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hashtag/golang", r.URL.Path)
		json.NewEncoder(w).Encode(TweetsResult{Tweets: []models.Tweet{}})
	}))
	defer srv.Close()

	client := New(srv.URL, 2*time.Second)
	result, err := client.TweetsByHashtag(context.Background(), "golang", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "golang", result.Hashtag)
}

func TestDoRelaysRateLimitError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"Rate limited. Try again later.","wait_time":42}`))
	}))
	defer srv.Close()

	client := New(srv.URL, 2*time.Second)
	_, err := client.Analyze(context.Background(), "anything")

	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusTooManyRequests, upErr.StatusCode)
	assert.Equal(t, "Rate limited. Try again later.", upErr.Message)
	require.NotNil(t, upErr.WaitTime)
	assert.Equal(t, 42, *upErr.WaitTime)
	assert.False(t, upErr.Unreachable)
}

func TestDoFallsBackToStatusOnBadErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>gateway error</html>"))
	}))
	defer srv.Close()

	client := New(srv.URL, 2*time.Second)
	_, err := client.Analyze(context.Background(), "anything")

	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusBadGateway, upErr.StatusCode)
	assert.NotEmpty(t, upErr.Message)
	assert.Nil(t, upErr.WaitTime)
}

func TestUnreachableUpstream(t *testing.T) {
	// Grab a port that nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(srv.URL, 500*time.Millisecond)
	_, err := client.Analyze(context.Background(), "anything")

	var upErr *Error
	require.ErrorAs(t, err, &upErr)
	assert.True(t, upErr.Unreachable)

	err = client.Ping(context.Background())
	require.ErrorAs(t, err, &upErr)
	assert.True(t, upErr.Unreachable)
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := New(srv.URL, 2*time.Second)
	assert.NoError(t, client.Ping(context.Background()))
}
