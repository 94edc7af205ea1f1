// Package upstream is the typed client for the external sentiment and
// tweet-fetch service. Failures come back as *upstream.Error carrying the
// upstream's status code, message and optional rate-limit wait hint, so
// callers never inspect raw response bodies.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/akumar-dev/tweetpulse-be/internal/models"
)

// Error is a failure reported by (or while reaching) the upstream service.
type Error struct {
	StatusCode  int
	Message     string
	WaitTime    *int // seconds until retry, present on rate limits
	Unreachable bool // true when no HTTP response was received at all
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream: %d %s", e.StatusCode, e.Message)
}

// AnalysisResult is the upstream's response to a single-tweet analysis.
type AnalysisResult struct {
	OriginalTweet string `json:"original_tweet"`
	CleanedTweet  string `json:"cleaned_tweet"`
	Sentiment     string `json:"sentiment"`
}

// TweetsResult is the upstream's response to a tweet fetch, for a username
// or a hashtag. Name is only set for username lookups.
type TweetsResult struct {
	Username string         `json:"username,omitempty"`
	Hashtag  string         `json:"hashtag,omitempty"`
	Name     string         `json:"name,omitempty"`
	Tweets   []models.Tweet `json:"tweets"`
}

// AnalyzedTweetsResult is a fetch where the upstream also labelled each
// tweet.
type AnalyzedTweetsResult struct {
	Username string                 `json:"username"`
	Name     string                 `json:"name"`
	Tweets   []models.AnalyzedTweet `json:"tweets"`
}

// DateRange optionally narrows a fetch to a posting window.
type DateRange struct {
	Start string // YYYY-MM-DD
	End   string
}

// Client talks to the analysis service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the service at baseURL. The timeout bounds every
// call; the upstream offers no cancellation beyond dropping the connection.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Analyze classifies a single tweet.
func (c *Client) Analyze(ctx context.Context, tweet string) (*AnalysisResult, error) {
	body, err := json.Marshal(map[string]string{"tweet": tweet})
	if err != nil {
		return nil, err
	}

	var result AnalysisResult
	if err := c.do(ctx, http.MethodPost, "/analyze", nil, bytes.NewReader(body), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TweetsByUser fetches recent tweets for a Twitter username.
func (c *Client) TweetsByUser(ctx context.Context, username string, count int, dr *DateRange) (*TweetsResult, error) {
	var result TweetsResult
	path := "/tweets/" + url.PathEscape(username)
	if err := c.do(ctx, http.MethodGet, path, fetchParams(count, dr), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TweetsByHashtag fetches recent tweets for a hashtag (without the #).
func (c *Client) TweetsByHashtag(ctx context.Context, hashtag string, count int, dr *DateRange) (*TweetsResult, error) {
	var result TweetsResult
	path := "/hashtag/" + url.PathEscape(hashtag)
	if err := c.do(ctx, http.MethodGet, path, fetchParams(count, dr), nil, &result); err != nil {
		return nil, err
	}
	if result.Hashtag == "" {
		result.Hashtag = hashtag
	}
	return &result, nil
}

// AnalyzeUserTweets fetches and labels a user's tweets in one upstream
// call.
func (c *Client) AnalyzeUserTweets(ctx context.Context, username string, count int) (*AnalyzedTweetsResult, error) {
	var result AnalyzedTweetsResult
	path := "/tweetanalysis/" + url.PathEscape(username)
	if err := c.do(ctx, http.MethodGet, path, fetchParams(count, nil), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Ping checks the service root. Used by the background monitor.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{StatusCode: http.StatusInternalServerError, Message: err.Error(), Unreachable: true}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 400 {
		return &Error{StatusCode: resp.StatusCode, Message: resp.Status}
	}
	return nil
}

func fetchParams(count int, dr *DateRange) url.Values {
	params := url.Values{}
	if count > 0 {
		params.Set("count", strconv.Itoa(count))
	}
	if dr != nil {
		if dr.Start != "" {
			params.Set("start_date", dr.Start)
		}
		if dr.End != "" {
			params.Set("end_date", dr.End)
		}
	}
	return params
}

// do performs a request and decodes the JSON response into out. Non-2xx
// responses are decoded into an Error, preserving the upstream's status,
// error message and wait_time hint.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body io.Reader, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{StatusCode: http.StatusInternalServerError, Message: err.Error(), Unreachable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) *Error {
	var payload struct {
		Error    string `json:"error"`
		WaitTime *int   `json:"wait_time"`
	}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Error == "" {
		payload.Error = resp.Status
	}
	return &Error{
		StatusCode: resp.StatusCode,
		Message:    payload.Error,
		WaitTime:   payload.WaitTime,
	}
}
