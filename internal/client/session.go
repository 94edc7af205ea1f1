// Package client is the dashboard-side session for the sentiment API. It
// keeps the auth token in a TokenStore, attaches it to every request, and
// tracks upstream rate-limit countdowns so the caller knows when a retry
// is allowed.
package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// State is the session's authentication state.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// ErrNotAuthenticated means the caller must log in first.
var ErrNotAuthenticated = errors.New("not authenticated")

// APIError is a failure reported by the sentiment API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// RateLimitError means the upstream is rate limited; retry after Wait.
type RateLimitError struct {
	Message string
	Wait    time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s (retry in %s)", e.Message, e.Wait.Round(time.Second))
}

// Session is an authenticated connection to the sentiment API.
type Session struct {
	baseURL string
	http    *http.Client
	store   TokenStore

	mu         sync.Mutex
	state      State
	token      string
	retryUntil time.Time
}

// NewSession restores a session from the store. A previously stored token
// moves the session straight to Authenticated; its expiry is only
// discovered on the next rejected request.
func NewSession(baseURL string, store TokenStore) (*Session, error) {
	s := &Session{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
		store:   store,
	}
	token, err := store.Load()
	if err != nil {
		return nil, err
	}
	if token != "" {
		s.token = token
		s.state = Authenticated
	}
	return s, nil
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RetryWait reports how long until a rate-limited action may be retried.
// Zero means no countdown is active.
func (s *Session) RetryWait() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if wait := time.Until(s.retryUntil); wait > 0 {
		return wait
	}
	return 0
}

// Login authenticates and stores the returned token.
func (s *Session) Login(username, password string) error {
	return s.authenticate("/api/auth/login", username, password)
}

// Signup registers a new account and stores the returned token.
func (s *Session) Signup(username, password string) error {
	return s.authenticate("/api/auth/signup", username, password)
}

// Logout clears the stored token.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.state = Unauthenticated
	s.token = ""
	s.mu.Unlock()
	return s.store.Clear()
}

func (s *Session) authenticate(path, username, password string) error {
	s.mu.Lock()
	s.state = Authenticating
	s.mu.Unlock()

	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return err
	}

	resp, err := s.http.Post(s.baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		s.setUnauthenticated()
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.setUnauthenticated()
		return decodeAPIError(resp)
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		s.setUnauthenticated()
		return err
	}

	s.mu.Lock()
	s.token = payload.Token
	s.state = Authenticated
	s.mu.Unlock()
	return s.store.Save(payload.Token)
}

func (s *Session) setUnauthenticated() {
	s.mu.Lock()
	s.state = Unauthenticated
	s.token = ""
	s.mu.Unlock()
}

// do performs an authenticated request. Unauthenticated sessions fail
// immediately, an active rate-limit countdown blocks the call, and a 401
// response drops the session back to Unauthenticated.
func (s *Session) do(method, path string, body interface{}, out interface{}) error {
	s.mu.Lock()
	if s.state != Authenticated {
		s.mu.Unlock()
		return ErrNotAuthenticated
	}
	if wait := time.Until(s.retryUntil); wait > 0 {
		s.mu.Unlock()
		return &RateLimitError{Message: "Rate limited", Wait: wait}
	}
	token := s.token
	s.mu.Unlock()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		io.Copy(io.Discard, resp.Body)
		s.setUnauthenticated()
		s.store.Clear()
		return ErrNotAuthenticated
	case resp.StatusCode >= 400:
		apiErr, waitTime := decodeErrorBody(resp)
		if waitTime > 0 {
			wait := time.Duration(waitTime) * time.Second
			s.mu.Lock()
			s.retryUntil = time.Now().Add(wait)
			s.mu.Unlock()
			return &RateLimitError{Message: apiErr.Message, Wait: wait}
		}
		return apiErr
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) *APIError {
	apiErr, _ := decodeErrorBody(resp)
	return apiErr
}

func decodeErrorBody(resp *http.Response) (*APIError, int) {
	var payload struct {
		Error    string `json:"error"`
		WaitTime int    `json:"wait_time"`
	}
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Error == "" {
		payload.Error = resp.Status
	}
	return &APIError{Status: resp.StatusCode, Message: payload.Error}, payload.WaitTime
}
