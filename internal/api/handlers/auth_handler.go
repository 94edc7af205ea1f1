package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/akumar-dev/tweetpulse-be/internal/apierror"
	"github.com/akumar-dev/tweetpulse-be/internal/auth"
	"github.com/akumar-dev/tweetpulse-be/internal/services"
)

// AuthHandler handles signup and login.
type AuthHandler struct {
	service  services.AuthServiceProvider
	tokens   *auth.TokenService
	eventSvc services.EventServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.AuthServiceProvider, tokens *auth.TokenService, eventSvc services.EventServiceProvider) *AuthHandler {
	return &AuthHandler{service: service, tokens: tokens, eventSvc: eventSvc}
}

// CredentialsPayload is the body for both signup and login.
type CredentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup handles new user registration and returns a fresh token.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.Validation("Invalid request body"))
		return
	}
	if payload.Username == "" || payload.Password == "" {
		writeError(w, apierror.Validation("Username and password are required"))
		return
	}

	user, err := h.service.Signup(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			writeError(w, apierror.Conflict("Username already exists"))
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		writeError(w, apierror.Internal("Server Error"))
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		writeError(w, apierror.Internal("Server Error"))
		return
	}

	if err := h.eventSvc.CreateEvent("auth.signup", "info", "New account: "+user.Username, &user.Username); err != nil {
		log.Error().Err(err).Msg("Failed to record signup event")
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Login handles user authentication and JWT generation.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload CredentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.Validation("Invalid request body"))
		return
	}

	user, err := h.service.Login(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
			writeError(w, apierror.Validation("Invalid Credentials"))
			return
		}
		log.Error().Err(err).Str("username", payload.Username).Msg("Login lookup failed")
		writeError(w, apierror.Internal("Server Error"))
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to generate JWT")
		writeError(w, apierror.Internal("Server Error"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
