package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/akumar-dev/tweetpulse-be/internal/apierror"
	"github.com/akumar-dev/tweetpulse-be/internal/upstream"
)

// writeJSON writes v as a JSON response body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError converts any failure into the {"error": msg} wire shape.
// Typed API errors keep their status; upstream errors are relayed with the
// upstream's status, message and wait_time; anything else becomes a 500.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.Status, apiErr)
		return
	}

	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		writeJSON(w, upErr.StatusCode, apierror.Upstream(upErr.StatusCode, upErr.Message, upErr.WaitTime))
		return
	}

	writeJSON(w, http.StatusInternalServerError, apierror.Internal("Server Error"))
}
