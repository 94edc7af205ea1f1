// Package apierror defines the typed error that crosses the route
// boundary. Every failure a handler reports is one of these; the response
// body is always {"error": message} plus an optional wait_time retry hint
// relayed from the upstream service.
package apierror

import "net/http"

// Error is a failure with an HTTP status and a client-facing message.
type Error struct {
	Status   int    `json:"-"`
	Message  string `json:"error"`
	WaitTime *int   `json:"wait_time,omitempty"` // seconds, rate-limit hint
}

func (e *Error) Error() string {
	return e.Message
}

// Validation is a 400 for missing or malformed input.
func Validation(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Unauthorized is a 401 for missing, invalid or expired tokens.
func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// Conflict reports a duplicate resource. The original API used 400 for
// duplicate usernames, so the status stays 400 here.
func Conflict(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Upstream relays a failure from the analysis service with its own status.
func Upstream(status int, msg string, waitTime *int) *Error {
	return &Error{Status: status, Message: msg, WaitTime: waitTime}
}

// Persistence is a 500 for store write failures.
func Persistence(msg string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg}
}

// Internal is a generic 500.
func Internal(msg string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: msg}
}
