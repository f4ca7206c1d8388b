package goAdmin

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork is an exported constant or variable used by the moderation client engine.
	ErrNetwork = errors.New("network error")
	// ErrValidation is an exported constant or variable used by the moderation client engine.
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is an exported constant or variable used by the moderation client engine.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is an exported constant or variable used by the moderation client engine.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is an exported constant or variable used by the moderation client engine.
	ErrNotFound = errors.New("not found")
	// ErrRateLimited is an exported constant or variable used by the moderation client engine.
	ErrRateLimited = errors.New("rate limited")
	// ErrServer is an exported constant or variable used by the moderation client engine.
	ErrServer = errors.New("server error")
	// ErrUnknown is an exported constant or variable used by the moderation client engine.
	ErrUnknown = errors.New("unknown error")
	// ErrRoleNotAllowed is an exported constant or variable used by the moderation client engine.
	ErrRoleNotAllowed = errors.New("role not allowed")
	// ErrSessionInvalidated is an exported constant or variable used by the moderation client engine.
	ErrSessionInvalidated = errors.New("session invalidated")
	// ErrNoRefreshToken is an exported constant or variable used by the moderation client engine.
	ErrNoRefreshToken = errors.New("no refresh token available")
	// ErrTokenInvalid is an exported constant or variable used by the moderation client engine.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrEngineNotReady is an exported constant or variable used by the moderation client engine.
	ErrEngineNotReady = errors.New("client not initialized")
)

// Default human-readable messages per taxonomy kind, used when the response
// body carries no error or message field.
const (
	msgNetwork      = "Network error. Please check your connection."
	msgValidation   = "Please check your input and try again."
	msgUnauthorized = "You are not authorized to perform this action."
	msgForbidden    = "Access denied. Admin or Moderator role required."
	msgNotFound     = "Resource not found."
	msgRateLimited  = "Too many requests. Please slow down."
	msgServer       = "Server error. Please try again later."
	msgUnknown      = "An unexpected error occurred."
)

// APIError defines a public type used by goAdmin APIs.
//
// APIError is the only error shape the gateway lets escape to callers: every
// transport failure and non-2xx response is classified into exactly one
// taxonomy kind before propagation. Kind is one of the sentinel vars above,
// so errors.Is(err, ErrNotFound) and friends work on any returned error.
type APIError struct {
	Kind    error
	Status  int
	Message string
	cause   error
}

// Error describes the error operation and its observable behavior.
//
// Error does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *APIError) Error() string {
	if e == nil {
		return msgUnknown
	}
	if e.Status > 0 {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return e.Message
}

// Unwrap describes the unwrap operation and its observable behavior.
//
// Unwrap does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *APIError) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.cause != nil {
		return []error{e.Kind, e.cause}
	}
	return []error{e.Kind}
}

func netError(cause error) *APIError {
	return &APIError{Kind: ErrNetwork, Message: msgNetwork, cause: cause}
}

// classifyStatus maps a non-2xx HTTP status and an optional message from the
// response body to the taxonomy. The body message wins when present.
func classifyStatus(status int, bodyMsg string) *APIError {
	var kind error
	var msg string

	switch status {
	case 400:
		kind, msg = ErrValidation, msgValidation
	case 401:
		kind, msg = ErrUnauthorized, msgUnauthorized
	case 403:
		kind, msg = ErrForbidden, msgForbidden
	case 404:
		kind, msg = ErrNotFound, msgNotFound
	case 429:
		kind, msg = ErrRateLimited, msgRateLimited
	case 500:
		kind, msg = ErrServer, msgServer
	default:
		kind, msg = ErrUnknown, msgUnknown
	}

	if bodyMsg != "" {
		msg = bodyMsg
	}

	return &APIError{Kind: kind, Status: status, Message: msg}
}
