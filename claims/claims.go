package claims

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is an exported constant or variable used by the moderation client engine.
var ErrMalformed = errors.New("malformed access token")

// Access defines a public type used by goAdmin APIs.
//
// Access instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Access struct {
	Role  string `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Decode describes the decode operation and its observable behavior.
//
// Decode may return an error when input validation, dependency calls, or security checks fail.
// Decode does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Decode(token string) (*Access, error) {
	token = strings.TrimSpace(token)
	if token == "" || strings.Count(token, ".") != 2 {
		return nil, ErrMalformed
	}

	parser := jwt.NewParser()
	out := &Access{}
	if _, _, err := parser.ParseUnverified(token, out); err != nil {
		return nil, ErrMalformed
	}
	return out, nil
}

// Role describes the role operation and its observable behavior.
//
// Role may return an error when input validation, dependency calls, or security checks fail.
// Role does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func Role(token string) (string, error) {
	access, err := Decode(token)
	if err != nil {
		return "", err
	}
	return access.Role, nil
}

// Expired reports whether the token's exp claim is in the past relative to
// now. A token without an exp claim is treated as expired.
func Expired(token string, now time.Time) bool {
	access, err := Decode(token)
	if err != nil {
		return true
	}
	if access.ExpiresAt == nil {
		return true
	}
	return access.ExpiresAt.Time.Before(now)
}
