package goAdmin

import (
	"errors"
	"testing"
)

func TestClassifyStatusTaxonomy(t *testing.T) {
	cases := []struct {
		status int
		kind   error
	}{
		{400, ErrValidation},
		{401, ErrUnauthorized},
		{403, ErrForbidden},
		{404, ErrNotFound},
		{429, ErrRateLimited},
		{500, ErrServer},
		{418, ErrUnknown},
		{502, ErrUnknown},
	}

	for _, tc := range cases {
		err := classifyStatus(tc.status, "")
		if !errors.Is(err, tc.kind) {
			t.Fatalf("status %d: expected %v, got %v", tc.status, tc.kind, err)
		}
	}
}

func TestClassifyStatusBodyMessageWins(t *testing.T) {
	err := classifyStatus(404, "user gone")
	if err.Message != "user gone" {
		t.Fatalf("expected body message, got %q", err.Message)
	}

	err = classifyStatus(404, "")
	if err.Message != msgNotFound {
		t.Fatalf("expected default message, got %q", err.Message)
	}
}

func TestAPIErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := netError(cause)
	if !errors.Is(err, ErrNetwork) {
		t.Fatalf("expected ErrNetwork")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause reachable through Unwrap")
	}
}

func TestAPIErrorStringIncludesStatus(t *testing.T) {
	err := classifyStatus(403, "")
	if got := err.Error(); got != "Access denied. Admin or Moderator role required. (status 403)" {
		t.Fatalf("unexpected error string %q", got)
	}
}
