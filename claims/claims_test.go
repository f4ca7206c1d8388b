package claims

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestDecodeReadsRoleAndEmail(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{
		"role":  "MODERATOR",
		"email": "mod@example.edu",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	access, err := Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if access.Role != "MODERATOR" {
		t.Fatalf("expected role MODERATOR, got %q", access.Role)
	}
	if access.Email != "mod@example.edu" {
		t.Fatalf("expected email claim, got %q", access.Email)
	}
}

func TestDecodeDoesNotVerifySignature(t *testing.T) {
	// a token signed with an unknown key still decodes; the backend is the
	// verifier, this side only reads advisory claims
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "ADMIN",
	}).SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	role, err := Role(token)
	if err != nil {
		t.Fatalf("role: %v", err)
	}
	if role != "ADMIN" {
		t.Fatalf("expected ADMIN, got %q", role)
	}
}

func TestDecodeRejectsMalformedTokens(t *testing.T) {
	for _, token := range []string{"", "   ", "abc", "a.b", "a.b.c.d", "not.a jwt"} {
		if _, err := Decode(token); !errors.Is(err, ErrMalformed) {
			t.Fatalf("token %q: expected ErrMalformed, got %v", token, err)
		}
	}
}

func TestRoleMissingClaimIsEmpty(t *testing.T) {
	token := mintToken(t, jwt.MapClaims{"email": "mod@example.edu"})
	role, err := Role(token)
	if err != nil {
		t.Fatalf("role: %v", err)
	}
	if role != "" {
		t.Fatalf("expected empty role, got %q", role)
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()

	live := mintToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})
	if Expired(live, now) {
		t.Fatalf("live token reported expired")
	}

	dead := mintToken(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()})
	if !Expired(dead, now) {
		t.Fatalf("expired token reported live")
	}

	noExp := mintToken(t, jwt.MapClaims{"role": "ADMIN"})
	if !Expired(noExp, now) {
		t.Fatalf("token without exp must be treated as expired")
	}

	if !Expired("garbage", now) {
		t.Fatalf("malformed token must be treated as expired")
	}
}
