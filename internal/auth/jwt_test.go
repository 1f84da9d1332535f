package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSubject = "5f8f8c44b54764421b7156c3"

func TestManager_IssueVerifyRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 0)

	token, err := m.Issue(testSubject)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	sub, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}

	if sub != testSubject {
		t.Fatalf("got subject %q, want %q", sub, testSubject)
	}
}

func TestManager_TokenExpiresAfterSevenDays(t *testing.T) {
	m := NewManager("test-secret", 0)
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issuedAt }

	token, err := m.Issue(testSubject)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, &Claims{})
	if err != nil {
		t.Fatalf("ParseUnverified error: %v", err)
	}
	claims := parsed.Claims.(*Claims)
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 7*24*time.Hour {
		t.Fatalf("got lifetime %v, want 168h", got)
	}

	m.now = func() time.Time { return issuedAt.Add(7*24*time.Hour - time.Minute) }
	if _, err := m.Verify(token); err != nil {
		t.Fatalf("token should still be valid: %v", err)
	}

	m.now = func() time.Time { return issuedAt.Add(7*24*time.Hour + time.Minute) }
	_, err = m.Verify(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestManager_VerifyRejects(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	other := NewManager("other-secret", time.Hour)

	foreign, err := other.Issue(testSubject)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	valid, _ := m.Issue(testSubject)
	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   testSubject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build none token: %v", err)
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: testSubject},
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to build token: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "wrong_secret", token: foreign},
		{name: "tampered_payload", token: tampered},
		{name: "alg_none", token: noneToken},
		{name: "missing_expiry", token: noExpiry},
		{name: "missing_subject", token: noSubject},
		{name: "garbage", token: "not.a.jwt"},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := m.Verify(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
			if sub != "" {
				t.Fatalf("expected empty subject, got %q", sub)
			}
		})
	}
}

func TestManager_IssueRejectsEmptySubject(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	if _, err := m.Issue(""); err == nil {
		t.Fatalf("expected error for empty subject")
	}
}
