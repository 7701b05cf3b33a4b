package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestHMACService_RoundTrip(t *testing.T) {
	svc := NewHMACService("test-secret")

	token, err := svc.GenerateToken("ops", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "ops" {
		t.Fatalf("expected subject ops, got %q", claims.Subject)
	}
	if claims.Role != RoleAdmin {
		t.Fatalf("expected admin role, got %q", claims.Role)
	}
}

func TestHMACService_ExpiredToken(t *testing.T) {
	svc := NewHMACService("test-secret")
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.GenerateToken("ops", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestHMACService_WrongSecret(t *testing.T) {
	token, err := NewHMACService("secret-a").GenerateToken("ops", time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := NewHMACService("secret-b").ValidateToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestHMACService_GarbageToken(t *testing.T) {
	if _, err := NewHMACService("secret").ValidateToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
