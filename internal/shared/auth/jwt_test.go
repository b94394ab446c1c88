package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	iss, err := NewIssuer("secret", "dev")
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	token, err := iss.Sign("user-1", "a@example.com", "Ada")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := iss.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "a@example.com" || claims.Name != "Ada" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	a, _ := NewIssuer("one", "dev")
	b, _ := NewIssuer("two", "dev")
	token, err := a.Sign("user-1", "", "")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := b.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	iss, _ := NewIssuer("secret", "dev")
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return issued }
	token, err := iss.Sign("user-1", "", "")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	iss.now = func() time.Time { return issued.Add(defaultTTL + time.Minute) }
	if _, err := iss.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestNewIssuerRequiresSecretInProduction(t *testing.T) {
	if _, err := NewIssuer("", "production"); err == nil {
		t.Fatalf("expected error without secret in production")
	}
}
