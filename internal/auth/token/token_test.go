package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()
	svc, err := NewService(&Config{Secret: testSecret, TTL: ttl, Issuer: "identity-service"})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc := newTestService(t, time.Hour)

	tok, err := svc.Issue("user-123", "alice@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.SubjectID() != "user-123" {
		t.Errorf("expected subject user-123, got %s", claims.SubjectID())
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected email claim, got %s", claims.Email)
	}
	if !claims.ExpiresAt.Time.After(claims.IssuedAt.Time) {
		t.Error("expiry must be after issue time")
	}
	if got := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time); got != time.Hour {
		t.Errorf("expected expiry = issuedAt + 1h, got +%s", got)
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := newTestService(t, time.Hour)

	issued := time.Now()
	svc.now = func() time.Time { return issued }
	tok, err := svc.Issue("user-123", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Just inside the TTL: still valid.
	svc.now = func() time.Time { return issued.Add(time.Hour - time.Second) }
	if _, err := svc.Verify(tok); err != nil {
		t.Fatalf("token should verify before expiry: %v", err)
	}

	// Just past the TTL: expired, no leeway.
	svc.now = func() time.Time { return issued.Add(time.Hour + time.Second) }
	_, err = svc.Verify(tok)
	if !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestVerify_TamperedSignature(t *testing.T) {
	svc := newTestService(t, time.Hour)

	tok, err := svc.Issue("user-123", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("expected three JWT segments, got %d", len(parts))
	}

	// Replace one signature character with a different base64url character.
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify(tampered)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerify_TamperedClaims(t *testing.T) {
	svc := newTestService(t, time.Hour)

	tok, err := svc.Issue("user-123", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Any bit flip in the claims segment invalidates the signature.
	parts := strings.Split(tok, ".")
	body := []byte(parts[1])
	if body[0] == 'A' {
		body[0] = 'B'
	} else {
		body[0] = 'A'
	}
	tampered := parts[0] + "." + string(body) + "." + parts[2]

	if _, err := svc.Verify(tampered); err == nil {
		t.Fatal("tampered claims must not verify")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	svc := newTestService(t, time.Hour)
	other, err := NewService(&Config{Secret: strings.Repeat("x", 32), TTL: time.Hour})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	tok, err := other.Issue("user-123", "")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = svc.Verify(tok)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	svc := newTestService(t, time.Hour)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c", "...."} {
		_, err := svc.Verify(tok)
		if !errors.Is(err, ErrMalformed) {
			t.Errorf("token %q: expected ErrMalformed, got %v", tok, err)
		}
	}
}

func TestNewService_RejectsWeakSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"short", "too-short"},
		{"31 bytes", strings.Repeat("x", 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewService(&Config{Secret: tt.secret}); err == nil {
				t.Fatal("expected error for weak secret")
			}
		})
	}
}

func TestConfig_DefaultTTL(t *testing.T) {
	cfg := Config{Secret: testSecret}
	cfg.ApplyDefaults()
	if cfg.TTL != time.Hour {
		t.Fatalf("expected default TTL 1h, got %s", cfg.TTL)
	}
}
