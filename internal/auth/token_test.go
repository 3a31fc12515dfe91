package auth

import (
	"testing"
	"time"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	secret := "test_secret"
	now := time.Unix(1700000000, 0)

	s, err := SignSessionToken("venue", "teatro-luna.example", secret, now, 10*time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	got, err := VerifySessionToken(s, secret, now)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Role != "venue" || got.Subject != "teatro-luna.example" {
		t.Fatalf("claims mismatch: %+v", got)
	}
}

func TestVerifySessionToken_WrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s, err := SignSessionToken("admin", "ops", "secret_a", now, 10*time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifySessionToken(s, "secret_b", now); err == nil {
		t.Fatalf("expected error")
	}
}

func TestVerifySessionToken_Expired(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s, err := SignSessionToken("artist", "a1", "secret", now, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifySessionToken(s, "secret", now.Add(2*time.Minute)); err == nil {
		t.Fatalf("expected error")
	}
}

func TestVerifySessionToken_UnknownRole(t *testing.T) {
	now := time.Unix(1700000000, 0)
	s, err := SignSessionToken("superuser", "x", "secret", now, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifySessionToken(s, "secret", now); err == nil {
		t.Fatalf("expected error")
	}
}
