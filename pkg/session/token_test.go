package session

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tok, err := Issue("principal-123", "secret", 24*time.Hour, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	vs, err := Verify(tok, "secret", now.Add(time.Hour))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if vs.PrincipalID != "principal-123" {
		t.Fatalf("expected principal-123, got %q", vs.PrincipalID)
	}
}

func TestVerify_Expired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tok, err := Issue("principal-123", "secret", time.Hour, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Verify(tok, "secret", now.Add(2*time.Hour)); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	now := time.Now()

	tok, err := Issue("principal-123", "secret", time.Hour, now)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Verify(tok, "other-secret", now); err == nil {
		t.Fatalf("expected signature error")
	}
}
