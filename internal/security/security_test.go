package security

import (
	"testing"
	"time"
)

func TestCSRFTokenRoundTrip(t *testing.T) {
	g := NewCSRFGenerator("test-secret")
	token := g.GenerateToken("session-abc")

	if !g.ValidateToken("session-abc", token) {
		t.Error("freshly minted token failed validation")
	}
	if g.ValidateToken("session-other", token) {
		t.Error("token validated against a different session")
	}
	if g.ValidateToken("session-abc", token+"x") {
		t.Error("tampered token validated")
	}
	if g.ValidateToken("session-abc", "garbage") {
		t.Error("malformed token validated")
	}
}

func TestCSRFTokenExpiry(t *testing.T) {
	g := NewCSRFGenerator("test-secret")
	g.maxAge = -time.Second // force every token to be stale
	token := g.GenerateToken("session-abc")
	if g.ValidateToken("session-abc", token) {
		t.Error("stale token validated")
	}
}

func TestCSRFDifferentSecrets(t *testing.T) {
	a := NewCSRFGenerator("secret-a")
	b := NewCSRFGenerator("secret-b")
	token := a.GenerateToken("session-abc")
	if b.ValidateToken("session-abc", token) {
		t.Error("token minted under one secret validated under another")
	}
}

func TestRateLimiterBurstAndRefill(t *testing.T) {
	l := NewRateLimiter(3, 100) // fast refill keeps the test quick

	for i := 0; i < 3; i++ {
		if !l.Allow("ip-1") {
			t.Fatalf("request %d within burst was denied", i+1)
		}
	}
	if l.Allow("ip-1") {
		t.Error("request beyond burst was allowed")
	}

	// A different key has its own bucket.
	if !l.Allow("ip-2") {
		t.Error("fresh key was denied")
	}

	time.Sleep(20 * time.Millisecond)
	if !l.Allow("ip-1") {
		t.Error("bucket did not refill")
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	l := NewRateLimiter(1, 1)
	l.Allow("stale-key")
	l.Cleanup(0)

	l.mu.Lock()
	_, exists := l.buckets["stale-key"]
	l.mu.Unlock()
	if exists {
		t.Error("idle bucket survived cleanup")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	if !CheckPassword(hash, "correct horse battery") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	issuer := NewResetTokenIssuer("test-secret")
	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	userID, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if userID != 42 {
		t.Errorf("Verify() userID = %d, want 42", userID)
	}
}

func TestResetTokenRejectsForgery(t *testing.T) {
	issuer := NewResetTokenIssuer("test-secret")
	other := NewResetTokenIssuer("other-secret")

	token, err := other.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}
	if _, err := issuer.Verify(token); err == nil {
		t.Error("token signed with a different secret verified")
	}
	if _, err := issuer.Verify("not.a.jwt"); err == nil {
		t.Error("malformed token verified")
	}
}
