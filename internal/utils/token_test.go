package utils

import (
	"testing"
	"time"
)

func TestSessionTokenRoundtrip(t *testing.T) {
	tok, err := NewSessionToken("secret", "sid-abc", 42, time.Hour)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	sid, adminID, err := ParseSessionToken("secret", tok.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sid != "sid-abc" || adminID != 42 {
		t.Fatalf("parsed (%q, %d), want (sid-abc, 42)", sid, adminID)
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	tok, err := NewSessionToken("secret", "sid", 1, time.Hour)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	if _, _, err := ParseSessionToken("other-secret", tok.Token); err == nil {
		t.Fatal("token signed with a different secret accepted")
	}
}

func TestSessionTokenExpired(t *testing.T) {
	tok, err := NewSessionToken("secret", "sid", 1, -time.Minute)
	if err != nil {
		t.Fatalf("new token: %v", err)
	}
	if _, _, err := ParseSessionToken("secret", tok.Token); err == nil {
		t.Fatal("expired token accepted")
	}
}

func TestSessionTokenGarbage(t *testing.T) {
	if _, _, err := ParseSessionToken("secret", "not-a-jwt"); err == nil {
		t.Fatal("garbage token accepted")
	}
}

func TestNewSessionIDUnique(t *testing.T) {
	a, err := NewSessionID()
	if err != nil {
		t.Fatalf("session id: %v", err)
	}
	b, err := NewSessionID()
	if err != nil {
		t.Fatalf("session id: %v", err)
	}
	if a == b {
		t.Fatal("two session ids are identical")
	}
	if len(a) != 64 {
		t.Fatalf("session id length = %d, want 64 hex chars", len(a))
	}
}
