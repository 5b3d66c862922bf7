package utils

import (
	"errors"
	"testing"
	"time"
)

func TestNewTokenAndParse_Success(t *testing.T) {
	t.Parallel()

	tok, err := NewToken("access-secret", "alice", 10*time.Minute)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token string")
	}
	if remain := time.Until(tok.Exp); remain < 9*time.Minute || remain > 10*time.Minute {
		t.Fatalf("unexpected expiry %v", tok.Exp)
	}

	id, err := ParseToken(tok.Token, "access-secret")
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if id != "alice" {
		t.Fatalf("id mismatch: got %q want %q", id, "alice")
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := NewToken("s", "u1", -1*time.Second)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	_, err = ParseToken(tok.Token, "s")
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseToken_NotYetExpired(t *testing.T) {
	t.Parallel()

	tok, err := NewToken("s", "u1", 2*time.Second)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	if _, err := ParseToken(tok.Token, "s"); err != nil {
		t.Fatalf("token should still verify, got %v", err)
	}
}

// A token of one class must never verify under the other class's secret.
func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewToken("access-secret", "u2", time.Hour)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	_, err = ParseToken(tok.Token, "refresh-secret")
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestParseToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := ParseToken("not.a.jwt", "k")
	if !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestNewToken_UniquePerIssue(t *testing.T) {
	t.Parallel()

	a, err := NewToken("s", "u3", time.Hour)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	b, err := NewToken("s", "u3", time.Hour)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}
	if a.Token == b.Token {
		t.Fatal("two issuances produced an identical token")
	}
}
