package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/meherkandukuri/vegtrack/internal/common"
)

func TestNewTokenAndParse_Success(t *testing.T) {
	t.Parallel()

	s := NewService("super-secret", time.Hour)

	tok, err := s.NewToken(42)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	claims, err := s.ParseToken(tok)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("userID mismatch: got %d want 42", claims.UserID)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	s := NewService("secret", -1*time.Second)
	tok, err := s.NewToken(1)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	_, err = s.ParseToken(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewService("right-secret", time.Hour)
	tok, err := issuer.NewToken(2)
	if err != nil {
		t.Fatalf("NewToken error: %v", err)
	}

	_, err = NewService("wrong-secret", time.Hour).ParseToken(tok)
	if err == nil {
		t.Fatalf("expected error for invalid signature, got nil")
	}
}

func TestParseToken_MalformedString(t *testing.T) {
	t.Parallel()

	_, err := NewService("k", time.Hour).ParseToken("not.a.jwt")
	if err == nil {
		t.Fatalf("expected error for malformed token, got nil")
	}
}

func TestPasswordHashing(t *testing.T) {
	t.Parallel()

	s := NewService("k", time.Hour)
	hash, err := s.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if !s.CheckPassword(hash, "hunter22") {
		t.Fatalf("CheckPassword rejected the original password")
	}
	if s.CheckPassword(hash, "hunter23") {
		t.Fatalf("CheckPassword accepted a wrong password")
	}
}
