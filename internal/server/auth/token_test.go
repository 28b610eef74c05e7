package auth

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"testing"
	"time"

	"github.com/gatehouse-dev/gatehouse/internal/common"
)

func newTestIssuer(t *testing.T, validity time.Duration) *TokenIssuer {
	t.Helper()

	_, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}
	issuer, err := NewTokenIssuer(private, validity)
	if err != nil {
		t.Fatalf("NewTokenIssuer error: %v", err)
	}
	return issuer
}

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(t, time.Hour)

	tok, err := issuer.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	subject, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if subject != "a@x.com" {
		t.Fatalf("subject mismatch: got %q want %q", subject, "a@x.com")
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(t, time.Hour)
	issuer.validity = -1 * time.Second

	tok, err := issuer.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = issuer.Verify(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("want ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongKey(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(t, time.Hour)
	other := newTestIssuer(t, time.Hour)

	tok, err := issuer.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = other.Verify(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("want ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer(t, time.Hour)

	_, err := issuer.Verify("not.a.jwt")
	if !errors.Is(err, common.ErrMalformedToken) {
		t.Fatalf("want ErrMalformedToken, got %v", err)
	}
}

func TestNewTokenIssuer_RejectsBadInput(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenIssuer(nil, time.Hour); !errors.Is(err, common.ErrorSigning) {
		t.Fatalf("want ErrorSigning for nil key, got %v", err)
	}

	_, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey error: %v", err)
	}
	if _, err := NewTokenIssuer(private, 0); err == nil {
		t.Fatal("expected error for zero validity")
	}
}
