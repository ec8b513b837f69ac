package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/courseboard/server/internal/common"
)

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	issuer, err := NewIssuer("super-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	verifier, err := NewVerifier("super-secret")
	if err != nil {
		t.Fatalf("NewVerifier error: %v", err)
	}

	want := Identity{ID: 42, Name: "Alice", Role: "student"}
	tok, err := issuer.Issue(want)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	got, err := verifier.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if *got != want {
		t.Fatalf("identity mismatch: got %+v want %+v", got, want)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	issuer, _ := NewIssuer("secret", -1*time.Second)
	verifier, _ := NewVerifier("secret")

	tok, err := issuer.Issue(Identity{ID: 1, Name: "u1", Role: "student"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = verifier.Verify(tok)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer, _ := NewIssuer("right-secret", time.Hour)
	verifier, _ := NewVerifier("wrong-secret")

	tok, err := issuer.Issue(Identity{ID: 2, Name: "u2", Role: "teacher"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = verifier.Verify(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_MalformedString(t *testing.T) {
	t.Parallel()

	verifier, _ := NewVerifier("k")

	_, err := verifier.Verify("not.a.jwt")
	if !errors.Is(err, common.ErrAuthorization) {
		t.Fatalf("expected ErrAuthorization, got %v", err)
	}
}

func TestNewIssuer_EmptySecret(t *testing.T) {
	t.Parallel()

	if _, err := NewIssuer("", time.Hour); !errors.Is(err, common.ErrServerMisconfigured) {
		t.Fatalf("expected ErrServerMisconfigured, got %v", err)
	}
	if _, err := NewVerifier(""); !errors.Is(err, common.ErrServerMisconfigured) {
		t.Fatalf("expected ErrServerMisconfigured, got %v", err)
	}
}
