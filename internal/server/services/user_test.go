package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/courseboard/server/internal/common"
	"github.com/courseboard/server/internal/server/auth"
	"github.com/courseboard/server/internal/server/models"
	"golang.org/x/crypto/bcrypt"
)

// newUserService backs the service with a sqlmock handle so registration's
// transaction (begin/commit/rollback) is observable; the repositories
// themselves are fakes.
func newUserService(t *testing.T, rm *fakeRepoManager) (*UserService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	issuer, err := auth.NewIssuer("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	return NewUserService(db, rm, issuer, bcrypt.MinCost), mock
}

func TestRegister_Success(t *testing.T) {
	rm := newFakeRepoManager()
	rm.users.byEmailErr = common.ErrorNotFound
	rm.users.createOut = &models.User{ID: 42, Name: "Alice", Email: "alice@example.com", Role: "student"}

	svc, mock := newUserService(t, rm)
	mock.ExpectBegin()
	mock.ExpectCommit()

	token, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pw", "student")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("transaction expectations: %v", err)
	}

	verifier, _ := auth.NewVerifier("test-secret")
	ident, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if ident.ID != 42 || ident.Name != "Alice" || ident.Role != "student" {
		t.Fatalf("unexpected identity: %+v", ident)
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newUserService(t, newFakeRepoManager())

	cases := [][4]string{
		{"", "a@b.c", "pw", "student"},
		{"Alice", "", "pw", "student"},
		{"Alice", "a@b.c", "", "student"},
		{"Alice", "a@b.c", "pw", ""},
	}
	for _, c := range cases {
		_, err := svc.Register(context.Background(), c[0], c[1], c[2], c[3])
		if !errors.Is(err, common.ErrMissingFields) {
			t.Fatalf("expected ErrMissingFields for %v, got %v", c, err)
		}
	}
}

func TestRegister_UnknownRole(t *testing.T) {
	svc, _ := newUserService(t, newFakeRepoManager())

	_, err := svc.Register(context.Background(), "Alice", "a@b.c", "pw", "admin")
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	rm := newFakeRepoManager()
	rm.users.byEmailOut = &models.User{ID: 1, Email: "alice@example.com"}

	svc, mock := newUserService(t, rm)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pw", "student")
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("transaction expectations: %v", err)
	}
}

func TestRegister_DuplicateEmailFromConstraint(t *testing.T) {
	// The pre-check misses a concurrent insert; the repository surfaces the
	// unique-constraint violation instead.
	rm := newFakeRepoManager()
	rm.users.byEmailErr = common.ErrorNotFound
	rm.users.createErr = common.ErrAlreadyExists

	svc, mock := newUserService(t, rm)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Register(context.Background(), "Alice", "alice@example.com", "pw", "student")
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("transaction expectations: %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := auth.HashPassword("pw", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	rm := newFakeRepoManager()
	rm.users.byEmailOut = &models.User{ID: 7, Name: "Bob", Email: "bob@example.com", PasswordHash: hash, Role: "teacher"}

	svc, _ := newUserService(t, rm)

	token, role, err := svc.Login(context.Background(), "bob@example.com", "pw")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if role != "teacher" {
		t.Fatalf("unexpected role: %s", role)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
}

func TestLogin_UnknownEmailAndWrongPasswordIndistinguishable(t *testing.T) {
	hash, _ := auth.HashPassword("pw", bcrypt.MinCost)

	unknown := newFakeRepoManager()
	unknown.users.byEmailErr = common.ErrorNotFound

	wrongPw := newFakeRepoManager()
	wrongPw.users.byEmailOut = &models.User{ID: 7, PasswordHash: hash}

	for name, rm := range map[string]*fakeRepoManager{"unknown email": unknown, "wrong password": wrongPw} {
		svc, _ := newUserService(t, rm)
		_, _, err := svc.Login(context.Background(), "bob@example.com", "nope")
		if !errors.Is(err, common.ErrInvalidCredentials) {
			t.Fatalf("%s: expected ErrInvalidCredentials, got %v", name, err)
		}
	}
}

func TestLogin_MalformedStoredHashIsNotVerified(t *testing.T) {
	rm := newFakeRepoManager()
	rm.users.byEmailOut = &models.User{ID: 7, PasswordHash: "garbage"}

	svc, _ := newUserService(t, rm)

	_, _, err := svc.Login(context.Background(), "bob@example.com", "pw")
	if !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestProfile_NotFound(t *testing.T) {
	rm := newFakeRepoManager()
	rm.users.byIDErr = common.ErrorNotFound

	svc, _ := newUserService(t, rm)

	_, err := svc.Profile(context.Background(), 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}
}
