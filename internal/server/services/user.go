// Package services contains server-side business logic. This file implements
// UserService: registration, login, and profile lookup. The decision logic
// here is the contract-bearing part of the auth core.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/courseboard/server/internal/common"
	"github.com/courseboard/server/internal/dbx"
	"github.com/courseboard/server/internal/server/auth"
	"github.com/courseboard/server/internal/server/models"
	"github.com/courseboard/server/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create users and mint their first token
// - Login: verify credentials and mint a token
// - Profile: fetch the display profile for an authenticated identity
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	issuer      *auth.Issuer
	bcryptCost  int
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, issuer *auth.Issuer, bcryptCost int) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		issuer:      issuer,
		bcryptCost:  bcryptCost,
	}
}

// Register creates a user and returns a token for the new identity.
//
// Any absent field fails with ErrMissingFields. A taken email fails with
// ErrAlreadyExists: the email check and the insert run in one
// transaction, and the users_user_email_key constraint (mapped in the
// repository) closes the remaining check-then-insert race. A token
// issuance failure is terminal; registration never reports success
// without a credential.
func (s *UserService) Register(ctx context.Context, name, email, password, role string) (string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" || role == "" {
		return "", common.ErrMissingFields
	}
	if !models.ValidRole(role) {
		return "", fmt.Errorf("%w: unknown role", common.ErrValidation)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	var user *models.User
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.GetByEmail(ctx, email); err == nil {
			return common.ErrAlreadyExists
		} else if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error checking email: %w", err)
		}

		created, err := repo.Create(ctx, &models.User{
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Role:         role,
		})
		if err != nil {
			if errors.Is(err, common.ErrAlreadyExists) {
				return common.ErrAlreadyExists
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		user = created
		return nil
	}); err != nil {
		return "", err
	}

	token, err := s.issuer.Issue(auth.Identity{ID: user.ID, Name: user.Name, Role: user.Role})
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrTokenIssuance, err)
	}

	return token, nil
}

// Login verifies the credentials and returns a token plus the user's role.
// An unknown email and a wrong password are indistinguishable to the
// caller: both fail with ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (string, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", "", common.ErrInvalidCredentials
		}
		return "", "", fmt.Errorf("error fetching user: %w", err)
	}

	ok, err := auth.VerifyPassword(user.PasswordHash, password)
	if err != nil || !ok {
		// A malformed stored hash means "not verified", same as a mismatch.
		return "", "", common.ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(auth.Identity{ID: user.ID, Name: user.Name, Role: user.Role})
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", common.ErrTokenIssuance, err)
	}

	return token, user.Role, nil
}

// Profile returns the user record behind an authenticated identity.
func (s *UserService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return user, nil
}
