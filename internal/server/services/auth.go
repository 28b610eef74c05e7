// Package services contains the server-side business logic. AuthService
// orchestrates registration and login: uniqueness, hashing, token issuance,
// and the translation of every failure into the shared error taxonomy.
package services

import (
	"context"
	"errors"

	"github.com/gatehouse-dev/gatehouse/internal/common"
	"github.com/gatehouse-dev/gatehouse/internal/logging"
	"github.com/gatehouse-dev/gatehouse/internal/server/auth"
	"github.com/gatehouse-dev/gatehouse/internal/server/models"
	"github.com/gatehouse-dev/gatehouse/internal/server/repositories/users"
)

// TokenIssuer mints signed tokens for an authenticated subject.
// Satisfied by *auth.TokenIssuer.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// AuthService provides the two authentication operations consumed by every
// transport adapter. It holds no mutable state of its own; concurrent
// invocations are safe, with uniqueness serialization delegated to the
// store.
type AuthService struct {
	users  users.Repository
	hasher auth.PasswordHasher
	issuer TokenIssuer
	logger logging.Logger
}

func NewAuthService(repo users.Repository, hasher auth.PasswordHasher, issuer TokenIssuer, logger logging.Logger) *AuthService {
	return &AuthService{
		users:  repo,
		hasher: hasher,
		issuer: issuer,
		logger: logger.With("module", "auth_service"),
	}
}

// Register creates a new identity for the given credentials. The returned
// User is safe to serialize except for PasswordHash, which transports must
// never expose.
func (s *AuthService) Register(ctx context.Context, email, password string) (*models.User, error) {

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrorHashing
	}

	user, err := s.users.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorEmailExists
		}
		s.logger.Error(ctx, "user insert failed", "error", err)
		return nil, common.ErrorStoreUnavailable
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login verifies the credentials and mints a signed token whose subject is
// the identity's email. "No such user" and "wrong password" both collapse
// into ErrorInvalidCredentials so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorInvalidCredentials
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return "", common.ErrorStoreUnavailable
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		// A stored hash that cannot be parsed is data corruption, not a
		// caller mistake.
		s.logger.Error(ctx, "stored hash unreadable", "user_id", user.ID, "error", err)
		return "", common.ErrorInternal
	}
	if !ok {
		return "", common.ErrorInvalidCredentials
	}

	token, err := s.issuer.Issue(user.Email)
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err)
		return "", common.ErrorInternal
	}

	return token, nil
}
