// Copyright (c) 2026 Lyrica. All rights reserved.

package auth

import (
	"context"
	"log/slog"

	"github.com/lyricahq/lyrica/internal/platform/apperr"
	"github.com/lyricahq/lyrica/internal/platform/sec"
	"github.com/lyricahq/lyrica/internal/platform/validate"
	"github.com/lyricahq/lyrica/pkg/uuid"
)

// # Credential Service

// Service implements the account creation and credential verification use
// cases on top of the hasher, the credential store, and the session service.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, signup, or
// login logic must be reviewed with care: the enumeration-safety and
// plaintext-handling invariants live here.
type Service struct {
	users             UserRepository
	sessions          *SessionService
	hasher            *sec.Hasher
	passwordMinLength int
	logger            *slog.Logger
}

// NewService constructs the credential [Service] with its dependencies.
// passwordMinLength is configuration, not policy hardcoded here.
func NewService(users UserRepository, sessions *SessionService, hasher *sec.Hasher, passwordMinLength int, logger *slog.Logger) *Service {
	return &Service{
		users:             users,
		sessions:          sessions,
		hasher:            hasher,
		passwordMinLength: passwordMinLength,
		logger:            logger,
	}
}

/*
Signup validates, hashes, and persists a brand-new user account.

The email is case-normalized before storage; uniqueness is enforced by the
credential store's unique index, so a concurrent duplicate signup fails with
DuplicateEmail rather than racing a check-then-insert.

The returned User carries no password material in its serialized form, and
the plaintext is never persisted or logged.

Returns:
  - InvalidInput (VALIDATION_ERROR) for malformed email or weak password
  - DuplicateEmail if the normalized email is already registered
*/
func (service *Service) Signup(ctx context.Context, email, password string) (*User, error) {
	normalized := sec.NormalizeEmail(email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, normalized).
		Email(FieldEmail, normalized).
		Required(FieldPassword, password).
		MinLen(FieldPassword, password, service.passwordMinLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	digest, err := service.hasher.Hash(ctx, password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Email:        normalized,
		PasswordHash: digest,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_signed_up", slog.String("user_id", user.ID))
	return user, nil
}

/*
Login verifies credentials and establishes a fresh session.

# Enumeration Safety

An unknown email and a wrong password return the identical
InvalidCredentials error: account existence is never observable through
error shape. A malformed stored digest surfaces as IntegrityError instead,
so operators can tell store corruption apart from user error.

Each successful call creates exactly one new independently revocable session
(multi-device support); no existing session is touched.
*/
func (service *Service) Login(ctx context.Context, email, password string) (*User, *Session, error) {
	normalized := sec.NormalizeEmail(email)

	user, err := service.users.FindByEmail(ctx, normalized)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return nil, nil, apperr.InvalidCredentials()
		}
		return nil, nil, err
	}

	match, err := service.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, nil, err
	}
	if !match {
		return nil, nil, apperr.InvalidCredentials()
	}

	session, err := service.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))
	return user, session, nil
}

/*
Logout revokes the session for a presented token.

A token that does not resolve to any live session fails with
NotAuthenticated. This is reported, not fatal: callers treat it as a no-op
from the user's perspective.
*/
func (service *Service) Logout(ctx context.Context, token string) error {
	live, err := service.sessions.Revoke(ctx, token)
	if err != nil {
		return err
	}
	if !live {
		return apperr.NotAuthenticated()
	}
	return nil
}
