// Copyright (c) 2026 Lyrica. All rights reserved.

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/lyricahq/lyrica/internal/platform/apperr"
	"github.com/lyricahq/lyrica/internal/platform/sec"
)

// # Session Service

// SessionConfig holds the immutable session policy, read once at startup.
type SessionConfig struct {
	// Secret keys the HMAC digest under which tokens are stored.
	Secret string

	// Lifetime is the rolling session lifetime: each valid resolution slides
	// expiry forward by this duration.
	Lifetime time.Duration

	// MaxLifetime is the absolute ceiling measured from session creation.
	// Sliding renewal never extends expiry past CreatedAt + MaxLifetime.
	MaxLifetime time.Duration
}

// SessionService issues, resolves, and revokes opaque session tokens against
// the session store.
//
// # Consistency
//
// A token resolves to exactly one session record or to nothing. All state
// lives in the store; the service itself holds no cross-request mutable
// memory, so concurrent requests interact only through single-key store
// operations.
type SessionService struct {
	sessions SessionRepository
	config   SessionConfig
	logger   *slog.Logger
}

// NewSessionService constructs a [SessionService].
func NewSessionService(sessions SessionRepository, config SessionConfig, logger *slog.Logger) *SessionService {
	return &SessionService{
		sessions: sessions,
		config:   config,
		logger:   logger,
	}
}

/*
Issue generates a new session bound to userID ("" for an anonymous session).

The token is drawn from a cryptographically secure source, independent of any
user-supplied input. Expiry is now + Lifetime, already capped by the absolute
ceiling since Lifetime <= MaxLifetime is enforced by configuration.

# Cancellation

Issuance of the record and its return to the caller form a single unit: if
the request context is cancelled after the write, the record is best-effort
deleted so no half-valid session outlives an aborted request. On cleanup
failure the record simply expires normally.
*/
func (service *SessionService) Issue(ctx context.Context, userID string) (*Session, error) {
	token, err := sec.NewSessionToken()
	if err != nil {
		return nil, apperr.Internal(err)
	}

	now := time.Now().UTC()
	session := &Session{
		Token:      token,
		Digest:     sec.TokenDigest(service.config.Secret, token),
		UserID:     userID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(service.config.Lifetime),
		LastSeenAt: now,
	}

	if err := service.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	if ctx.Err() != nil {
		service.discard(session.Digest)
		return nil, apperr.StoreUnavailable(ctx.Err())
	}

	return session, nil
}

/*
Resolve looks up a presented token and returns its live session, or nil for
anonymous (absent, expired, or empty token).

Logical expiry wins over physical presence: an expired record still in the
store resolves to nil and is opportunistically deleted (lazy garbage
collection — a storage-efficiency concern, never a correctness one).

On a valid hit the last-access time is bumped and expiry slides forward by
the configured lifetime, but never past CreatedAt + MaxLifetime, so a single
issuance cannot be renewed indefinitely.
*/
func (service *SessionService) Resolve(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	digest := sec.TokenDigest(service.config.Secret, token)
	session, err := service.sessions.FindByDigest(ctx, digest)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	now := time.Now().UTC()
	if session.Expired(now) {
		service.discard(digest)
		return nil, nil
	}

	// Sliding renewal, bounded by the absolute ceiling. Expiry is monotonic:
	// it only ever moves forward.
	session.LastSeenAt = now
	renewed := now.Add(service.config.Lifetime)
	if ceiling := session.CreatedAt.Add(service.config.MaxLifetime); renewed.After(ceiling) {
		renewed = ceiling
	}
	if renewed.After(session.ExpiresAt) {
		session.ExpiresAt = renewed
	}

	if err := service.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	session.Token = token
	return session, nil
}

/*
Revoke deletes the session for a presented token and reports whether a live
record existed. Revoking one session never affects other sessions owned by
the same user: each token's record is independently keyed.
*/
func (service *SessionService) Revoke(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	return service.sessions.Delete(ctx, sec.TokenDigest(service.config.Secret, token))
}

// discard removes a session record outside the request's own context, used
// for lazy expiry reclamation and cancelled-issuance cleanup.
func (service *SessionService) discard(digest string) {
	cleanupCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := service.sessions.Delete(cleanupCtx, digest); err != nil {
		// Reclamation is best-effort; the record expires normally.
		service.logger.Debug("session_discard_failed", slog.Any("error", err))
	}
}
