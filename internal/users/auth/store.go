// Copyright (c) 2026 Lyrica. All rights reserved.

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for the credential store.
//
// It is the sole owner and sole writer of User records. Email uniqueness is
// enforced by the store itself (a unique index), never by a check-then-insert
// sequence in application code.
type UserRepository interface {
	// Create persists a brand-new user account. A violated email uniqueness
	// constraint surfaces as [apperr.DuplicateEmail].
	Create(ctx context.Context, user *User) error

	// FindByEmail returns the account with the given normalized email, or
	// [apperr.NotFound] if absent.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByID returns the account with the given ID, or [apperr.NotFound].
	FindByID(ctx context.Context, id string) (*User, error)
}

// # Session Data Access

// SessionRepository defines the data access contract for the session store.
//
// It is independent of the credential store: records are keyed by token
// digest, one record per issued token.
type SessionRepository interface {
	// Create persists a new session record with a TTL matching its expiry.
	Create(ctx context.Context, session *Session) error

	// FindByDigest returns the session record for a token digest, or
	// [apperr.NotFound] if no record is physically present.
	//
	// Physical presence is not validity: callers must still apply logical
	// expiry via [Session.Expired].
	FindByDigest(ctx context.Context, digest string) (*Session, error)

	// Update rewrites a session record (sliding renewal), refreshing its TTL.
	Update(ctx context.Context, session *Session) error

	// Delete removes the record for a token digest and reports whether a
	// record existed.
	Delete(ctx context.Context, digest string) (bool, error)
}
