// Copyright (c) 2026 Lyrica. All rights reserved.

/*
Package auth implements the user identity and session lifecycle layer.

It defines the core domain entities (User, Session) and the services that
create accounts, verify credentials, and issue, resolve, and revoke opaque
session tokens.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no
transport dependencies and encapsulate all business rules related to user
identity:

  - Service: Orchestrates signup/login/logout (hashing, enumeration safety).
  - Sessions: Opaque store-backed tokens with sliding renewal and an
    absolute lifetime ceiling.
  - Repository: Abstracted interfaces for Postgres (users) and Redis (sessions).
*/
package auth

import "time"

// # Domain Entities

// User represents a registered account.
//
// Users are immutable after creation: this core never changes the email or
// the password hash once the row is written.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents a live browsing continuity, authenticated or anonymous.
//
// The raw Token travels only in the cookie; the store is keyed by its HMAC
// digest so a leaked store cannot be replayed as valid cookies.
type Session struct {
	// Token is the opaque high-entropy value handed to the client.
	// It is populated only on the issuing call and never persisted.
	Token string `json:"-"`

	// Digest is the HMAC-SHA256 of Token under the configured session secret.
	Digest string `json:"-"`

	// UserID is empty for sessions that exist before authentication.
	UserID string `json:"user_id,omitempty"`

	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// Authenticated reports whether the session is bound to a user.
func (s *Session) Authenticated() bool { return s != nil && s.UserID != "" }

// Expired reports whether the session has logically expired at the given
// instant. Logical expiry always wins over physical presence in the store.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Viewer is the immutable per-request identity constructed by the context
// binder. It is never persisted and is discarded at request end.
type Viewer struct {
	// User is the resolved account, or nil for anonymous requests.
	User *User

	// Token is the raw session token the request presented, or "" if none.
	Token string
}

// Authenticated reports whether the viewer carries a resolved user.
func (v *Viewer) Authenticated() bool { return v != nil && v.User != nil }
