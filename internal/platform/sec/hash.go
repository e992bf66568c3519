// Copyright (c) 2026 Lyrica. All rights reserved.

// Package sec provides cryptographic primitives for the Lyrica platform:
// password hashing, session token generation, and credential normalization.
//
// # Architecture
//
// This package isolates security-sensitive code from the domain logic. It is
// injected into the application layer via constructors, never reached through
// globals.
package sec

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"github.com/lyricahq/lyrica/internal/platform/apperr"
)

// Hasher computes and verifies salted bcrypt digests.
//
// # Scheduling
//
// bcrypt is deliberately expensive (on the order of 100ms per verification at
// the default cost). All hashing work passes through a weighted semaphore
// sized to GOMAXPROCS so a burst of logins cannot starve unrelated request
// handling. Acquisition is context-aware: a cancelled request never waits for
// a hashing slot.
type Hasher struct {
	cost int
	lane *semaphore.Weighted
}

// NewHasher constructs a [Hasher] with the given bcrypt cost factor.
// A cost outside bcrypt's supported range falls back to the default cost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{
		cost: cost,
		lane: semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}
}

// Hash produces a salted one-way digest of the plaintext.
// The plaintext is never logged or returned.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.lane.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.lane.Release(1)

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return string(digest), nil
}

// Verify recomputes and compares the plaintext against the stored digest.
//
// # Failure Modes
//
//   - (true, nil): the password matches.
//   - (false, nil): the password does not match.
//   - (false, IntegrityError): the stored digest is malformed (e.g. store
//     corruption). Deliberately distinguishable from a wrong password so
//     operators can detect corruption separately from user error.
//
// bcrypt embeds the salt in the digest and compares in constant time with
// respect to the secret.
func (h *Hasher) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	if err := h.lane.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.lane.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		// Any other bcrypt error means the digest itself is unparseable.
		return false, apperr.Integrity(err)
	}
}
