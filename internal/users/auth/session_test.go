// Copyright (c) 2026 Lyrica. All rights reserved.

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyricahq/lyrica/internal/platform/sec"
	"github.com/lyricahq/lyrica/internal/users/auth"
)

const testSecret = "test-session-secret"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSessionService(repo auth.SessionRepository, lifetime, maxLifetime time.Duration) *auth.SessionService {
	return auth.NewSessionService(repo, auth.SessionConfig{
		Secret:      testSecret,
		Lifetime:    lifetime,
		MaxLifetime: maxLifetime,
	}, testLogger())
}

/*
TestSessionService_IssueAndResolve verifies the basic issue/resolve round trip,
for both authenticated and anonymous sessions.
*/
func TestSessionService_IssueAndResolve(t *testing.T) {
	repo := newMemorySessionRepository()
	service := newSessionService(repo, time.Hour, 2*time.Hour)
	ctx := context.Background()

	issued, err := service.Issue(ctx, "user-1")
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	assert.True(t, issued.Authenticated())

	resolved, err := service.Resolve(ctx, issued.Token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, "user-1", resolved.UserID)
	assert.Equal(t, issued.Token, resolved.Token)

	// Anonymous sessions exist before authentication.
	anonymous, err := service.Issue(ctx, "")
	require.NoError(t, err)
	assert.False(t, anonymous.Authenticated())

	resolved, err = service.Resolve(ctx, anonymous.Token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Empty(t, resolved.UserID)
}

/*
TestSessionService_ResolveUnknown verifies unknown and empty tokens resolve
to no session without error.
*/
func TestSessionService_ResolveUnknown(t *testing.T) {
	repo := newMemorySessionRepository()
	service := newSessionService(repo, time.Hour, 2*time.Hour)
	ctx := context.Background()

	resolved, err := service.Resolve(ctx, "never-issued")
	require.NoError(t, err)
	assert.Nil(t, resolved)

	resolved, err = service.Resolve(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

/*
TestSessionService_LogicalExpiryWins verifies an expired record still
physically present resolves to no session and is lazily reclaimed.
*/
func TestSessionService_LogicalExpiryWins(t *testing.T) {
	repo := newMemorySessionRepository()
	service := newSessionService(repo, time.Hour, 2*time.Hour)
	ctx := context.Background()

	// Seed a record whose expiry has passed but which was never purged.
	token, err := sec.NewSessionToken()
	require.NoError(t, err)

	now := time.Now().UTC()
	repo.records[sec.TokenDigest(testSecret, token)] = &auth.Session{
		Digest:     sec.TokenDigest(testSecret, token),
		UserID:     "user-1",
		CreatedAt:  now.Add(-3 * time.Hour),
		ExpiresAt:  now.Add(-time.Minute),
		LastSeenAt: now.Add(-time.Hour),
	}
	require.Equal(t, 1, repo.count())

	resolved, err := service.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	// Lazy garbage collection removed the stale record.
	assert.Equal(t, 0, repo.count())
}

/*
TestSessionService_SlidingRenewalCeiling verifies renewal bumps expiry
forward but never past CreatedAt + MaxLifetime.
*/
func TestSessionService_SlidingRenewalCeiling(t *testing.T) {
	repo := newMemorySessionRepository()
	service := newSessionService(repo, time.Hour, 45*time.Minute)

	// Lifetime > MaxLifetime is rejected at config load; build the state
	// directly to probe the ceiling arithmetic.
	token, err := sec.NewSessionToken()
	require.NoError(t, err)

	now := time.Now().UTC()
	digest := sec.TokenDigest(testSecret, token)
	created := now.Add(-30 * time.Minute)
	repo.records[digest] = &auth.Session{
		Digest:     digest,
		UserID:     "user-1",
		CreatedAt:  created,
		ExpiresAt:  now.Add(5 * time.Minute),
		LastSeenAt: created,
	}

	resolved, err := service.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, resolved)

	ceiling := created.Add(45 * time.Minute)
	assert.WithinDuration(t, ceiling, resolved.ExpiresAt, time.Second)
	assert.WithinDuration(t, now, resolved.LastSeenAt, time.Second)
}

/*
TestSessionService_ExpiryMonotonic verifies resolution never shrinks expiry
even when the ceiling is already reached.
*/
func TestSessionService_ExpiryMonotonic(t *testing.T) {
	repo := newMemorySessionRepository()
	service := newSessionService(repo, time.Hour, 2*time.Hour)

	token, err := sec.NewSessionToken()
	require.NoError(t, err)

	now := time.Now().UTC()
	digest := sec.TokenDigest(testSecret, token)
	created := now.Add(-119 * time.Minute)
	atCeiling := created.Add(2 * time.Hour)
	repo.records[digest] = &auth.Session{
		Digest:     digest,
		UserID:     "user-1",
		CreatedAt:  created,
		ExpiresAt:  atCeiling,
		LastSeenAt: created,
	}

	resolved, err := service.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, atCeiling, resolved.ExpiresAt)
}

/*
TestSessionService_RevokeIndependence verifies revoking one session leaves
other sessions of the same user resolving.
*/
func TestSessionService_RevokeIndependence(t *testing.T) {
	repo := newMemorySessionRepository()
	service := newSessionService(repo, time.Hour, 2*time.Hour)
	ctx := context.Background()

	first, err := service.Issue(ctx, "user-1")
	require.NoError(t, err)
	second, err := service.Issue(ctx, "user-1")
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	live, err := service.Revoke(ctx, first.Token)
	require.NoError(t, err)
	assert.True(t, live)

	resolved, err := service.Resolve(ctx, first.Token)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	resolved, err = service.Resolve(ctx, second.Token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, "user-1", resolved.UserID)
}

/*
TestSessionService_RevokeUnknown verifies revoking a never-issued token
reports no live record.
*/
func TestSessionService_RevokeUnknown(t *testing.T) {
	repo := newMemorySessionRepository()
	service := newSessionService(repo, time.Hour, 2*time.Hour)

	live, err := service.Revoke(context.Background(), "never-issued")
	require.NoError(t, err)
	assert.False(t, live)
}

/*
TestSessionService_CancelledIssuance verifies a session issued under an
already-cancelled context is not left half-valid in the store.
*/
func TestSessionService_CancelledIssuance(t *testing.T) {
	repo := newMemorySessionRepository()
	service := newSessionService(repo, time.Hour, 2*time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session, err := service.Issue(ctx, "user-1")
	assert.Nil(t, session)
	require.Error(t, err)
	assert.Equal(t, 0, repo.count(), "cancelled issuance must not leave a record")
}
