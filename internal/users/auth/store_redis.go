// Copyright (c) 2026 Lyrica. All rights reserved.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lyricahq/lyrica/internal/platform/apperr"
	"github.com/lyricahq/lyrica/internal/platform/constants"
)

// # Session Repository (Redis)

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// Records are JSON values under "auth:session:<digest>" with a TTL matching
// the session expiry, so the store reclaims expired records physically on
// its own. Logical expiry is still re-checked by the session service: the
// TTL is a storage-efficiency mechanism, never a correctness one.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed [SessionRepository].
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// sessionRecord is the stored shape of a session. The raw token is never
// part of the record; only its digest (the key) identifies it.
type sessionRecord struct {
	UserID     string    `json:"user_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

func sessionKey(digest string) string {
	return constants.RedisPrefixSession + digest
}

// Create persists a new session record with a TTL matching its expiry.
func (repository *RedisSessionRepository) Create(ctx context.Context, session *Session) error {
	return repository.write(ctx, session, "redis_session_repo_create_failed")
}

// Update rewrites a session record, refreshing its TTL (sliding renewal).
func (repository *RedisSessionRepository) Update(ctx context.Context, session *Session) error {
	return repository.write(ctx, session, "redis_session_repo_update_failed")
}

func (repository *RedisSessionRepository) write(ctx context.Context, session *Session, failCode string) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		// Already past expiry: writing would create a record resolve()
		// immediately discards. Drop any stale record instead.
		_, err := repository.Delete(ctx, session.Digest)
		return err
	}

	payload, err := json.Marshal(sessionRecord{
		UserID:     session.UserID,
		CreatedAt:  session.CreatedAt,
		ExpiresAt:  session.ExpiresAt,
		LastSeenAt: session.LastSeenAt,
	})
	if err != nil {
		return apperr.Internal(fmt.Errorf("%s: %w", failCode, err))
	}

	if err := repository.client.Set(ctx, sessionKey(session.Digest), payload, ttl).Err(); err != nil {
		return apperr.StoreUnavailable(fmt.Errorf("%s: %w", failCode, err))
	}

	return nil
}

// FindByDigest returns the stored session for a token digest.
func (repository *RedisSessionRepository) FindByDigest(ctx context.Context, digest string) (*Session, error) {
	value, err := repository.client.Get(ctx, sessionKey(digest)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, apperr.StoreUnavailable(fmt.Errorf("redis_session_repo_find_failed: %w", err))
	}

	var record sessionRecord
	if err := json.Unmarshal([]byte(value), &record); err != nil {
		// A record we wrote but cannot read back is store corruption.
		return nil, apperr.Integrity(fmt.Errorf("redis_session_repo_unmarshal_failed: %w", err))
	}

	return &Session{
		Digest:     digest,
		UserID:     record.UserID,
		CreatedAt:  record.CreatedAt,
		ExpiresAt:  record.ExpiresAt,
		LastSeenAt: record.LastSeenAt,
	}, nil
}

// Delete removes the record for a token digest and reports whether a record
// existed.
func (repository *RedisSessionRepository) Delete(ctx context.Context, digest string) (bool, error) {
	removed, err := repository.client.Del(ctx, sessionKey(digest)).Result()
	if err != nil {
		return false, apperr.StoreUnavailable(fmt.Errorf("redis_session_repo_delete_failed: %w", err))
	}
	return removed > 0, nil
}
