// Copyright (c) 2026 Lyrica. All rights reserved.

package auth_test

import (
	"context"
	"sync"

	"github.com/lyricahq/lyrica/internal/platform/apperr"
	"github.com/lyricahq/lyrica/internal/users/auth"
)

// In-memory repository fakes honoring the store contracts (unique email,
// digest-keyed sessions, NotFound mapping). Unit tests run against these so
// the services are exercised without Postgres or Redis.

type memoryUserRepository struct {
	mu      sync.Mutex
	byEmail map[string]*auth.User
	byID    map[string]*auth.User
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{
		byEmail: make(map[string]*auth.User),
		byID:    make(map[string]*auth.User),
	}
}

func (r *memoryUserRepository) Create(_ context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Mirrors the unique index: duplicate insert loses atomically.
	if _, exists := r.byEmail[user.Email]; exists {
		return apperr.DuplicateEmail()
	}

	stored := *user
	r.byEmail[stored.Email] = &stored
	r.byID[stored.ID] = &stored
	return nil
}

func (r *memoryUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	found := *user
	return &found, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	found := *user
	return &found, nil
}

type memorySessionRepository struct {
	mu      sync.Mutex
	records map[string]*auth.Session
}

func newMemorySessionRepository() *memorySessionRepository {
	return &memorySessionRepository{records: make(map[string]*auth.Session)}
}

func (r *memorySessionRepository) Create(_ context.Context, session *auth.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *session
	stored.Token = "" // raw tokens are never persisted
	r.records[stored.Digest] = &stored
	return nil
}

func (r *memorySessionRepository) Update(_ context.Context, session *auth.Session) error {
	return r.Create(nil, session)
}

func (r *memorySessionRepository) FindByDigest(_ context.Context, digest string) (*auth.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.records[digest]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	found := *session
	return &found, nil
}

func (r *memorySessionRepository) Delete(_ context.Context, digest string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.records[digest]
	delete(r.records, digest)
	return existed, nil
}

// count reports how many records are physically present.
func (r *memorySessionRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
