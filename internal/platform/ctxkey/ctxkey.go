// Copyright (c) 2026 Lyrica. All rights reserved.

// Package ctxkey defines typed context keys used by middleware and resolvers.
//
// # Safety
//
// It is used to store and retrieve per-request values (viewer identity,
// request ID, logger, cookie sink). Using a private, unexported type for keys
// prevents collisions with third-party packages that might also use context
// for storage.
package ctxkey

// key is an unexported type used for context keys to ensure type safety.
//
// # Collision Prevention
//
// Even if another package uses "request_id" as a string key, it will not
// collide with this key type because Go's [context.Context] uses both the
// value AND the type for lookups.
type key string

const (
	// KeyRequestID is the context key for the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyViewer is the context key for the resolved request identity ([auth.Viewer]).
	KeyViewer key = "viewer"

	// KeyLogger is the context key for the per-request [*log/slog.Logger].
	KeyLogger key = "logger"

	// KeyCookieWriter is the context key for the session cookie sink exposed
	// to the login/logout resolvers.
	KeyCookieWriter key = "cookie_writer"
)
