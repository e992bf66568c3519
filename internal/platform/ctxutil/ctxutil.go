// Copyright (c) 2026 Lyrica. All rights reserved.

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"
	"time"

	"github.com/lyricahq/lyrica/internal/platform/ctxkey"
	"github.com/lyricahq/lyrica/internal/users/auth"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithViewer returns a new context with the resolved request identity attached.
//
// The viewer is immutable once constructed: downstream code only ever reads it.
func WithViewer(ctx context.Context, viewer *auth.Viewer) context.Context {
	return context.WithValue(ctx, ctxkey.KeyViewer, viewer)
}

// GetViewer retrieves the [*auth.Viewer] from the [context.Context].
// It returns nil if the context binder has not run (e.g. in bare tests).
func GetViewer(ctx context.Context) *auth.Viewer {
	viewer, ok := ctx.Value(ctxkey.KeyViewer).(*auth.Viewer)
	if !ok {
		return nil
	}
	return viewer
}

// # Session Cookie Delivery

// SessionCookieWriter sets or clears the session cookie on the in-flight
// response. The context binder installs an implementation bound to the
// response writer; the login/logout resolvers are its only consumers.
type SessionCookieWriter interface {
	SetSessionCookie(token string, expiresAt time.Time)
	ClearSessionCookie()
}

// WithCookieWriter returns a new context with the cookie sink attached.
func WithCookieWriter(ctx context.Context, writer SessionCookieWriter) context.Context {
	return context.WithValue(ctx, ctxkey.KeyCookieWriter, writer)
}

// GetCookieWriter retrieves the session cookie sink, or nil outside an HTTP
// request.
func GetCookieWriter(ctx context.Context) SessionCookieWriter {
	writer, ok := ctx.Value(ctxkey.KeyCookieWriter).(SessionCookieWriter)
	if !ok {
		return nil
	}
	return writer
}
