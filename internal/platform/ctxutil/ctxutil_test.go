// Copyright (c) 2026 Lyrica. All rights reserved.

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyricahq/lyrica/internal/platform/ctxutil"
	"github.com/lyricahq/lyrica/internal/users/auth"
)

/*
TestRequestID_RoundTrip verifies storage and retrieval of request IDs.
*/
func TestRequestID_RoundTrip(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", ctxutil.GetRequestID(ctx))
}

/*
TestLogger_FallsBackToDefault verifies the default logger is returned when
no per-request logger was injected.
*/
func TestLogger_FallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	custom := slog.Default().With(slog.String("request_id", "abc"))
	ctx = ctxutil.WithLogger(ctx, custom)
	assert.Equal(t, custom, ctxutil.GetLogger(ctx))
}

/*
TestViewer_RoundTrip verifies viewer storage and the anonymous default.
*/
func TestViewer_RoundTrip(t *testing.T) {
	ctx := context.Background()

	// No binder ran: nil viewer, not authenticated.
	assert.Nil(t, ctxutil.GetViewer(ctx))
	assert.False(t, ctxutil.GetViewer(ctx).Authenticated())

	viewer := &auth.Viewer{
		User:  &auth.User{ID: "u1", Email: "ana@example.com"},
		Token: "tok",
	}
	ctx = ctxutil.WithViewer(ctx, viewer)

	got := ctxutil.GetViewer(ctx)
	require.NotNil(t, got)
	assert.True(t, got.Authenticated())
	assert.Equal(t, "ana@example.com", got.User.Email)
}

type recordingCookieWriter struct {
	setToken string
	cleared  bool
}

func (r *recordingCookieWriter) SetSessionCookie(token string, _ time.Time) { r.setToken = token }
func (r *recordingCookieWriter) ClearSessionCookie()                        { r.cleared = true }

/*
TestCookieWriter_RoundTrip verifies the cookie sink is reachable from context.
*/
func TestCookieWriter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetCookieWriter(ctx))

	sink := &recordingCookieWriter{}
	ctx = ctxutil.WithCookieWriter(ctx, sink)

	writer := ctxutil.GetCookieWriter(ctx)
	require.NotNil(t, writer)

	writer.SetSessionCookie("tok", time.Now())
	writer.ClearSessionCookie()
	assert.Equal(t, "tok", sink.setToken)
	assert.True(t, sink.cleared)
}
