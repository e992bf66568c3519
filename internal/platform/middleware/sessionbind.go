// Copyright (c) 2026 Lyrica. All rights reserved.

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/lyricahq/lyrica/internal/platform/apperr"
	"github.com/lyricahq/lyrica/internal/platform/ctxutil"
	"github.com/lyricahq/lyrica/internal/users/auth"
)

// # Session Context Binding

// SessionBinder resolves the session cookie into a request identity.
//
// The binder is strictly read-only with respect to session state: it never
// creates sessions, never mutates them beyond the sliding renewal performed
// by the session service, and never writes cookies on its own. Stale or
// unknown cookies simply yield an anonymous viewer.
type SessionBinder struct {
	sessions *auth.SessionService
	users    auth.UserRepository
	logger   *slog.Logger

	cookieName string
	secure     bool
}

// NewSessionBinder wires the binder to the session service and user lookup.
// secure controls the production cookie profile (Secure + SameSite=None);
// when false the cookie is issued with SameSite=Lax for local development.
func NewSessionBinder(
	sessions *auth.SessionService,
	users auth.UserRepository,
	logger *slog.Logger,
	cookieName string,
	secure bool,
) *SessionBinder {
	return &SessionBinder{
		sessions:   sessions,
		users:      users,
		logger:     logger,
		cookieName: cookieName,
		secure:     secure,
	}
}

// Handler binds the resolved viewer and a cookie sink into the request
// context. Every request downstream of this middleware can rely on
// ctxutil.GetViewer returning a non-nil viewer.
func (binder *SessionBinder) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			ctx := request.Context()

			// 1. Install the cookie sink so login/logout resolvers can set or
			// clear the cookie before the response body is written.
			sink := &cookieSink{
				writer:     writer,
				cookieName: binder.cookieName,
				secure:     binder.secure,
			}
			ctx = ctxutil.WithCookieWriter(ctx, sink)

			// 2. Resolve the presented token, if any, into a viewer.
			viewer := binder.resolve(request)
			ctx = ctxutil.WithViewer(ctx, viewer)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// resolve turns the cookie on the request into a viewer. All failure modes
// collapse to the anonymous viewer; only store outages are logged.
func (binder *SessionBinder) resolve(request *http.Request) *auth.Viewer {

	ctx := request.Context()

	cookie, err := request.Cookie(binder.cookieName)
	if err != nil || cookie.Value == "" {
		return &auth.Viewer{}
	}

	session, err := binder.sessions.Resolve(ctx, cookie.Value)
	if err != nil {
		// A store outage must not break unauthenticated traffic. Degrade to
		// anonymous and let authenticated operations surface the real error.
		binder.logger.WarnContext(ctx, "session_resolve_degraded",
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("error", err),
		)
		return &auth.Viewer{}
	}

	if session == nil {
		// Unknown or expired token. The client still holds a cookie, but
		// there is nothing to bind; the next login replaces it.
		return &auth.Viewer{}
	}

	if !session.Authenticated() {
		// A live anonymous session keeps its token visible so logout and
		// login can address it, but there is no user to load.
		return &auth.Viewer{Token: session.Token}
	}

	user, err := binder.users.FindByID(ctx, session.UserID)
	if err != nil {
		if !apperr.IsCode(err, apperr.CodeNotFound) {
			binder.logger.WarnContext(ctx, "viewer_load_degraded",
				slog.String("request_id", ctxutil.GetRequestID(ctx)),
				slog.String("user_id", session.UserID),
				slog.Any("error", err),
			)
		}
		// A session pointing at a deleted account is treated as anonymous.
		return &auth.Viewer{Token: session.Token}
	}

	return &auth.Viewer{User: user, Token: session.Token}
}

// # Cookie Delivery

// cookieSink writes the session cookie onto a specific in-flight response.
// It implements [ctxutil.SessionCookieWriter].
type cookieSink struct {
	writer     http.ResponseWriter
	cookieName string
	secure     bool
}

func (sink *cookieSink) SetSessionCookie(token string, expiresAt time.Time) {
	http.SetCookie(sink.writer, sink.build(token, expiresAt))
}

func (sink *cookieSink) ClearSessionCookie() {
	cleared := sink.build("", time.Time{})
	cleared.MaxAge = -1
	http.SetCookie(sink.writer, cleared)
}

func (sink *cookieSink) build(token string, expiresAt time.Time) *http.Cookie {
	cookie := &http.Cookie{
		Name:     sink.cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	}

	if !expiresAt.IsZero() {
		cookie.Expires = expiresAt
		cookie.MaxAge = int(time.Until(expiresAt).Seconds())
	}

	// Cross-site cookie delivery requires Secure; without TLS the browser
	// would reject SameSite=None entirely, so development falls back to Lax.
	if sink.secure {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	return cookie
}
