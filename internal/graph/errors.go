// Copyright (c) 2026 Lyrica. All rights reserved.

package graph

import (
	"context"
	"log/slog"

	"github.com/lyricahq/lyrica/internal/platform/apperr"
	"github.com/lyricahq/lyrica/internal/platform/ctxutil"
)

// # Error Shaping

// resolverError adapts an [apperr.AppError] to the error shape graphql-go
// serializes: the safe message plus a machine-readable extensions block.
// It implements gqlerrors.ExtendedError.
type resolverError struct {
	app *apperr.AppError
}

func (e *resolverError) Error() string { return e.app.Message }

func (e *resolverError) Extensions() map[string]interface{} {
	extensions := map[string]interface{}{
		"code": e.app.Code,
	}
	if len(e.app.Details) > 0 {
		extensions["details"] = e.app.Details
	}
	return extensions
}

// shapeError converts any resolver failure into a client-safe GraphQL error.
//
// Known application errors pass through with their code; anything else is
// logged server-side and collapsed to INTERNAL_ERROR so internals never leak
// into the response body.
func shapeError(ctx context.Context, err error) error {
	if appErr := apperr.As(err); appErr != nil {
		if appErr.Cause != nil {
			ctxutil.GetLogger(ctx).ErrorContext(ctx, "resolver_error",
				slog.String("code", appErr.Code),
				slog.Any("cause", appErr.Cause),
			)
		}
		return &resolverError{app: appErr}
	}

	ctxutil.GetLogger(ctx).ErrorContext(ctx, "resolver_error_unclassified",
		slog.Any("error", err),
	)
	return &resolverError{app: apperr.Internal(err)}
}
