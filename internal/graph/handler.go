// Copyright (c) 2026 Lyrica. All rights reserved.

package graph

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
)

// NewHTTPHandler mounts the schema as an HTTP endpoint. The handler executes
// operations against the request's own context, so the viewer and cookie
// sink installed by the middleware chain reach every resolver.
//
// GraphiQL is a development convenience only and must stay off in production.
func NewHTTPHandler(schema *graphql.Schema, graphiQL bool) http.Handler {
	return handler.New(&handler.Config{
		Schema:   schema,
		Pretty:   graphiQL,
		GraphiQL: graphiQL,
	})
}
