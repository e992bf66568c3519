// Copyright (c) 2026 Lyrica. All rights reserved.

/*
Package graph exposes the application over a GraphQL schema.

The schema mirrors the client's vocabulary (songs, lyrics, the current user)
and delegates every operation to the domain services. Resolvers contain no
business rules: they translate GraphQL arguments into service calls and
application errors into {message, extensions.code} payloads.

Identity is read exclusively from the request context populated by the
session binder; resolvers never inspect cookies or headers themselves. The
login and logout mutations reach the response through the cookie writer the
binder installs, which is the only place the token crosses back to the
client.
*/
package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/lyricahq/lyrica/internal/core/song"
	"github.com/lyricahq/lyrica/internal/platform/apperr"
	"github.com/lyricahq/lyrica/internal/platform/ctxutil"
	"github.com/lyricahq/lyrica/internal/users/auth"
)

// # Root Resolver

// Resolver carries the domain services the schema resolves against.
type Resolver struct {
	auth  *auth.Service
	songs *song.Service
}

// NewResolver wires the schema to its domain services.
func NewResolver(authService *auth.Service, songService *song.Service) *Resolver {
	return &Resolver{
		auth:  authService,
		songs: songService,
	}
}

// # Schema Construction

// NewSchema builds the executable schema around the resolver.
func NewSchema(resolver *Resolver) (graphql.Schema, error) {

	// 1. Object types. The lyric <-> song cycle is resolved by attaching the
	// back-reference after both types exist.

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "UserType",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*auth.User).ID, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*auth.User).Email, nil
				},
			},
		},
	})

	lyricType := graphql.NewObject(graphql.ObjectConfig{
		Name: "LyricType",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sourceLyric(p).ID, nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sourceLyric(p).Content, nil
				},
			},
			"likes": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return sourceLyric(p).Likes, nil
				},
			},
		},
	})

	songType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SongType",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*song.Song).ID, nil
				},
			},
			"title": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*song.Song).Title, nil
				},
			},
			"lyrics": &graphql.Field{
				Type: graphql.NewList(lyricType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					parent := p.Source.(*song.Song)
					if parent.Lyrics != nil {
						return parent.Lyrics, nil
					}
					lyrics, err := resolver.songs.Lyrics(p.Context, parent.ID)
					if err != nil {
						return nil, shapeError(p.Context, err)
					}
					return lyrics, nil
				},
			},
		},
	})

	lyricType.AddFieldConfig("song", &graphql.Field{
		Type: songType,
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			parent := sourceLyric(p)
			owner, err := resolver.songs.GetSong(p.Context, parent.SongID)
			if err != nil {
				return nil, shapeError(p.Context, err)
			}
			return owner, nil
		},
	})

	// 2. Root query.

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQueryType",
		Fields: graphql.Fields{
			"songs": &graphql.Field{
				Type: graphql.NewList(songType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					songs, err := resolver.songs.ListSongs(p.Context)
					if err != nil {
						return nil, shapeError(p.Context, err)
					}
					return songs, nil
				},
			},
			"song": &graphql.Field{
				Type: songType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					found, err := resolver.songs.GetSong(p.Context, stringArg(p, "id"))
					if err != nil {
						return nil, shapeError(p.Context, err)
					}
					return found, nil
				},
			},
			"lyric": &graphql.Field{
				Type: lyricType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					found, err := resolver.songs.GetLyric(p.Context, stringArg(p, "id"))
					if err != nil {
						return nil, shapeError(p.Context, err)
					}
					return found, nil
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					// Identity comes only from the bound context. An
					// anonymous request resolves to null, never an error.
					viewer := ctxutil.GetViewer(p.Context)
					if !viewer.Authenticated() {
						return nil, nil
					}
					return viewer.User, nil
				},
			},
		},
	})

	// 3. Root mutation.

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signup": &graphql.Field{
				Type: userType,
				Args: credentialArgs(),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					created, err := resolver.auth.Signup(p.Context, stringArg(p, "email"), stringArg(p, "password"))
					if err != nil {
						return nil, shapeError(p.Context, err)
					}
					return created, nil
				},
			},
			"login": &graphql.Field{
				Type:    userType,
				Args:    credentialArgs(),
				Resolve: resolver.login,
			},
			"logout": &graphql.Field{
				Type:    userType,
				Resolve: resolver.logout,
			},
			"addSong": &graphql.Field{
				Type: songType,
				Args: graphql.FieldConfigArgument{
					"title": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					created, err := resolver.songs.AddSong(p.Context, stringArg(p, "title"))
					if err != nil {
						return nil, shapeError(p.Context, err)
					}
					return created, nil
				},
			},
			"addLyricToSong": &graphql.Field{
				Type: songType,
				Args: graphql.FieldConfigArgument{
					"content": &graphql.ArgumentConfig{Type: graphql.String},
					"songId":  &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					updated, err := resolver.songs.AddLyricToSong(p.Context, stringArg(p, "songId"), stringArg(p, "content"))
					if err != nil {
						return nil, shapeError(p.Context, err)
					}
					return updated, nil
				},
			},
			"likeLyric": &graphql.Field{
				Type: lyricType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					liked, err := resolver.songs.LikeLyric(p.Context, stringArg(p, "id"))
					if err != nil {
						return nil, shapeError(p.Context, err)
					}
					return liked, nil
				},
			},
			"deleteSong": &graphql.Field{
				Type: songType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					removed, err := resolver.songs.DeleteSong(p.Context, stringArg(p, "id"))
					if err != nil {
						return nil, shapeError(p.Context, err)
					}
					return removed, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// # Authentication Mutations

// login verifies credentials, issues a session, and delivers the token via
// the cookie sink before the response body is written.
func (resolver *Resolver) login(p graphql.ResolveParams) (interface{}, error) {
	user, session, err := resolver.auth.Login(p.Context, stringArg(p, "email"), stringArg(p, "password"))
	if err != nil {
		return nil, shapeError(p.Context, err)
	}

	if sink := ctxutil.GetCookieWriter(p.Context); sink != nil {
		sink.SetSessionCookie(session.Token, session.ExpiresAt)
	}

	return user, nil
}

// logout revokes the presented session and returns the user it belonged to,
// or null if the session was anonymous. The cookie is cleared even when the
// server-side record was already gone, so the client never keeps a dead
// token.
func (resolver *Resolver) logout(p graphql.ResolveParams) (interface{}, error) {
	viewer := ctxutil.GetViewer(p.Context)
	sink := ctxutil.GetCookieWriter(p.Context)

	token := ""
	if viewer != nil {
		token = viewer.Token
	}

	err := resolver.auth.Logout(p.Context, token)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeNotAuthenticated) {
			// Reported, not fatal. The stale cookie is still cleared.
			if sink != nil {
				sink.ClearSessionCookie()
			}
		}
		return nil, shapeError(p.Context, err)
	}

	if sink != nil {
		sink.ClearSessionCookie()
	}

	if viewer == nil || viewer.User == nil {
		return nil, nil
	}
	return viewer.User, nil
}

// # Schema Helpers

func credentialArgs() graphql.FieldConfigArgument {
	return graphql.FieldConfigArgument{
		"email":    &graphql.ArgumentConfig{Type: graphql.String},
		"password": &graphql.ArgumentConfig{Type: graphql.String},
	}
}

// stringArg reads a string argument, tolerating absence.
func stringArg(p graphql.ResolveParams, name string) string {
	value, _ := p.Args[name].(string)
	return value
}

// sourceLyric tolerates both value and pointer sources: lists carry values,
// single-lyric lookups carry pointers.
func sourceLyric(p graphql.ResolveParams) *song.Lyric {
	switch parent := p.Source.(type) {
	case *song.Lyric:
		return parent
	case song.Lyric:
		return &parent
	default:
		return &song.Lyric{}
	}
}
