// Copyright (c) 2026 Lyrica. All rights reserved.

package auth

// # Field Identifiers

// Field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)
