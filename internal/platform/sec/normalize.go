// Copyright (c) 2026 Lyrica. All rights reserved.

package sec

import (
	"strings"

	"golang.org/x/text/secure/precis"
)

// NormalizeEmail canonicalizes an email address for storage and lookup.
//
// Addresses are trimmed and lowercased, then case-folded through the PRECIS
// UsernameCaseMapped profile so visually-identical Unicode addresses map to
// the same stored identity. Inputs the profile rejects keep the plain
// lowercase form.
func NormalizeEmail(email string) string {
	lowered := strings.ToLower(strings.TrimSpace(email))

	local, domain, found := strings.Cut(lowered, "@")
	if !found {
		return lowered
	}

	if mapped, err := precis.UsernameCaseMapped.String(local); err == nil {
		local = mapped
	}
	if mapped, err := precis.UsernameCaseMapped.String(domain); err == nil {
		domain = mapped
	}

	return local + "@" + domain
}
