// Copyright (c) 2026 Lyrica. All rights reserved.

package sec

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// sessionTokenBytes is the entropy of a session token. 32 bytes = 256 bits,
// well above the 128-bit unguessability floor.
const sessionTokenBytes = 32

// NewSessionToken generates an opaque, unguessable session token from a
// cryptographically secure source. The value is independent of any
// user-supplied input.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// TokenDigest computes the HMAC-SHA256 of a session token under the
// configured session secret, hex encoded.
//
// The session store is keyed by digest rather than by the raw token: a
// leaked store dump cannot be turned into valid cookies without the secret.
func TokenDigest(secret, token string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
