// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrTokenDecode wraps any failure to extract an identity from a token.
// Callers treat it as "no usable session", never as a fatal error.
var ErrTokenDecode = errors.New("session: cannot decode token")

// Identity is the user information embedded in a session token.
type Identity struct {
	// UserID is the server-assigned identifier for the account.
	UserID string

	// DisplayName is the name shown in greetings. Never empty on a
	// successful decode: falls back to the account's username, then to
	// the literal "User".
	DisplayName string
}

// tokenClaims is the JWT payload shape the server mints. Only the fields
// the client presents are decoded; everything else is ignored.
type tokenClaims struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Decode extracts the identity from a JWT-shaped token without verifying
// its signature. The client has no signing key; the server re-validates
// the token on every authenticated request, so this decode is
// presentation-only.
func Decode(token string) (Identity, error) {
	segments := strings.Split(token, ".")
	if len(segments) < 2 {
		return Identity{}, fmt.Errorf("%w: expected header.payload.signature, got %d segment(s)",
			ErrTokenDecode, len(segments))
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(segments[1], "="))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: payload is not base64url: %v", ErrTokenDecode, err)
	}

	var claims tokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Identity{}, fmt.Errorf("%w: payload is not JSON: %v", ErrTokenDecode, err)
	}

	displayName := claims.Name
	if displayName == "" {
		displayName = claims.Username
	}
	if displayName == "" {
		displayName = "User"
	}

	return Identity{
		UserID:      claims.UserID,
		DisplayName: displayName,
	}, nil
}
