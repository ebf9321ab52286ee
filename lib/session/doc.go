// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package session manages the local login session: persisting the server's
// access token between runs, decoding the identity embedded in it, and
// tracking whether the process is currently anonymous or authenticated.
//
// The token is an opaque credential from the client's point of view. The
// payload decode in this package is presentation-only — it extracts a user
// ID and display name for greeting screens without verifying the signature.
// The server validates the token on every authenticated request; the client
// never holds the signing key.
package session
