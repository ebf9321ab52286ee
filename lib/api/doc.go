// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the HTTP client for the task-management service. It
// attaches the bearer token to outgoing requests when a session is
// active, serializes bodies as JSON, and normalizes failures into three
// outcomes the caller branches on: a transport error (nothing reached
// the server), an [*Error] carrying the response status and the server's
// message, or a decoded success payload.
//
// There are no retries and no timeout beyond what the supplied context
// and http.Client impose: one attempt per call, errors surfaced directly
// to the caller's failure path.
package api
