// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package tasks holds the task model and the Synchronizer, which owns the
// in-memory task collection for the active session. The server is the
// source of truth: a refresh replaces the collection wholesale, and
// create/update/delete apply the server's confirmed result locally so the
// UI reflects mutations without waiting for the next full fetch.
package tasks
