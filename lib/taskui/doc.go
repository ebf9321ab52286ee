// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package taskui is the full-screen terminal UI: login and signup forms,
// the home screen, and the task list/form/details screens, arranged
// behind a navigation gate driven by the session controller's state.
//
// The bubbletea loop gives the single-threaded event semantics the
// screens rely on: Update runs to completion, and all storage and
// network work happens in commands whose results come back as messages.
// In-flight requests are not cancelled when the user navigates away; a
// late result finds the current state and applies only what still makes
// sense.
package taskui
