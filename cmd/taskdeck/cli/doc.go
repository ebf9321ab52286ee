// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command framework and the commands of the
// taskdeck binary: the Command tree with help synthesis and typo
// suggestions, shared application wiring, and the individual auth and
// task commands.
package cli
