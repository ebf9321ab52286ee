// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands assembles the taskdeck command tree.
package commands

import (
	"github.com/taskdeck/taskdeck/cmd/taskdeck/cli"
)

// Root returns the top-level taskdeck command.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "taskdeck",
		Summary: "Terminal client for the task-management service",
		Description: "taskdeck is a terminal client for the task-management service:\n" +
			"sign in once, then manage your tasks from the command line or the\n" +
			"interactive UI.",
		Examples: []cli.Example{
			{Description: "sign in", Command: "taskdeck login"},
			{Description: "open the interactive UI", Command: "taskdeck ui"},
			{Description: "list tasks as JSON", Command: "taskdeck task list --json"},
		},
		Subcommands: []*cli.Command{
			cli.LoginCommand(),
			cli.LogoutCommand(),
			cli.SignupCommand(),
			cli.WhoamiCommand(),
			cli.TaskCommand(),
			cli.UICommand(),
		},
	}
}
