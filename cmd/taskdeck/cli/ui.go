// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/taskdeck/taskdeck/lib/taskui"
)

// UICommand returns the "ui" command: the full-screen terminal
// interface. It starts on the home screen when a stored session is
// restored, on the login screen otherwise.
func UICommand() *Command {
	var options AppOptions

	return &Command{
		Name:    "ui",
		Summary: "Open the interactive terminal UI",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("ui", pflag.ContinueOnError)
			options.AddFlags(flags)
			return flags
		},
		Run: func(args []string) error {
			app, err := BuildApp(options)
			if err != nil {
				return err
			}

			model := taskui.New(taskui.Deps{
				Sessions: app.Sessions,
				Sync:     app.Sync,
				Client:   app.Client,
				Timeout:  app.Config.RequestTimeout(),
			})

			program := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("running UI: %w", err)
			}
			return nil
		},
	}
}
