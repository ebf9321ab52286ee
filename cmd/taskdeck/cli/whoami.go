// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// WhoamiCommand returns the "whoami" command: show the identity decoded
// from the stored session token. Works entirely offline — the token is
// read and decoded locally, never validated against the server.
func WhoamiCommand() *Command {
	var options AppOptions
	var asJSON bool

	return &Command{
		Name:    "whoami",
		Summary: "Show the active session's identity",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("whoami", pflag.ContinueOnError)
			options.AddFlags(flags)
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			app, err := BuildApp(options)
			if err != nil {
				return err
			}

			active, err := app.RequireSession()
			if err != nil {
				return err
			}

			if asJSON {
				return WriteJSON(map[string]string{
					"userId":      active.UserID,
					"displayName": active.DisplayName,
				})
			}
			fmt.Printf("%s (%s)\n", active.DisplayName, active.UserID)
			return nil
		},
	}
}
