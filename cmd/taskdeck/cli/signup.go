// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"
)

// SignupCommand returns the "signup" command: register a new account.
// Registration does not sign in; run login afterwards.
func SignupCommand() *Command {
	var options AppOptions
	var name string
	var email string
	var passwordFile string

	return &Command{
		Name:    "signup",
		Summary: "Register a new account",
		Examples: []Example{
			{Description: "interactive signup", Command: "taskdeck signup --name \"Ada Lovelace\""},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("signup", pflag.ContinueOnError)
			options.AddFlags(flags)
			flags.StringVar(&name, "name", "", "display name (prompted when omitted)")
			flags.StringVar(&email, "email", "", "account email (prompted when omitted)")
			flags.StringVar(&passwordFile, "password-file", "", "read the password from this file instead of prompting")
			return flags
		},
		Run: func(args []string) error {
			app, err := BuildApp(options)
			if err != nil {
				return err
			}

			if name == "" {
				name, err = promptLine("Name: ")
				if err != nil {
					return err
				}
			}
			if email == "" {
				email, err = promptLine("Email: ")
				if err != nil {
					return err
				}
			}
			password, err := readPassword(passwordFile)
			if err != nil {
				return err
			}

			message, err := app.Client.Signup(context.Background(), name, email, password)
			if err != nil {
				return fmt.Errorf("signup failed: %w", err)
			}

			if message == "" {
				message = "Account created"
			}
			fmt.Printf("%s. Run 'taskdeck login' to sign in.\n", message)
			return nil
		},
	}
}
