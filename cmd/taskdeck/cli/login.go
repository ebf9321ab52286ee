// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"
)

// LoginCommand returns the "login" command: exchange credentials for a
// session token and persist it.
func LoginCommand() *Command {
	var options AppOptions
	var email string
	var passwordFile string

	return &Command{
		Name:    "login",
		Summary: "Sign in and store the session token",
		Description: "Sign in with email and password. The returned session token is\n" +
			"stored locally; subsequent commands and the UI use it until logout.",
		Examples: []Example{
			{Description: "interactive login", Command: "taskdeck login"},
			{Description: "scripted login", Command: "taskdeck login --email a@b.c --password-file ~/.taskdeck-pw"},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
			options.AddFlags(flags)
			flags.StringVar(&email, "email", "", "account email (prompted when omitted)")
			flags.StringVar(&passwordFile, "password-file", "", "read the password from this file instead of prompting")
			return flags
		},
		Run: func(args []string) error {
			app, err := BuildApp(options)
			if err != nil {
				return err
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

			token, err := app.Client.LoginUser(context.Background(), email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			active, err := app.Sessions.Login(token)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			fmt.Printf("Logged in as %s\n", active.DisplayName)
			return nil
		},
	}
}

// LogoutCommand returns the "logout" command: clear the stored session.
func LogoutCommand() *Command {
	var options AppOptions

	return &Command{
		Name:    "logout",
		Summary: "Clear the stored session token",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("logout", pflag.ContinueOnError)
			options.AddFlags(flags)
			return flags
		},
		Run: func(args []string) error {
			app, err := BuildApp(options)
			if err != nil {
				return err
			}
			// Logout always succeeds; a failed Clear is logged and the
			// in-memory session is dropped regardless.
			app.Sessions.Logout()
			fmt.Println("Logged out")
			return nil
		},
	}
}

// promptLine reads one line of input from stdin with a prompt.
func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readPassword returns the password from the given file, or prompts on
// the terminal without echo. A non-terminal stdin (scripts, pipes) is
// read as a single line.
func readPassword(passwordFile string) (string, error) {
	if passwordFile != "" {
		data, err := os.ReadFile(passwordFile)
		if err != nil {
			return "", fmt.Errorf("reading password file: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	return promptLine("")
}
