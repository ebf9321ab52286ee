// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestExecuteDispatchesSubcommand(t *testing.T) {
	var ran []string
	root := &Command{
		Name: "taskdeck",
		Subcommands: []*Command{
			{Name: "login", Run: func(args []string) error { ran = append(ran, "login"); return nil }},
			{Name: "task", Subcommands: []*Command{
				{Name: "list", Run: func(args []string) error { ran = append(ran, "task list"); return nil }},
			}},
		},
	}

	if err := root.Execute([]string{"login"}); err != nil {
		t.Fatalf("Execute(login): %v", err)
	}
	if err := root.Execute([]string{"task", "list"}); err != nil {
		t.Fatalf("Execute(task list): %v", err)
	}
	if len(ran) != 2 || ran[0] != "login" || ran[1] != "task list" {
		t.Errorf("ran = %v", ran)
	}
}

func TestExecuteUnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name: "taskdeck",
		Subcommands: []*Command{
			{Name: "login", Run: func(args []string) error { return nil }},
		},
	}

	err := root.Execute([]string{"lgoin"})
	if err == nil {
		t.Fatal("unknown command accepted")
	}
	if !strings.Contains(err.Error(), `did you mean "login"`) {
		t.Errorf("error = %q, want a login suggestion", err)
	}
}

func TestExecutePassesFlagsAndArgs(t *testing.T) {
	var gotVerbose bool
	var gotArgs []string

	command := &Command{
		Name: "show",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flags.BoolVar(&gotVerbose, "verbose", false, "")
			return flags
		},
		Run: func(args []string) error {
			gotArgs = args
			return nil
		},
	}

	if err := command.Execute([]string{"--verbose", "t-1"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !gotVerbose {
		t.Error("--verbose not parsed")
	}
	if len(gotArgs) != 1 || gotArgs[0] != "t-1" {
		t.Errorf("args = %v, want [t-1]", gotArgs)
	}
}

func TestExecuteUnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "login",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("login", pflag.ContinueOnError)
			flags.String("email", "", "")
			return flags
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--emial", "a@b.c"})
	if err == nil {
		t.Fatal("unknown flag accepted")
	}
	if !strings.Contains(err.Error(), "--email") {
		t.Errorf("error = %q, want an --email suggestion", err)
	}
}

func TestExecuteSubcommandRequired(t *testing.T) {
	root := &Command{
		Name:        "taskdeck",
		Subcommands: []*Command{{Name: "login", Run: func(args []string) error { return nil }}},
	}

	if err := root.Execute(nil); err == nil {
		t.Error("bare group command did not report subcommand required")
	}
}

func TestPrintHelpListsSubcommands(t *testing.T) {
	root := &Command{
		Name:    "taskdeck",
		Summary: "Terminal client",
		Subcommands: []*Command{
			{Name: "login", Summary: "Sign in"},
			{Name: "task", Summary: "Manage tasks"},
		},
	}

	var out strings.Builder
	root.PrintHelp(&out)
	help := out.String()

	for _, want := range []string{"login", "Sign in", "task", "Manage tasks", "taskdeck <command>"} {
		if !strings.Contains(help, want) {
			t.Errorf("help output missing %q:\n%s", want, help)
		}
	}
}
