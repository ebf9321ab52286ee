// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/taskdeck/taskdeck/lib/api"
	"github.com/taskdeck/taskdeck/lib/tasks"
)

// TaskCommand returns the "task" command group: the CRUD surface over
// the remote task collection.
func TaskCommand() *Command {
	return &Command{
		Name:    "task",
		Summary: "List, inspect, and modify tasks",
		Subcommands: []*Command{
			taskListCommand(),
			taskGetCommand(),
			taskCreateCommand(),
			taskUpdateCommand(),
			taskDeleteCommand(),
		},
	}
}

func taskListCommand() *Command {
	var options AppOptions
	var asJSON bool

	return &Command{
		Name:    "list",
		Summary: "List all tasks",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("list", pflag.ContinueOnError)
			options.AddFlags(flags)
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			app, err := BuildApp(options)
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}

			list, err := app.Client.ListTasks(context.Background())
			if err != nil {
				return err
			}

			if asJSON {
				return WriteJSON(list)
			}

			if len(list) == 0 {
				fmt.Println("No tasks.")
				return nil
			}

			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tPRIORITY\tSTATUS\tDUE")
			for _, task := range list {
				due := ""
				if task.DueDate != nil {
					due = task.DueDate.Format("2006-01-02")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					task.ID, task.Title, task.Priority, task.Status, due)
			}
			return tw.Flush()
		},
	}
}

func taskGetCommand() *Command {
	var options AppOptions
	var asJSON bool

	return &Command{
		Name:    "get",
		Summary: "Show one task",
		Usage:   "taskdeck task get <id> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("get", pflag.ContinueOnError)
			options.AddFlags(flags)
			flags.BoolVar(&asJSON, "json", false, "output as JSON")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one task id")
			}

			app, err := BuildApp(options)
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}

			task, err := app.Client.GetTask(context.Background(), args[0])
			if err != nil {
				// Not-found is a valid lookup outcome, not an error to
				// dress up: print it and exit 1.
				var serverError *api.Error
				if errors.As(err, &serverError) && serverError.StatusCode == http.StatusNotFound {
					fmt.Fprintf(os.Stderr, "task %s not found\n", args[0])
					return &ExitError{Code: 1}
				}
				return err
			}

			if asJSON {
				return WriteJSON(task)
			}
			printTask(task)
			return nil
		},
	}
}

// taskFlags holds the editable-field flags shared by create and update.
type taskFlags struct {
	title       string
	description string
	priority    string
	status      string
	estimate    float64
	due         string
}

func (f *taskFlags) add(flags *pflag.FlagSet) {
	flags.StringVar(&f.title, "title", "", "task title")
	flags.StringVar(&f.description, "description", "", "task description")
	flags.StringVar(&f.priority, "priority", string(tasks.PriorityMedium), "priority: Low, Medium, or High")
	flags.StringVar(&f.status, "status", string(tasks.StatusPending), "status: Pending, In Progress, or Completed")
	flags.Float64Var(&f.estimate, "estimate", 0, "estimated time in hours")
	flags.StringVar(&f.due, "due", "", "due date (YYYY-MM-DD)")
}

// draft assembles a Draft from the flags. set reports which flags the
// user actually passed, so update can overlay only changed fields.
func (f *taskFlags) draft(set *pflag.FlagSet, base tasks.Draft) (tasks.Draft, error) {
	draft := base

	if set.Changed("title") {
		draft.Title = f.title
	}
	if set.Changed("description") {
		draft.Description = f.description
	}
	if set.Changed("priority") {
		priority, err := parsePriority(f.priority)
		if err != nil {
			return tasks.Draft{}, err
		}
		draft.Priority = priority
	}
	if set.Changed("status") {
		status, err := parseStatus(f.status)
		if err != nil {
			return tasks.Draft{}, err
		}
		draft.Status = status
	}
	if set.Changed("estimate") {
		if f.estimate < 0 {
			return tasks.Draft{}, fmt.Errorf("estimate must be non-negative")
		}
		estimate := f.estimate
		draft.EstimatedTime = &estimate
	}
	if set.Changed("due") {
		if f.due == "" {
			draft.DueDate = nil
		} else {
			due, err := time.Parse("2006-01-02", f.due)
			if err != nil {
				return tasks.Draft{}, fmt.Errorf("due date must be YYYY-MM-DD: %w", err)
			}
			draft.DueDate = &due
		}
	}
	return draft, nil
}

func parsePriority(text string) (tasks.Priority, error) {
	for _, priority := range tasks.Priorities {
		if strings.EqualFold(text, string(priority)) {
			return priority, nil
		}
	}
	return "", fmt.Errorf("invalid priority %q (Low, Medium, or High)", text)
}

func parseStatus(text string) (tasks.Status, error) {
	for _, status := range tasks.Statuses {
		if strings.EqualFold(text, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid status %q (Pending, In Progress, or Completed)", text)
}

func taskCreateCommand() *Command {
	var options AppOptions
	var fields taskFlags
	var asJSON bool
	var flagSet *pflag.FlagSet

	return &Command{
		Name:    "create",
		Summary: "Create a task",
		Examples: []Example{
			{
				Description: "create a task due Friday",
				Command:     `taskdeck task create --title "Ship v2" --description "final pass" --estimate 3 --due 2026-09-04`,
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = pflag.NewFlagSet("create", pflag.ContinueOnError)
			options.AddFlags(flagSet)
			fields.add(flagSet)
			flagSet.BoolVar(&asJSON, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			app, err := BuildApp(options)
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}

			draft, err := fields.draft(flagSet, tasks.Draft{
				Priority: tasks.PriorityMedium,
				Status:   tasks.StatusPending,
			})
			if err != nil {
				return err
			}
			if err := draft.Validate(); err != nil {
				return err
			}

			created, err := app.Client.CreateTask(context.Background(), draft)
			if err != nil {
				return err
			}

			if asJSON {
				return WriteJSON(created)
			}
			fmt.Printf("Created %s: %s\n", created.ID, created.Title)
			return nil
		},
	}
}

func taskUpdateCommand() *Command {
	var options AppOptions
	var fields taskFlags
	var asJSON bool
	var flagSet *pflag.FlagSet

	return &Command{
		Name:    "update",
		Summary: "Update a task's fields",
		Usage:   "taskdeck task update <id> [flags]",
		Description: "Update a task. Only the fields whose flags are passed change;\n" +
			"everything else keeps its current value.",
		Flags: func() *pflag.FlagSet {
			flagSet = pflag.NewFlagSet("update", pflag.ContinueOnError)
			options.AddFlags(flagSet)
			fields.add(flagSet)
			flagSet.BoolVar(&asJSON, "json", false, "output as JSON")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one task id")
			}

			app, err := BuildApp(options)
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}

			// Fetch current state so unchanged fields survive the
			// full-replace update call.
			current, err := app.Client.GetTask(context.Background(), args[0])
			if err != nil {
				return err
			}

			draft, err := fields.draft(flagSet, tasks.Draft{
				Title:         current.Title,
				Description:   current.Description,
				Priority:      current.Priority,
				Status:        current.Status,
				DueDate:       current.DueDate,
				EstimatedTime: current.EstimatedTime,
			})
			if err != nil {
				return err
			}
			if err := draft.Validate(); err != nil {
				return err
			}

			updated, err := app.Client.UpdateTask(context.Background(), args[0], draft)
			if err != nil {
				return err
			}

			if asJSON {
				return WriteJSON(updated)
			}
			fmt.Printf("Updated %s: %s\n", updated.ID, updated.Title)
			return nil
		},
	}
}

func taskDeleteCommand() *Command {
	var options AppOptions
	var yes bool

	return &Command{
		Name:    "delete",
		Summary: "Delete a task",
		Usage:   "taskdeck task delete <id> [flags]",
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("delete", pflag.ContinueOnError)
			options.AddFlags(flags)
			flags.BoolVar(&yes, "yes", false, "skip the confirmation prompt")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one task id")
			}

			app, err := BuildApp(options)
			if err != nil {
				return err
			}
			if _, err := app.RequireSession(); err != nil {
				return err
			}

			if !yes {
				answer, err := promptLine(fmt.Sprintf("Delete task %s? This cannot be undone. [y/N] ", args[0]))
				if err != nil {
					return err
				}
				if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
					fmt.Println("Aborted.")
					return nil
				}
			}

			if err := app.Client.DeleteTask(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func printTask(task tasks.Task) {
	fmt.Printf("%s\n", task.Title)
	if task.Description != "" {
		fmt.Printf("\n%s\n\n", task.Description)
	}
	fmt.Printf("id:        %s\n", task.ID)
	fmt.Printf("priority:  %s\n", task.Priority)
	fmt.Printf("status:    %s\n", task.Status)
	if task.EstimatedTime != nil {
		fmt.Printf("estimate:  %gh\n", *task.EstimatedTime)
	}
	if task.DueDate != nil {
		fmt.Printf("due:       %s\n", task.DueDate.Format("2006-01-02"))
	}
	if !task.CreatedAt.IsZero() {
		fmt.Printf("created:   %s\n", task.CreatedAt.Format(time.RFC3339))
	}
}
