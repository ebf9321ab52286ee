// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/lib/tasks"
)

// Form field indices. The first four are text inputs; priority and
// status are cycling selectors.
const (
	fieldTitle = iota
	fieldDescription
	fieldEstimate
	fieldDue
	fieldPriority
	fieldStatus
	fieldCount
)

type formModel struct {
	title       textinput.Model
	description textinput.Model
	estimate    textinput.Model
	due         textinput.Model

	focus       int
	priorityIdx int
	statusIdx   int

	// editingID is the task being edited, or "" when creating.
	editingID string
	busy      bool
}

func newFormModel() formModel {
	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200
	title.Width = 50

	description := textinput.New()
	description.Placeholder = "description"
	description.CharLimit = 2000
	description.Width = 50

	estimate := textinput.New()
	estimate.Placeholder = "hours, e.g. 2.5"
	estimate.CharLimit = 10
	estimate.Width = 20

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD (optional)"
	due.CharLimit = 10
	due.Width = 20

	return formModel{title: title, description: description, estimate: estimate, due: due}
}

func (f *formModel) inputs() []*textinput.Model {
	return []*textinput.Model{&f.title, &f.description, &f.estimate, &f.due}
}

func (f *formModel) focusField(index int) {
	index = ((index % fieldCount) + fieldCount) % fieldCount
	f.focus = index
	for i, input := range f.inputs() {
		if i == index {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

// prepareCreate resets the form to blanks with default priority and
// status.
func (f *formModel) prepareCreate() {
	f.editingID = ""
	f.title.SetValue("")
	f.description.SetValue("")
	f.estimate.SetValue("")
	f.due.SetValue("")
	f.priorityIdx = 1 // Medium
	f.statusIdx = 0   // Pending
	f.busy = false
	f.focusField(fieldTitle)
}

// prepareEdit loads a task's editable fields into the form.
func (f *formModel) prepareEdit(task tasks.Task) {
	f.editingID = task.ID
	f.title.SetValue(task.Title)
	f.description.SetValue(task.Description)
	if task.EstimatedTime != nil {
		f.estimate.SetValue(strconv.FormatFloat(*task.EstimatedTime, 'f', -1, 64))
	} else {
		f.estimate.SetValue("")
	}
	if task.DueDate != nil {
		f.due.SetValue(task.DueDate.Format("2006-01-02"))
	} else {
		f.due.SetValue("")
	}
	f.priorityIdx = indexOfPriority(task.Priority)
	f.statusIdx = indexOfStatus(task.Status)
	f.busy = false
	f.focusField(fieldTitle)
}

func indexOfPriority(priority tasks.Priority) int {
	for i, p := range tasks.Priorities {
		if p == priority {
			return i
		}
	}
	return 1 // Medium
}

func indexOfStatus(status tasks.Status) int {
	for i, s := range tasks.Statuses {
		if s == status {
			return i
		}
	}
	return 0 // Pending
}

// draft assembles the form contents into a Draft. Field-level parse
// failures (bad number, bad date) are reported here; required-field
// validation is the synchronizer's job.
func (f *formModel) draft() (tasks.Draft, error) {
	draft := tasks.Draft{
		Title:       strings.TrimSpace(f.title.Value()),
		Description: strings.TrimSpace(f.description.Value()),
		Priority:    tasks.Priorities[f.priorityIdx],
		Status:      tasks.Statuses[f.statusIdx],
	}

	if text := strings.TrimSpace(f.estimate.Value()); text != "" {
		hours, err := strconv.ParseFloat(text, 64)
		if err != nil || hours < 0 {
			return tasks.Draft{}, fmt.Errorf("estimated time must be a number of hours")
		}
		draft.EstimatedTime = &hours
	}

	if text := strings.TrimSpace(f.due.Value()); text != "" {
		due, err := time.Parse("2006-01-02", text)
		if err != nil {
			return tasks.Draft{}, fmt.Errorf("due date must be YYYY-MM-DD")
		}
		draft.DueDate = &due
	}

	return draft, nil
}

// saveCmd creates or updates the task off the event loop.
func (m *Model) saveCmd(id string, draft tasks.Draft) tea.Cmd {
	sync := m.sync
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if id == "" {
			task, err := sync.Create(ctx, draft)
			return taskSavedMsg{task: task, err: err}
		}
		task, err := sync.Update(ctx, id, draft)
		return taskSavedMsg{task: task, editing: true, err: err}
	}
}

func (m *Model) updateTaskForm(msg tea.KeyMsg) tea.Cmd {
	if m.form.busy {
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.back()
		return nil

	case key.Matches(msg, m.keys.Save):
		return m.submitForm()

	case key.Matches(msg, m.keys.NextField):
		m.form.focusField(m.form.focus + 1)
		return nil

	case key.Matches(msg, m.keys.PrevField):
		m.form.focusField(m.form.focus - 1)
		return nil

	case key.Matches(msg, m.keys.Submit):
		// Enter advances through the fields and submits from the last.
		if m.form.focus == fieldStatus {
			return m.submitForm()
		}
		m.form.focusField(m.form.focus + 1)
		return nil
	}

	switch m.form.focus {
	case fieldPriority:
		if key.Matches(msg, m.keys.CycleLeft) && m.form.priorityIdx > 0 {
			m.form.priorityIdx--
		}
		if key.Matches(msg, m.keys.CycleRight) && m.form.priorityIdx < len(tasks.Priorities)-1 {
			m.form.priorityIdx++
		}
		return nil

	case fieldStatus:
		if key.Matches(msg, m.keys.CycleLeft) && m.form.statusIdx > 0 {
			m.form.statusIdx--
		}
		if key.Matches(msg, m.keys.CycleRight) && m.form.statusIdx < len(tasks.Statuses)-1 {
			m.form.statusIdx++
		}
		return nil
	}

	inputs := m.form.inputs()
	var cmd tea.Cmd
	*inputs[m.form.focus], cmd = inputs[m.form.focus].Update(msg)
	return cmd
}

func (m *Model) submitForm() tea.Cmd {
	draft, err := m.form.draft()
	if err != nil {
		return m.setNotice(err.Error(), true)
	}
	if err := draft.Validate(); err != nil {
		return m.setNotice("All fields are required: title, description, estimated time", true)
	}

	m.form.busy = true
	return tea.Batch(m.saveCmd(m.form.editingID, draft), m.spinner.Tick)
}

// handleTaskSaved finishes a create or update: on success the form
// closes back to the list, which already holds the merged entry.
func (m *Model) handleTaskSaved(msg taskSavedMsg) tea.Cmd {
	m.form.busy = false

	if msg.err != nil {
		return m.setNotice("Save failed: "+userMessage(msg.err), true)
	}

	m.list.items = m.sync.Tasks()
	m.list.clampCursor()
	if m.screen == ScreenTaskForm {
		m.back()
	}
	if msg.editing {
		return m.setNotice("Task updated", false)
	}
	return m.setNotice("Task created", false)
}

func (m *Model) viewTaskForm() string {
	label := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	heading := "New task"
	if m.form.editingID != "" {
		heading = "Edit task"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(heading) + "\n\n")
	b.WriteString(label.Render("Title") + "\n")
	b.WriteString(m.form.title.View() + "\n\n")
	b.WriteString(label.Render("Description") + "\n")
	b.WriteString(m.form.description.View() + "\n\n")
	b.WriteString(label.Render("Estimated time (hours)") + "\n")
	b.WriteString(m.form.estimate.View() + "\n\n")
	b.WriteString(label.Render("Due date") + "\n")
	b.WriteString(m.form.due.View() + "\n\n")

	b.WriteString(label.Render("Priority") + "\n")
	b.WriteString(m.renderCycler(
		string(tasks.Priorities[m.form.priorityIdx]),
		m.theme.PriorityColor(tasks.Priorities[m.form.priorityIdx]),
		m.form.focus == fieldPriority,
	) + "\n\n")

	b.WriteString(label.Render("Status") + "\n")
	b.WriteString(m.renderCycler(
		string(tasks.Statuses[m.form.statusIdx]),
		m.theme.StatusColor(tasks.Statuses[m.form.statusIdx]),
		m.form.focus == fieldStatus,
	) + "\n")

	if m.form.busy {
		b.WriteString("\n" + m.spinner.View() + " saving...")
	}

	b.WriteString(m.helpLine(
		"tab: next field", "←/→: change value", "ctrl+s: save", "esc: cancel",
	))
	return b.String()
}

func (m *Model) renderCycler(value string, color lipgloss.Color, focused bool) string {
	text := lipgloss.NewStyle().Foreground(color).Render(value)
	if focused {
		return "‹ " + text + " ›"
	}
	return "  " + text
}
