// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/taskdeck/taskdeck/lib/tasks"
)

type listModel struct {
	items      []tasks.Task
	cursor     int
	refreshing bool

	// confirmDelete holds the id awaiting confirmation; empty means no
	// pending delete.
	confirmDelete string
	deleting      bool
}

func (l *listModel) clampCursor() {
	if l.cursor >= len(l.items) {
		l.cursor = len(l.items) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *listModel) selected() (tasks.Task, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return tasks.Task{}, false
	}
	return l.items[l.cursor], true
}

// deleteCmd removes a task server-side off the event loop.
func (m *Model) deleteCmd(id string) tea.Cmd {
	sync := m.sync
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return taskDeletedMsg{id: id, err: sync.Delete(ctx, id)}
	}
}

func (m *Model) updateTaskList(msg tea.KeyMsg) tea.Cmd {
	// A pending delete confirmation captures all input until resolved.
	if m.list.confirmDelete != "" {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			id := m.list.confirmDelete
			m.list.confirmDelete = ""
			m.list.deleting = true
			return tea.Batch(m.deleteCmd(id), m.spinner.Tick)
		case key.Matches(msg, m.keys.Deny):
			m.list.confirmDelete = ""
		}
		return nil
	}

	overlay := m.sync.Mode() == tasks.ViewSampleOverlay

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.list.cursor > 0 {
			m.list.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.list.cursor < len(m.list.items)-1 {
			m.list.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if task, ok := m.list.selected(); ok {
			m.detail.id = task.ID
			m.navigate(ScreenTaskDetails)
		}

	case key.Matches(msg, m.keys.Refresh):
		if overlay {
			return nil
		}
		return m.startRefresh()

	case key.Matches(msg, m.keys.Sample):
		if overlay {
			m.sync.UnloadSampleOverlay()
			m.list.items = m.sync.Tasks()
			m.list.clampCursor()
			return m.startRefresh()
		}
		m.sync.LoadSampleOverlay()
		m.list.items = m.sync.Tasks()
		m.list.cursor = 0
		return m.setNotice("Showing sample tasks — read-only", false)

	case key.Matches(msg, m.keys.NewTask):
		if overlay {
			return m.setNotice("Sample view is read-only", true)
		}
		m.form.prepareCreate()
		m.navigate(ScreenTaskForm)

	case key.Matches(msg, m.keys.EditTask):
		if overlay {
			return m.setNotice("Sample view is read-only", true)
		}
		if task, ok := m.list.selected(); ok {
			m.form.prepareEdit(task)
			m.navigate(ScreenTaskForm)
		}

	case key.Matches(msg, m.keys.DeleteTask):
		if overlay {
			return m.setNotice("Sample view is read-only", true)
		}
		if task, ok := m.list.selected(); ok {
			m.list.confirmDelete = task.ID
		}

	case key.Matches(msg, m.keys.Back):
		m.back()

	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	}
	return nil
}

// handleTaskDeleted applies a completed delete. On failure the entry
// stays; a refresh will reconcile if the server state diverged.
func (m *Model) handleTaskDeleted(msg taskDeletedMsg) tea.Cmd {
	m.list.deleting = false

	if msg.err != nil {
		return m.setNotice("Delete failed: "+userMessage(msg.err), true)
	}

	m.list.items = m.sync.Tasks()
	m.list.clampCursor()
	if m.screen == ScreenTaskDetails && m.detail.id == msg.id {
		m.back()
	}
	return m.setNotice("Task deleted", false)
}

func (m *Model) viewTaskList() string {
	var b strings.Builder

	if m.list.confirmDelete != "" {
		title := m.list.confirmDelete
		if task, ok := m.sync.Get(m.list.confirmDelete); ok {
			title = task.Title
		}
		warn := lipgloss.NewStyle().Bold(true).Foreground(m.theme.NoticeError)
		b.WriteString(warn.Render(fmt.Sprintf("Delete %q? This cannot be undone.", title)))
		b.WriteString(m.helpLine("y: delete", "n/esc: cancel"))
		return b.String()
	}

	if m.list.refreshing {
		b.WriteString(m.spinner.View() + " loading tasks...\n\n")
	}

	if len(m.list.items) == 0 && !m.list.refreshing {
		faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)
		b.WriteString(faint.Render("No tasks yet. Press n to create one.") + "\n")
	}

	width := m.width
	if width <= 0 {
		width = 80
	}

	selected := lipgloss.NewStyle().
		Foreground(m.theme.SelectedForeground).
		Background(m.theme.SelectedBackground)

	for i, task := range m.list.items {
		row := m.renderTaskRow(task, width-4)
		if i == m.list.cursor {
			b.WriteString(selected.Render(" › "+row) + "\n")
		} else {
			b.WriteString("   " + row + "\n")
		}
	}

	if m.sync.Mode() == tasks.ViewSampleOverlay {
		b.WriteString(m.helpLine(
			"↑/↓: move", "enter: details", "s: back to live tasks", "esc: back", "q: quit",
		))
	} else {
		b.WriteString(m.helpLine(
			"↑/↓: move", "enter: details", "n: new", "e: edit", "d: delete",
			"r: refresh", "s: sample", "esc: back", "q: quit",
		))
	}
	return b.String()
}

// renderTaskRow renders one list entry, truncated to the given width.
func (m *Model) renderTaskRow(task tasks.Task, width int) string {
	priority := lipgloss.NewStyle().
		Foreground(m.theme.PriorityColor(task.Priority)).
		Render(string(task.Priority))
	status := lipgloss.NewStyle().
		Foreground(m.theme.StatusColor(task.Status)).
		Render(string(task.Status))

	due := ""
	if task.DueDate != nil {
		due = "  due " + task.DueDate.Format("2006-01-02")
	}

	title := ansi.Truncate(task.Title, max(width/2, 10), "…")
	row := fmt.Sprintf("%-*s  %s  %s%s", max(width/2, 10), title, priority, status, due)
	return ansi.Truncate(row, width, "…")
}
