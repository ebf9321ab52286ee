// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/lib/tasks"
)

type detailModel struct {
	id string
}

func (m *Model) updateTaskDetails(msg tea.KeyMsg) tea.Cmd {
	overlay := m.sync.Mode() == tasks.ViewSampleOverlay

	switch {
	case key.Matches(msg, m.keys.Back):
		m.back()

	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.EditTask):
		if overlay {
			return m.setNotice("Sample view is read-only", true)
		}
		if task, ok := m.sync.Get(m.detail.id); ok {
			m.form.prepareEdit(task)
			m.navigate(ScreenTaskForm)
		}

	case key.Matches(msg, m.keys.DeleteTask):
		if overlay {
			return m.setNotice("Sample view is read-only", true)
		}
		if _, ok := m.sync.Get(m.detail.id); ok {
			m.back()
			m.list.confirmDelete = m.detail.id
		}
	}
	return nil
}

func (m *Model) viewTaskDetails() string {
	task, ok := m.sync.Get(m.detail.id)
	if !ok {
		faint := lipgloss.NewStyle().Foreground(m.theme.FaintText)
		return faint.Render("This task no longer exists.") + m.helpLine("esc: back")
	}

	label := lipgloss.NewStyle().Foreground(m.theme.FaintText)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(task.Title) + "\n\n")
	b.WriteString(task.Description + "\n\n")

	b.WriteString(label.Render("Priority  ") +
		lipgloss.NewStyle().Foreground(m.theme.PriorityColor(task.Priority)).Render(string(task.Priority)) + "\n")
	b.WriteString(label.Render("Status    ") +
		lipgloss.NewStyle().Foreground(m.theme.StatusColor(task.Status)).Render(string(task.Status)) + "\n")

	if task.EstimatedTime != nil {
		b.WriteString(label.Render("Estimate  ") +
			strconv.FormatFloat(*task.EstimatedTime, 'f', -1, 64) + " h\n")
	}
	if task.DueDate != nil {
		b.WriteString(label.Render("Due       ") + task.DueDate.Format("2006-01-02") + "\n")
	}
	if !task.CreatedAt.IsZero() {
		b.WriteString(label.Render("Created   ") + task.CreatedAt.Format("2006-01-02 15:04") + "\n")
	}

	if m.sync.Mode() == tasks.ViewSampleOverlay {
		b.WriteString(m.helpLine("esc: back", "q: quit"))
	} else {
		b.WriteString(m.helpLine("e: edit", "d: delete", "esc: back", "q: quit"))
	}
	return b.String()
}
