// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/lib/tasks"
)

type homeModel struct {
	cursor int
}

func newHomeModel() homeModel {
	return homeModel{}
}

var homeItems = []string{
	"View tasks",
	"Browse sample tasks",
	"Log out",
}

func (m *Model) updateHome(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.home.cursor > 0 {
			m.home.cursor--
		}
		return nil

	case key.Matches(msg, m.keys.Down):
		if m.home.cursor < len(homeItems)-1 {
			m.home.cursor++
		}
		return nil

	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Select):
		switch m.home.cursor {
		case 0: // View tasks
			if m.sync.Mode() == tasks.ViewSampleOverlay {
				m.sync.UnloadSampleOverlay()
			}
			return m.openTaskList()
		case 1: // Browse sample tasks
			m.sync.LoadSampleOverlay()
			m.navigate(ScreenTaskList)
			m.list.items = m.sync.Tasks()
			m.list.cursor = 0
			return m.setNotice("Showing sample tasks — read-only", false)
		case 2: // Log out
			m.sessions.Logout()
			if m.sync.Mode() == tasks.ViewSampleOverlay {
				m.sync.UnloadSampleOverlay()
			}
			m.resetTo(ScreenLogin)
			m.login.reset()
			return m.setNotice("Signed out", false)
		}
	}
	return nil
}

// openTaskList shows the live task list and kicks off a fetch.
func (m *Model) openTaskList() tea.Cmd {
	m.navigate(ScreenTaskList)
	m.list.items = m.sync.Tasks()
	m.list.cursor = 0
	return m.startRefresh()
}

func (m *Model) viewHome() string {
	var b strings.Builder

	greeting := "Welcome"
	if active, ok := m.sessions.Current(); ok {
		greeting = "Welcome, " + active.DisplayName
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(greeting) + "\n\n")

	selected := lipgloss.NewStyle().
		Foreground(m.theme.SelectedForeground).
		Background(m.theme.SelectedBackground)

	for i, item := range homeItems {
		if i == m.home.cursor {
			b.WriteString(selected.Render(" › "+item+" ") + "\n")
		} else {
			b.WriteString("   " + item + "\n")
		}
	}

	b.WriteString(m.helpLine("↑/↓: move", "enter: select", "q: quit"))
	return b.String()
}
